package model

import "time"

// PlotStructure 情节结构实例表
// 项目对某个模板的一次具体使用，创建后与模板解耦，TemplateID 不可变更
type PlotStructure struct {
	ID          uint          `json:"id" gorm:"primaryKey"`
	ProjectID   uint          `json:"project_id" gorm:"index;not null"`
	TemplateID  uint          `json:"template_id" gorm:"index;not null"`
	Name        string        `json:"name" gorm:"size:100;not null;default:''"`
	Description string        `json:"description" gorm:"size:500"`
	ParentID    *uint         `json:"parent_id" gorm:"index"` // 父结构，仅一层嵌套，用于分组展示
	SortOrder   int           `json:"sort_order" gorm:"default:0"`
	CreatedAt   time.Time     `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time     `json:"updated_at" gorm:"autoUpdateTime"`
	Sections    []PlotSection `json:"sections,omitempty" gorm:"foreignKey:PlotStructureID;constraint:OnDelete:CASCADE;"`
}

// TableName 指定表名
func (PlotStructure) TableName() string {
	return "plot_structures"
}
