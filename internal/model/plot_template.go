package model

import "time"

// PlotTemplate 情节结构模板表
// 预置的叙事结构方法论（三幕结构、英雄之旅等），启动时种子化，API 层只读
type PlotTemplate struct {
	ID           uint              `json:"id" gorm:"primaryKey"`
	TemplateType string            `json:"template_type" gorm:"size:50;not null;uniqueIndex"` // 模板标识，如 three_act, heros_journey
	Name         string            `json:"name" gorm:"size:100;not null;default:''"`          // 模板名称，如"三幕结构"
	Description  string            `json:"description" gorm:"size:500"`                       // 描述
	IsDefault    bool              `json:"is_default" gorm:"default:false"`                   // 是否默认推荐模板
	SortOrder    int               `json:"sort_order" gorm:"default:0"`                       // 排序序号
	CreatedAt    time.Time         `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time         `json:"updated_at" gorm:"autoUpdateTime"`
	Sections     []TemplateSection `json:"sections,omitempty" gorm:"foreignKey:TemplateID;constraint:OnDelete:CASCADE;"`
}

// TableName 指定表名
func (PlotTemplate) TableName() string {
	return "plot_templates"
}
