package model

import "time"

// PlotSection 情节环节表
// 实例化时按模板定义一次性生成，此后只允许编辑，不允许单独增删
type PlotSection struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	PlotStructureID uint      `json:"plot_structure_id" gorm:"not null;default:0;uniqueIndex:idx_structure_section_key"`
	SectionKey      string    `json:"section_key" gorm:"size:100;not null;default:'';uniqueIndex:idx_structure_section_key"`
	Title           string    `json:"title" gorm:"size:100;not null;default:''"`
	Content         string    `json:"content" gorm:"type:text"` // 用户正文，默认空串
	SortOrder       int       `json:"sort_order" gorm:"default:0"`
	CreatedAt       time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt       time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName 指定表名
func (PlotSection) TableName() string {
	return "plot_sections"
}
