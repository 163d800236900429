package model

// TemplateSection 模板环节定义表
// (template_id, key) 唯一索引保证同一模板内 key 不重复
type TemplateSection struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	TemplateID  uint   `json:"template_id" gorm:"not null;default:0;uniqueIndex:idx_template_section_key"`
	Key         string `json:"key" gorm:"size:100;not null;default:'';uniqueIndex:idx_template_section_key"` // 环节标识，如 act1_setup
	Title       string `json:"title" gorm:"size:100;not null;default:''"`                                    // 环节标题，如"第一幕·铺垫"
	Description string `json:"description" gorm:"size:1000"`                                                 // 环节说明，指导作者如何使用
	SortOrder   int    `json:"sort_order" gorm:"default:0"`                                                  // 排序序号
}

// TableName 指定表名
func (TemplateSection) TableName() string {
	return "template_sections"
}
