package model

import (
	"time"
)

// Project 小说项目
type Project struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"size:255;not null"`
	Description string    `json:"description" gorm:"size:1000"`
	Genre       string    `json:"genre" gorm:"size:100"`
	Status      string    `json:"status" gorm:"size:50;default:draft"` // draft, writing, completed, archived
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Chapters    []Chapter `json:"chapters,omitempty" gorm:"foreignKey:ProjectID"`
}

// Chapter 章节正文
type Chapter struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ProjectID uint      `json:"project_id" gorm:"index;not null"`
	Title     string    `json:"title" gorm:"size:255;not null"`
	Summary   string    `json:"summary" gorm:"size:2000"`
	Content   string    `json:"content" gorm:"type:text"`
	WordCount int       `json:"word_count" gorm:"default:0"` // 保存时由服务端重新统计
	SortOrder int       `json:"sort_order" gorm:"default:0"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CodexEntry 故事圣经条目（人物、地点、道具、事件）
type CodexEntry struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	ProjectID   uint      `json:"project_id" gorm:"index;not null"`
	EntryType   string    `json:"entry_type" gorm:"size:50;not null;default:character"` // character, location, item, event
	Name        string    `json:"name" gorm:"size:255;not null"`
	Description string    `json:"description" gorm:"type:text"`
	Aliases     string    `json:"aliases" gorm:"size:500"` // 逗号分隔的别名
	SortOrder   int       `json:"sort_order" gorm:"default:0"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// OutlineNode 大纲树节点
type OutlineNode struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	ProjectID   uint      `json:"project_id" gorm:"index;not null"`
	ParentID    *uint     `json:"parent_id" gorm:"index"`
	Title       string    `json:"title" gorm:"size:255;not null"`
	Description string    `json:"description" gorm:"size:2000"`
	SortOrder   int       `json:"sort_order" gorm:"default:0"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// WhiteboardItem 白板/故事板画布元素
type WhiteboardItem struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ProjectID uint      `json:"project_id" gorm:"not null;uniqueIndex:idx_project_node_key"`
	NodeKey   string    `json:"node_key" gorm:"size:64;not null;uniqueIndex:idx_project_node_key"` // UUID，前端寻址用
	Kind      string    `json:"kind" gorm:"size:50;default:note"`                                  // note, card, connector
	Content   string    `json:"content" gorm:"type:text"`
	X         float64   `json:"x" gorm:"default:0"`
	Y         float64   `json:"y" gorm:"default:0"`
	Width     float64   `json:"width" gorm:"default:0"`
	Height    float64   `json:"height" gorm:"default:0"`
	Color     string    `json:"color" gorm:"size:20"`
	ZIndex    int       `json:"z_index" gorm:"default:0"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
