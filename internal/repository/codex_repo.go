package repository

import (
	"errors"

	"github.com/plotweave/backend/internal/model"
	"gorm.io/gorm"
)

// CodexRepository 故事圣经 Repository 接口
type CodexRepository interface {
	Create(entry *model.CodexEntry) error
	GetByProject(projectID uint, entryType string) ([]model.CodexEntry, error)
	Get(id uint) (*model.CodexEntry, error)
	Save(entry *model.CodexEntry) error
	Delete(id uint) error
	DeleteByProjectID(projectID uint) error
}

// codexRepository 实现
type codexRepository struct {
	db *gorm.DB
}

// NewCodexRepository 创建 Repository 实例
func NewCodexRepository(db *gorm.DB) CodexRepository {
	return &codexRepository{db: db}
}

// Create 创建条目
func (r *codexRepository) Create(entry *model.CodexEntry) error {
	return r.db.Create(entry).Error
}

// GetByProject 获取项目下的条目，entryType 为空时返回全部
func (r *codexRepository) GetByProject(projectID uint, entryType string) ([]model.CodexEntry, error) {
	var entries []model.CodexEntry
	query := r.db.Where("project_id = ?", projectID)
	if entryType != "" {
		query = query.Where("entry_type = ?", entryType)
	}
	result := query.Order("sort_order ASC, id ASC").Find(&entries)
	return entries, result.Error
}

// Get 根据ID获取条目
func (r *codexRepository) Get(id uint) (*model.CodexEntry, error) {
	var entry model.CodexEntry
	result := r.db.First(&entry, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, result.Error
	}
	return &entry, nil
}

// Save 保存条目
func (r *codexRepository) Save(entry *model.CodexEntry) error {
	return r.db.Save(entry).Error
}

// Delete 删除条目
func (r *codexRepository) Delete(id uint) error {
	return r.db.Delete(&model.CodexEntry{}, id).Error
}

// DeleteByProjectID 删除项目下所有条目
func (r *codexRepository) DeleteByProjectID(projectID uint) error {
	return r.db.Where("project_id = ?", projectID).Delete(&model.CodexEntry{}).Error
}
