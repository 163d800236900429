package repository

import (
	"errors"

	"github.com/plotweave/backend/internal/model"
	"gorm.io/gorm"
)

// WhiteboardRepository 白板元素 Repository 接口
type WhiteboardRepository interface {
	Create(item *model.WhiteboardItem) error
	GetByProject(projectID uint) ([]model.WhiteboardItem, error)
	Get(id uint) (*model.WhiteboardItem, error)
	Save(item *model.WhiteboardItem) error
	Delete(id uint) error
	DeleteByProjectID(projectID uint) error
}

// whiteboardRepository 实现
type whiteboardRepository struct {
	db *gorm.DB
}

// NewWhiteboardRepository 创建 Repository 实例
func NewWhiteboardRepository(db *gorm.DB) WhiteboardRepository {
	return &whiteboardRepository{db: db}
}

// Create 创建画布元素
func (r *whiteboardRepository) Create(item *model.WhiteboardItem) error {
	return r.db.Create(item).Error
}

// GetByProject 获取项目画布的所有元素，按层级排序
func (r *whiteboardRepository) GetByProject(projectID uint) ([]model.WhiteboardItem, error) {
	var items []model.WhiteboardItem
	result := r.db.Where("project_id = ?", projectID).
		Order("z_index ASC, id ASC").
		Find(&items)
	return items, result.Error
}

// Get 根据ID获取元素
func (r *whiteboardRepository) Get(id uint) (*model.WhiteboardItem, error) {
	var item model.WhiteboardItem
	result := r.db.First(&item, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, result.Error
	}
	return &item, nil
}

// Save 保存元素
func (r *whiteboardRepository) Save(item *model.WhiteboardItem) error {
	return r.db.Save(item).Error
}

// Delete 删除元素
func (r *whiteboardRepository) Delete(id uint) error {
	return r.db.Delete(&model.WhiteboardItem{}, id).Error
}

// DeleteByProjectID 删除项目下所有元素
func (r *whiteboardRepository) DeleteByProjectID(projectID uint) error {
	return r.db.Where("project_id = ?", projectID).Delete(&model.WhiteboardItem{}).Error
}
