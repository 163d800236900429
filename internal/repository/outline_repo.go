package repository

import (
	"errors"

	"github.com/plotweave/backend/internal/model"
	"gorm.io/gorm"
)

// OutlineRepository 大纲树 Repository 接口
type OutlineRepository interface {
	Create(node *model.OutlineNode) error
	GetByProject(projectID uint) ([]model.OutlineNode, error)
	Get(id uint) (*model.OutlineNode, error)
	GetChildren(id uint) ([]model.OutlineNode, error)
	Save(node *model.OutlineNode) error
	DeleteSubtree(id uint) error
	DeleteByProjectID(projectID uint) error
}

// outlineRepository 实现
type outlineRepository struct {
	db *gorm.DB
}

// NewOutlineRepository 创建 Repository 实例
func NewOutlineRepository(db *gorm.DB) OutlineRepository {
	return &outlineRepository{db: db}
}

// Create 创建节点
func (r *outlineRepository) Create(node *model.OutlineNode) error {
	return r.db.Create(node).Error
}

// GetByProject 获取项目下的所有节点，树形结构由调用方组装
func (r *outlineRepository) GetByProject(projectID uint) ([]model.OutlineNode, error) {
	var nodes []model.OutlineNode
	result := r.db.Where("project_id = ?", projectID).
		Order("sort_order ASC, id ASC").
		Find(&nodes)
	return nodes, result.Error
}

// Get 根据ID获取节点
func (r *outlineRepository) Get(id uint) (*model.OutlineNode, error) {
	var node model.OutlineNode
	result := r.db.First(&node, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, result.Error
	}
	return &node, nil
}

// GetChildren 获取直接子节点
func (r *outlineRepository) GetChildren(id uint) ([]model.OutlineNode, error) {
	var nodes []model.OutlineNode
	result := r.db.Where("parent_id = ?", id).
		Order("sort_order ASC, id ASC").
		Find(&nodes)
	return nodes, result.Error
}

// Save 保存节点
func (r *outlineRepository) Save(node *model.OutlineNode) error {
	return r.db.Save(node).Error
}

// DeleteSubtree 删除节点及其全部后代
func (r *outlineRepository) DeleteSubtree(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		// 逐层收集后代ID，大纲深度有限，无需递归SQL
		ids := []uint{id}
		frontier := []uint{id}
		for len(frontier) > 0 {
			var next []uint
			if err := tx.Model(&model.OutlineNode{}).Where("parent_id IN ?", frontier).
				Pluck("id", &next).Error; err != nil {
				return err
			}
			ids = append(ids, next...)
			frontier = next
		}
		return tx.Where("id IN ?", ids).Delete(&model.OutlineNode{}).Error
	})
}

// DeleteByProjectID 删除项目下所有节点
func (r *outlineRepository) DeleteByProjectID(projectID uint) error {
	return r.db.Where("project_id = ?", projectID).Delete(&model.OutlineNode{}).Error
}
