package repository

import (
	"errors"

	"github.com/plotweave/backend/internal/model"
	"gorm.io/gorm"
)

// ProjectRepository 项目 Repository 接口
type ProjectRepository interface {
	Create(project *model.Project) error
	List() ([]model.Project, error)
	Get(id uint) (*model.Project, error)
	Save(project *model.Project) error
	Delete(id uint) error
}

// projectRepository 实现
type projectRepository struct {
	db *gorm.DB
}

// NewProjectRepository 创建 Repository 实例
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

// Create 创建项目
func (r *projectRepository) Create(project *model.Project) error {
	return r.db.Create(project).Error
}

// List 获取项目列表，最近更新优先
func (r *projectRepository) List() ([]model.Project, error) {
	var projects []model.Project
	result := r.db.Order("updated_at DESC, id DESC").Find(&projects)
	return projects, result.Error
}

// Get 根据ID获取项目
func (r *projectRepository) Get(id uint) (*model.Project, error) {
	var project model.Project
	result := r.db.First(&project, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, result.Error
	}
	return &project, nil
}

// Save 保存项目
func (r *projectRepository) Save(project *model.Project) error {
	return r.db.Save(project).Error
}

// Delete 删除项目行本身，关联数据由 service 层级联清理
func (r *projectRepository) Delete(id uint) error {
	return r.db.Delete(&model.Project{}, id).Error
}
