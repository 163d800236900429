package repository

import (
	"errors"

	"github.com/plotweave/backend/internal/model"
	"gorm.io/gorm"
)

// ChapterRepository 章节 Repository 接口
type ChapterRepository interface {
	Create(chapter *model.Chapter) error
	GetByProject(projectID uint) ([]model.Chapter, error)
	Get(id uint) (*model.Chapter, error)
	Save(chapter *model.Chapter) error
	Delete(id uint) error
	DeleteByProjectID(projectID uint) error
}

// chapterRepository 实现
type chapterRepository struct {
	db *gorm.DB
}

// NewChapterRepository 创建 Repository 实例
func NewChapterRepository(db *gorm.DB) ChapterRepository {
	return &chapterRepository{db: db}
}

// Create 创建章节
func (r *chapterRepository) Create(chapter *model.Chapter) error {
	return r.db.Create(chapter).Error
}

// GetByProject 获取项目下的所有章节
func (r *chapterRepository) GetByProject(projectID uint) ([]model.Chapter, error) {
	var chapters []model.Chapter
	result := r.db.Where("project_id = ?", projectID).
		Order("sort_order ASC, id ASC").
		Find(&chapters)
	return chapters, result.Error
}

// Get 根据ID获取章节
func (r *chapterRepository) Get(id uint) (*model.Chapter, error) {
	var chapter model.Chapter
	result := r.db.First(&chapter, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, result.Error
	}
	return &chapter, nil
}

// Save 保存章节
func (r *chapterRepository) Save(chapter *model.Chapter) error {
	return r.db.Save(chapter).Error
}

// Delete 删除章节
func (r *chapterRepository) Delete(id uint) error {
	return r.db.Delete(&model.Chapter{}, id).Error
}

// DeleteByProjectID 删除项目下所有章节
func (r *chapterRepository) DeleteByProjectID(projectID uint) error {
	return r.db.Where("project_id = ?", projectID).Delete(&model.Chapter{}).Error
}
