package repository

import (
	"errors"

	"github.com/plotweave/backend/internal/model"
	"gorm.io/gorm"
)

// PlotTemplateRepository 情节模板 Repository 接口
type PlotTemplateRepository interface {
	List() ([]model.PlotTemplate, error)
	GetByID(id uint) (*model.PlotTemplate, error)
	GetByType(templateType string) (*model.PlotTemplate, error)
	Count() (int64, error)
	Create(template *model.PlotTemplate) error
}

// plotTemplateRepository 实现
type plotTemplateRepository struct {
	db *gorm.DB
}

// NewPlotTemplateRepository 创建 Repository 实例
func NewPlotTemplateRepository(db *gorm.DB) PlotTemplateRepository {
	return &plotTemplateRepository{db: db}
}

// List 获取所有模板列表（不含环节详情）
func (r *plotTemplateRepository) List() ([]model.PlotTemplate, error) {
	var templates []model.PlotTemplate
	result := r.db.Order("sort_order ASC, id ASC").Find(&templates)
	return templates, result.Error
}

// GetByID 根据ID获取模板详情（含有序环节）
func (r *plotTemplateRepository) GetByID(id uint) (*model.PlotTemplate, error) {
	var template model.PlotTemplate
	result := r.db.Preload("Sections", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order ASC, id ASC")
	}).First(&template, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, result.Error
	}
	return &template, nil
}

// GetByType 根据模板标识获取模板
func (r *plotTemplateRepository) GetByType(templateType string) (*model.PlotTemplate, error) {
	var template model.PlotTemplate
	result := r.db.Where("template_type = ?", templateType).First(&template)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, result.Error
	}
	return &template, nil
}

// Count 模板总数，种子化幂等判断用
func (r *plotTemplateRepository) Count() (int64, error) {
	var count int64
	result := r.db.Model(&model.PlotTemplate{}).Count(&count)
	return count, result.Error
}

// Create 创建模板（仅种子化使用）
func (r *plotTemplateRepository) Create(template *model.PlotTemplate) error {
	return r.db.Create(template).Error
}
