package repository

import (
	"errors"

	"github.com/plotweave/backend/internal/model"
	"gorm.io/gorm"
)

// PlotSectionRepository 情节环节 Repository 接口
type PlotSectionRepository interface {
	GetByID(id uint) (*model.PlotSection, error)
	GetByStructureID(structureID uint) ([]model.PlotSection, error)
	Save(section *model.PlotSection) error
}

// plotSectionRepository 实现
type plotSectionRepository struct {
	db *gorm.DB
}

// NewPlotSectionRepository 创建 Repository 实例
func NewPlotSectionRepository(db *gorm.DB) PlotSectionRepository {
	return &plotSectionRepository{db: db}
}

// GetByID 根据ID获取环节
func (r *plotSectionRepository) GetByID(id uint) (*model.PlotSection, error) {
	var section model.PlotSection
	result := r.db.First(&section, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, result.Error
	}
	return &section, nil
}

// GetByStructureID 获取实例下的所有环节
func (r *plotSectionRepository) GetByStructureID(structureID uint) ([]model.PlotSection, error) {
	var sections []model.PlotSection
	result := r.db.Where("plot_structure_id = ?", structureID).
		Order("sort_order ASC, id ASC").
		Find(&sections)
	return sections, result.Error
}

// Save 保存环节，后写覆盖先写
func (r *plotSectionRepository) Save(section *model.PlotSection) error {
	return r.db.Save(section).Error
}
