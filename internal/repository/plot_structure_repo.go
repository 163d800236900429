package repository

import (
	"errors"

	"github.com/plotweave/backend/internal/model"
	"gorm.io/gorm"
)

// PlotStructureRepository 情节结构实例 Repository 接口
type PlotStructureRepository interface {
	CreateWithSections(structure *model.PlotStructure, sections []model.PlotSection) error
	ListByProject(projectID uint) ([]model.PlotStructure, error)
	GetByID(id uint) (*model.PlotStructure, error)
	GetBasic(id uint) (*model.PlotStructure, error)
	NextSortOrder(projectID uint, parentID *uint) (int, error)
	HasChildren(id uint) (bool, error)
	Save(structure *model.PlotStructure) error
	Touch(id uint) error
	Delete(id uint) error
	DeleteByProjectID(projectID uint) error
}

// plotStructureRepository 实现
type plotStructureRepository struct {
	db *gorm.DB
}

// NewPlotStructureRepository 创建 Repository 实例
func NewPlotStructureRepository(db *gorm.DB) PlotStructureRepository {
	return &plotStructureRepository{db: db}
}

// CreateWithSections 在一个事务内创建实例及其全部环节
// 任一环节插入失败时整体回滚，不留下悬空实例
func (r *plotStructureRepository) CreateWithSections(structure *model.PlotStructure, sections []model.PlotSection) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(structure).Error; err != nil {
			return err
		}
		for i := range sections {
			sections[i].PlotStructureID = structure.ID
			if err := tx.Create(&sections[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// ListByProject 获取项目下的所有实例（含子结构）
func (r *plotStructureRepository) ListByProject(projectID uint) ([]model.PlotStructure, error) {
	var structures []model.PlotStructure
	result := r.db.Where("project_id = ?", projectID).
		Order("sort_order ASC, id ASC").
		Find(&structures)
	return structures, result.Error
}

// GetByID 根据ID获取实例详情（含有序环节）
func (r *plotStructureRepository) GetByID(id uint) (*model.PlotStructure, error) {
	var structure model.PlotStructure
	result := r.db.Preload("Sections", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order ASC, id ASC")
	}).First(&structure, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, result.Error
	}
	return &structure, nil
}

// GetBasic 根据ID获取实例（不含环节）
func (r *plotStructureRepository) GetBasic(id uint) (*model.PlotStructure, error) {
	var structure model.PlotStructure
	result := r.db.First(&structure, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, result.Error
	}
	return &structure, nil
}

// NextSortOrder 同级实例中的下一个可用序号
func (r *plotStructureRepository) NextSortOrder(projectID uint, parentID *uint) (int, error) {
	var max int
	query := r.db.Model(&model.PlotStructure{}).Where("project_id = ?", projectID)
	if parentID == nil {
		query = query.Where("parent_id IS NULL")
	} else {
		query = query.Where("parent_id = ?", *parentID)
	}
	result := query.Select("COALESCE(MAX(sort_order), 0)").Scan(&max)
	if result.Error != nil {
		return 0, result.Error
	}
	return max + 1, nil
}

// HasChildren 是否存在子结构
func (r *plotStructureRepository) HasChildren(id uint) (bool, error) {
	var count int64
	result := r.db.Model(&model.PlotStructure{}).Where("parent_id = ?", id).Count(&count)
	return count > 0, result.Error
}

// Save 保存实例
func (r *plotStructureRepository) Save(structure *model.PlotStructure) error {
	return r.db.Save(structure).Error
}

// Touch 仅刷新实例的 updated_at，列表视图据此感知变更
func (r *plotStructureRepository) Touch(id uint) error {
	return r.db.Model(&model.PlotStructure{}).Where("id = ?", id).
		UpdateColumn("updated_at", r.db.NowFunc()).Error
}

// Delete 删除实例，级联删除子结构与全部环节
func (r *plotStructureRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var childIDs []uint
		if err := tx.Model(&model.PlotStructure{}).Where("parent_id = ?", id).
			Pluck("id", &childIDs).Error; err != nil {
			return err
		}
		ids := append(childIDs, id)
		if err := tx.Where("plot_structure_id IN ?", ids).
			Delete(&model.PlotSection{}).Error; err != nil {
			return err
		}
		return tx.Where("id IN ?", ids).Delete(&model.PlotStructure{}).Error
	})
}

// DeleteByProjectID 删除项目下所有实例及环节，项目删除时调用
func (r *plotStructureRepository) DeleteByProjectID(projectID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var ids []uint
		if err := tx.Model(&model.PlotStructure{}).Where("project_id = ?", projectID).
			Pluck("id", &ids).Error; err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}
		if err := tx.Where("plot_structure_id IN ?", ids).
			Delete(&model.PlotSection{}).Error; err != nil {
			return err
		}
		return tx.Where("project_id = ?", projectID).Delete(&model.PlotStructure{}).Error
	})
}
