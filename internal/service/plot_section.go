package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/plotweave/backend/internal/model"
	"github.com/plotweave/backend/internal/repository"
)

var (
	ErrPlotSectionNotFound = errors.New("plot section not found")
)

// UpdatePlotSectionRequest 更新环节请求
// 指针字段做部分更新：缺省字段保持原值，后写覆盖先写
// SuppressTouch 为 true 时不刷新所属实例的 updated_at，
// 防抖自动保存用它来避免触发列表视图刷新
type UpdatePlotSectionRequest struct {
	Title         *string `json:"title" binding:"omitempty,min=1,max=100"`
	Content       *string `json:"content"`
	SortOrder     *int    `json:"sort_order"`
	SuppressTouch bool    `json:"suppress_touch"`
}

// PlotSectionDTO 环节数据传输对象
type PlotSectionDTO struct {
	ID              uint   `json:"id"`
	PlotStructureID uint   `json:"plot_structure_id"`
	SectionKey      string `json:"section_key"`
	Title           string `json:"title"`
	Content         string `json:"content"`
	SortOrder       int    `json:"sort_order"`
	CreatedAt       string `json:"created_at"`
	UpdatedAt       string `json:"updated_at"`
}

// PlotSectionService 环节内容服务接口
// 环节只能编辑，创建与删除均随实例发生
type PlotSectionService interface {
	ListByStructure(ctx context.Context, structureID uint) ([]*PlotSectionDTO, error)
	Update(ctx context.Context, id uint, req UpdatePlotSectionRequest) (*PlotSectionDTO, error)
}

// plotSectionService 实现
type plotSectionService struct {
	sectionRepo   repository.PlotSectionRepository
	structureRepo repository.PlotStructureRepository
}

// NewPlotSectionService 创建服务实例
func NewPlotSectionService(
	sectionRepo repository.PlotSectionRepository,
	structureRepo repository.PlotStructureRepository,
) PlotSectionService {
	return &plotSectionService{
		sectionRepo:   sectionRepo,
		structureRepo: structureRepo,
	}
}

// ListByStructure 获取实例下的全部环节，按模板定义顺序
func (s *plotSectionService) ListByStructure(ctx context.Context, structureID uint) ([]*PlotSectionDTO, error) {
	if _, err := s.structureRepo.GetBasic(structureID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlotStructureNotFound
		}
		return nil, fmt.Errorf("failed to get plot structure: %w", err)
	}

	sections, err := s.sectionRepo.GetByStructureID(structureID)
	if err != nil {
		return nil, fmt.Errorf("failed to list plot sections: %w", err)
	}

	result := make([]*PlotSectionDTO, len(sections))
	for i, sec := range sections {
		dto := toPlotSectionDTO(&sec)
		result[i] = &dto
	}
	return result, nil
}

// Update 部分更新环节，updated_at 无条件刷新
func (s *plotSectionService) Update(ctx context.Context, id uint, req UpdatePlotSectionRequest) (*PlotSectionDTO, error) {
	section, err := s.sectionRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlotSectionNotFound
		}
		return nil, fmt.Errorf("failed to get plot section: %w", err)
	}

	if req.Title != nil {
		section.Title = *req.Title
	}
	if req.Content != nil {
		section.Content = *req.Content
	}
	if req.SortOrder != nil {
		section.SortOrder = *req.SortOrder
	}

	if err := s.sectionRepo.Save(section); err != nil {
		return nil, fmt.Errorf("failed to update plot section: %w", err)
	}

	if !req.SuppressTouch {
		if err := s.structureRepo.Touch(section.PlotStructureID); err != nil {
			return nil, fmt.Errorf("failed to touch plot structure: %w", err)
		}
	}

	dto := toPlotSectionDTO(section)
	return &dto, nil
}

// toPlotSectionDTO 转换为 DTO
func toPlotSectionDTO(sec *model.PlotSection) PlotSectionDTO {
	return PlotSectionDTO{
		ID:              sec.ID,
		PlotStructureID: sec.PlotStructureID,
		SectionKey:      sec.SectionKey,
		Title:           sec.Title,
		Content:         sec.Content,
		SortOrder:       sec.SortOrder,
		CreatedAt:       sec.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt:       sec.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
