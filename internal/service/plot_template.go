package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/plotweave/backend/internal/model"
	"github.com/plotweave/backend/internal/repository"
)

var (
	ErrTemplateNotFound = errors.New("plot template not found")
	ErrInvalidTemplate  = errors.New("invalid plot template data")
)

// PlotTemplateDTO 模板数据传输对象
type PlotTemplateDTO struct {
	ID           uint   `json:"id"`
	TemplateType string `json:"template_type"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	IsDefault    bool   `json:"is_default"`
	SortOrder    int    `json:"sort_order"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

// PlotTemplateDetailDTO 模板详情（含有序环节定义）
type PlotTemplateDetailDTO struct {
	ID           uint                 `json:"id"`
	TemplateType string               `json:"template_type"`
	Name         string               `json:"name"`
	Description  string               `json:"description"`
	IsDefault    bool                 `json:"is_default"`
	SortOrder    int                  `json:"sort_order"`
	CreatedAt    string               `json:"created_at"`
	UpdatedAt    string               `json:"updated_at"`
	Sections     []TemplateSectionDTO `json:"sections"`
}

// TemplateSectionDTO 环节定义数据传输对象
type TemplateSectionDTO struct {
	ID          uint   `json:"id"`
	Key         string `json:"key"`
	Title       string `json:"title"`
	Description string `json:"description"`
	SortOrder   int    `json:"sort_order"`
}

// PlotTemplateService 模板目录服务接口，API 层只读
type PlotTemplateService interface {
	List(ctx context.Context) ([]*PlotTemplateDTO, error)
	GetByID(ctx context.Context, id uint) (*PlotTemplateDetailDTO, error)
}

// plotTemplateService 实现
type plotTemplateService struct {
	templateRepo repository.PlotTemplateRepository
}

// NewPlotTemplateService 创建服务实例
func NewPlotTemplateService(templateRepo repository.PlotTemplateRepository) PlotTemplateService {
	return &plotTemplateService{templateRepo: templateRepo}
}

// List 获取模板列表
func (s *plotTemplateService) List(ctx context.Context) ([]*PlotTemplateDTO, error) {
	templates, err := s.templateRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list plot templates: %w", err)
	}

	result := make([]*PlotTemplateDTO, len(templates))
	for i, t := range templates {
		result[i] = toPlotTemplateDTO(&t)
	}
	return result, nil
}

// GetByID 获取模板详情
func (s *plotTemplateService) GetByID(ctx context.Context, id uint) (*PlotTemplateDetailDTO, error) {
	template, err := s.templateRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, fmt.Errorf("failed to get plot template: %w", err)
	}

	return toPlotTemplateDetailDTO(template), nil
}

// toPlotTemplateDTO 转换为 DTO
func toPlotTemplateDTO(t *model.PlotTemplate) *PlotTemplateDTO {
	return &PlotTemplateDTO{
		ID:           t.ID,
		TemplateType: t.TemplateType,
		Name:         t.Name,
		Description:  t.Description,
		IsDefault:    t.IsDefault,
		SortOrder:    t.SortOrder,
		CreatedAt:    t.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt:    t.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

// toPlotTemplateDetailDTO 转换为详情 DTO
func toPlotTemplateDetailDTO(t *model.PlotTemplate) *PlotTemplateDetailDTO {
	sections := make([]TemplateSectionDTO, len(t.Sections))
	for i, sec := range t.Sections {
		sections[i] = TemplateSectionDTO{
			ID:          sec.ID,
			Key:         sec.Key,
			Title:       sec.Title,
			Description: sec.Description,
			SortOrder:   sec.SortOrder,
		}
	}

	return &PlotTemplateDetailDTO{
		ID:           t.ID,
		TemplateType: t.TemplateType,
		Name:         t.Name,
		Description:  t.Description,
		IsDefault:    t.IsDefault,
		SortOrder:    t.SortOrder,
		CreatedAt:    t.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt:    t.UpdatedAt.Format("2006-01-02T15:04:05Z"),
		Sections:     sections,
	}
}
