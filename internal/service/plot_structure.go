package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/plotweave/backend/internal/model"
	"github.com/plotweave/backend/internal/repository"
	"k8s.io/klog/v2"
)

var (
	ErrPlotStructureNotFound = errors.New("plot structure not found")
	ErrInvalidParent         = errors.New("invalid parent structure")
)

// InstantiateRequest 套用模板请求
type InstantiateRequest struct {
	ProjectID   uint   `json:"-"` // 从 URL 参数获取，不接收 JSON
	TemplateID  uint   `json:"template_id" binding:"required"`
	Name        string `json:"name" binding:"max=100"`
	Description string `json:"description" binding:"max=500"`
	ParentID    *uint  `json:"parent_id"`
}

// UpdatePlotStructureRequest 更新实例请求
// 允许改名、改描述、排序、挂靠父结构，TemplateID 创建后不可变更
// ParentID 传 0 表示脱离父结构提升为顶层
type UpdatePlotStructureRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=100"`
	Description *string `json:"description" binding:"omitempty,max=500"`
	ParentID    *uint   `json:"parent_id"`
	SortOrder   *int    `json:"sort_order"`
}

// PlotStructureDTO 实例数据传输对象
type PlotStructureDTO struct {
	ID          uint   `json:"id"`
	ProjectID   uint   `json:"project_id"`
	TemplateID  uint   `json:"template_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ParentID    *uint  `json:"parent_id"`
	SortOrder   int    `json:"sort_order"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// PlotStructureDetailDTO 实例详情（含有序环节）
type PlotStructureDetailDTO struct {
	PlotStructureDTO
	Sections []PlotSectionDTO `json:"sections"`
}

// PlotStructureService 情节结构服务接口
type PlotStructureService interface {
	Instantiate(ctx context.Context, req InstantiateRequest) (*PlotStructureDTO, error)
	ListByProject(ctx context.Context, projectID uint) ([]*PlotStructureDTO, error)
	GetByID(ctx context.Context, id uint) (*PlotStructureDetailDTO, error)
	Update(ctx context.Context, id uint, req UpdatePlotStructureRequest) (*PlotStructureDTO, error)
	Delete(ctx context.Context, id uint) error
}

// plotStructureService 实现
type plotStructureService struct {
	structureRepo repository.PlotStructureRepository
	templateRepo  repository.PlotTemplateRepository
	projectRepo   repository.ProjectRepository
}

// NewPlotStructureService 创建服务实例
func NewPlotStructureService(
	structureRepo repository.PlotStructureRepository,
	templateRepo repository.PlotTemplateRepository,
	projectRepo repository.ProjectRepository,
) PlotStructureService {
	return &plotStructureService{
		structureRepo: structureRepo,
		templateRepo:  templateRepo,
		projectRepo:   projectRepo,
	}
}

// Instantiate 将模板物化为项目下的具体实例
// 实例与全部环节在一个事务内落库，部分失败时整体回滚
func (s *plotStructureService) Instantiate(ctx context.Context, req InstantiateRequest) (*PlotStructureDTO, error) {
	if _, err := s.projectRepo.Get(req.ProjectID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	template, err := s.templateRepo.GetByID(req.TemplateID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, fmt.Errorf("failed to get template: %w", err)
	}

	// 环节定义缺 key 或缺标题属于模板数据问题，拒绝物化
	for _, def := range template.Sections {
		if def.Key == "" || def.Title == "" {
			return nil, ErrInvalidTemplate
		}
	}

	if req.ParentID != nil {
		if err := s.validateParent(req.ProjectID, *req.ParentID); err != nil {
			return nil, err
		}
	}

	name := req.Name
	if name == "" {
		name = template.Name
	}

	sortOrder, err := s.structureRepo.NextSortOrder(req.ProjectID, req.ParentID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute sort order: %w", err)
	}

	structure := &model.PlotStructure{
		ProjectID:   req.ProjectID,
		TemplateID:  template.ID,
		Name:        name,
		Description: req.Description,
		ParentID:    req.ParentID,
		SortOrder:   sortOrder,
	}

	// 零环节模板产生零环节实例，不视为错误
	sections := make([]model.PlotSection, len(template.Sections))
	for i, def := range template.Sections {
		sections[i] = model.PlotSection{
			SectionKey: def.Key,
			Title:      def.Title,
			Content:    "",
			SortOrder:  def.SortOrder,
		}
	}

	if err := s.structureRepo.CreateWithSections(structure, sections); err != nil {
		return nil, fmt.Errorf("failed to materialize plot structure: %w", err)
	}

	klog.V(6).Infof("materialized template %q into structure %d with %d sections",
		template.TemplateType, structure.ID, len(sections))

	return toPlotStructureDTO(structure), nil
}

// validateParent 父结构校验：同项目、仅一层嵌套
func (s *plotStructureService) validateParent(projectID, parentID uint) error {
	parent, err := s.structureRepo.GetBasic(parentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrInvalidParent
		}
		return fmt.Errorf("failed to get parent structure: %w", err)
	}
	if parent.ProjectID != projectID {
		return ErrInvalidParent
	}
	// 子结构不能再做父结构，嵌套只有一层，也因此不可能成环
	if parent.ParentID != nil {
		return ErrInvalidParent
	}
	return nil
}

// ListByProject 获取项目下的实例列表，无数据时返回空列表
func (s *plotStructureService) ListByProject(ctx context.Context, projectID uint) ([]*PlotStructureDTO, error) {
	structures, err := s.structureRepo.ListByProject(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list plot structures: %w", err)
	}

	result := make([]*PlotStructureDTO, len(structures))
	for i, st := range structures {
		result[i] = toPlotStructureDTO(&st)
	}
	return result, nil
}

// GetByID 获取实例详情
func (s *plotStructureService) GetByID(ctx context.Context, id uint) (*PlotStructureDetailDTO, error) {
	structure, err := s.structureRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlotStructureNotFound
		}
		return nil, fmt.Errorf("failed to get plot structure: %w", err)
	}

	sections := make([]PlotSectionDTO, len(structure.Sections))
	for i, sec := range structure.Sections {
		sections[i] = toPlotSectionDTO(&sec)
	}

	return &PlotStructureDetailDTO{
		PlotStructureDTO: *toPlotStructureDTO(structure),
		Sections:         sections,
	}, nil
}

// Update 更新实例，逐字段合并
func (s *plotStructureService) Update(ctx context.Context, id uint, req UpdatePlotStructureRequest) (*PlotStructureDTO, error) {
	structure, err := s.structureRepo.GetBasic(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlotStructureNotFound
		}
		return nil, fmt.Errorf("failed to get plot structure: %w", err)
	}

	if req.Name != nil {
		structure.Name = *req.Name
	}
	if req.Description != nil {
		structure.Description = *req.Description
	}
	if req.ParentID != nil {
		if *req.ParentID == 0 {
			structure.ParentID = nil
		} else {
			if *req.ParentID == structure.ID {
				return nil, ErrInvalidParent
			}
			// 自身有子结构时不能再挂到别人下面，嵌套只有一层
			hasChildren, err := s.structureRepo.HasChildren(structure.ID)
			if err != nil {
				return nil, fmt.Errorf("failed to check child structures: %w", err)
			}
			if hasChildren {
				return nil, ErrInvalidParent
			}
			if err := s.validateParent(structure.ProjectID, *req.ParentID); err != nil {
				return nil, err
			}
			structure.ParentID = req.ParentID
		}
	}
	if req.SortOrder != nil {
		structure.SortOrder = *req.SortOrder
	}

	if err := s.structureRepo.Save(structure); err != nil {
		return nil, fmt.Errorf("failed to update plot structure: %w", err)
	}

	return toPlotStructureDTO(structure), nil
}

// Delete 删除实例，级联删除其全部环节与子结构
func (s *plotStructureService) Delete(ctx context.Context, id uint) error {
	if _, err := s.structureRepo.GetBasic(id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPlotStructureNotFound
		}
		return fmt.Errorf("failed to get plot structure: %w", err)
	}

	if err := s.structureRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete plot structure: %w", err)
	}

	return nil
}

// toPlotStructureDTO 转换为 DTO
func toPlotStructureDTO(st *model.PlotStructure) *PlotStructureDTO {
	return &PlotStructureDTO{
		ID:          st.ID,
		ProjectID:   st.ProjectID,
		TemplateID:  st.TemplateID,
		Name:        st.Name,
		Description: st.Description,
		ParentID:    st.ParentID,
		SortOrder:   st.SortOrder,
		CreatedAt:   st.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt:   st.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
