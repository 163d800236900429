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
	ErrProjectNotFound = errors.New("project not found")
)

// CreateProjectRequest 创建项目请求
type CreateProjectRequest struct {
	Title       string `json:"title" binding:"required,min=1,max=255"`
	Description string `json:"description" binding:"max=1000"`
	Genre       string `json:"genre" binding:"max=100"`
}

// UpdateProjectRequest 更新项目请求
type UpdateProjectRequest struct {
	Title       *string `json:"title" binding:"omitempty,min=1,max=255"`
	Description *string `json:"description" binding:"omitempty,max=1000"`
	Genre       *string `json:"genre" binding:"omitempty,max=100"`
	Status      *string `json:"status" binding:"omitempty,oneof=draft writing completed archived"`
}

// ProjectDTO 项目数据传输对象
type ProjectDTO struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Genre       string `json:"genre"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// ProjectService 项目服务接口
type ProjectService interface {
	Create(ctx context.Context, req CreateProjectRequest) (*ProjectDTO, error)
	List(ctx context.Context) ([]*ProjectDTO, error)
	GetByID(ctx context.Context, id uint) (*ProjectDTO, error)
	Update(ctx context.Context, id uint, req UpdateProjectRequest) (*ProjectDTO, error)
	Delete(ctx context.Context, id uint) error
}

// projectService 实现
type projectService struct {
	projectRepo    repository.ProjectRepository
	chapterRepo    repository.ChapterRepository
	codexRepo      repository.CodexRepository
	outlineRepo    repository.OutlineRepository
	whiteboardRepo repository.WhiteboardRepository
	structureRepo  repository.PlotStructureRepository
}

// NewProjectService 创建服务实例
func NewProjectService(
	projectRepo repository.ProjectRepository,
	chapterRepo repository.ChapterRepository,
	codexRepo repository.CodexRepository,
	outlineRepo repository.OutlineRepository,
	whiteboardRepo repository.WhiteboardRepository,
	structureRepo repository.PlotStructureRepository,
) ProjectService {
	return &projectService{
		projectRepo:    projectRepo,
		chapterRepo:    chapterRepo,
		codexRepo:      codexRepo,
		outlineRepo:    outlineRepo,
		whiteboardRepo: whiteboardRepo,
		structureRepo:  structureRepo,
	}
}

// Create 创建项目
func (s *projectService) Create(ctx context.Context, req CreateProjectRequest) (*ProjectDTO, error) {
	project := &model.Project{
		Title:       req.Title,
		Description: req.Description,
		Genre:       req.Genre,
		Status:      "draft",
	}

	if err := s.projectRepo.Create(project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return toProjectDTO(project), nil
}

// List 获取项目列表
func (s *projectService) List(ctx context.Context) ([]*ProjectDTO, error) {
	projects, err := s.projectRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	result := make([]*ProjectDTO, len(projects))
	for i, p := range projects {
		result[i] = toProjectDTO(&p)
	}
	return result, nil
}

// GetByID 获取项目详情
func (s *projectService) GetByID(ctx context.Context, id uint) (*ProjectDTO, error) {
	project, err := s.projectRepo.Get(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	return toProjectDTO(project), nil
}

// Update 更新项目，逐字段合并
func (s *projectService) Update(ctx context.Context, id uint, req UpdateProjectRequest) (*ProjectDTO, error) {
	project, err := s.projectRepo.Get(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	if req.Title != nil {
		project.Title = *req.Title
	}
	if req.Description != nil {
		project.Description = *req.Description
	}
	if req.Genre != nil {
		project.Genre = *req.Genre
	}
	if req.Status != nil {
		project.Status = *req.Status
	}

	if err := s.projectRepo.Save(project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	return toProjectDTO(project), nil
}

// Delete 删除项目及其全部关联数据
func (s *projectService) Delete(ctx context.Context, id uint) error {
	if _, err := s.projectRepo.Get(id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("failed to get project: %w", err)
	}

	if err := s.structureRepo.DeleteByProjectID(id); err != nil {
		return fmt.Errorf("failed to delete plot structures: %w", err)
	}
	if err := s.chapterRepo.DeleteByProjectID(id); err != nil {
		return fmt.Errorf("failed to delete chapters: %w", err)
	}
	if err := s.codexRepo.DeleteByProjectID(id); err != nil {
		return fmt.Errorf("failed to delete codex entries: %w", err)
	}
	if err := s.outlineRepo.DeleteByProjectID(id); err != nil {
		return fmt.Errorf("failed to delete outline nodes: %w", err)
	}
	if err := s.whiteboardRepo.DeleteByProjectID(id); err != nil {
		return fmt.Errorf("failed to delete whiteboard items: %w", err)
	}
	if err := s.projectRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	klog.V(6).Infof("deleted project %d and associated data", id)
	return nil
}

// toProjectDTO 转换为 DTO
func toProjectDTO(p *model.Project) *ProjectDTO {
	return &ProjectDTO{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Genre:       p.Genre,
		Status:      p.Status,
		CreatedAt:   p.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt:   p.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
