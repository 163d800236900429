package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/plotweave/backend/internal/model"
	"github.com/plotweave/backend/internal/repository"
)

var (
	ErrCodexEntryNotFound = errors.New("codex entry not found")
)

// CreateCodexEntryRequest 创建故事圣经条目请求
type CreateCodexEntryRequest struct {
	ProjectID   uint   `json:"-"` // 从 URL 参数获取，不接收 JSON
	EntryType   string `json:"entry_type" binding:"required,oneof=character location item event"`
	Name        string `json:"name" binding:"required,min=1,max=255"`
	Description string `json:"description"`
	Aliases     string `json:"aliases" binding:"max=500"`
	SortOrder   int    `json:"sort_order"`
}

// UpdateCodexEntryRequest 更新条目请求
// EntryType 创建后不可变更，条目不会在类别之间迁移
type UpdateCodexEntryRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=255"`
	Description *string `json:"description"`
	Aliases     *string `json:"aliases" binding:"omitempty,max=500"`
	SortOrder   *int    `json:"sort_order"`
}

// CodexEntryDTO 条目数据传输对象
type CodexEntryDTO struct {
	ID          uint   `json:"id"`
	ProjectID   uint   `json:"project_id"`
	EntryType   string `json:"entry_type"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Aliases     string `json:"aliases"`
	SortOrder   int    `json:"sort_order"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// CodexService 故事圣经服务接口
type CodexService interface {
	Create(ctx context.Context, req CreateCodexEntryRequest) (*CodexEntryDTO, error)
	ListByProject(ctx context.Context, projectID uint, entryType string) ([]*CodexEntryDTO, error)
	GetByID(ctx context.Context, id uint) (*CodexEntryDTO, error)
	Update(ctx context.Context, id uint, req UpdateCodexEntryRequest) (*CodexEntryDTO, error)
	Delete(ctx context.Context, id uint) error
}

// codexService 实现
type codexService struct {
	codexRepo   repository.CodexRepository
	projectRepo repository.ProjectRepository
}

// NewCodexService 创建服务实例
func NewCodexService(codexRepo repository.CodexRepository, projectRepo repository.ProjectRepository) CodexService {
	return &codexService{
		codexRepo:   codexRepo,
		projectRepo: projectRepo,
	}
}

// Create 创建条目
func (s *codexService) Create(ctx context.Context, req CreateCodexEntryRequest) (*CodexEntryDTO, error) {
	if _, err := s.projectRepo.Get(req.ProjectID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	entry := &model.CodexEntry{
		ProjectID:   req.ProjectID,
		EntryType:   req.EntryType,
		Name:        req.Name,
		Description: req.Description,
		Aliases:     req.Aliases,
		SortOrder:   req.SortOrder,
	}

	if err := s.codexRepo.Create(entry); err != nil {
		return nil, fmt.Errorf("failed to create codex entry: %w", err)
	}

	return toCodexEntryDTO(entry), nil
}

// ListByProject 获取项目下的条目，可按类别过滤
func (s *codexService) ListByProject(ctx context.Context, projectID uint, entryType string) ([]*CodexEntryDTO, error) {
	entries, err := s.codexRepo.GetByProject(projectID, entryType)
	if err != nil {
		return nil, fmt.Errorf("failed to list codex entries: %w", err)
	}

	result := make([]*CodexEntryDTO, len(entries))
	for i, e := range entries {
		result[i] = toCodexEntryDTO(&e)
	}
	return result, nil
}

// GetByID 获取条目详情
func (s *codexService) GetByID(ctx context.Context, id uint) (*CodexEntryDTO, error) {
	entry, err := s.codexRepo.Get(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCodexEntryNotFound
		}
		return nil, fmt.Errorf("failed to get codex entry: %w", err)
	}

	return toCodexEntryDTO(entry), nil
}

// Update 更新条目，逐字段合并
func (s *codexService) Update(ctx context.Context, id uint, req UpdateCodexEntryRequest) (*CodexEntryDTO, error) {
	entry, err := s.codexRepo.Get(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCodexEntryNotFound
		}
		return nil, fmt.Errorf("failed to get codex entry: %w", err)
	}

	if req.Name != nil {
		entry.Name = *req.Name
	}
	if req.Description != nil {
		entry.Description = *req.Description
	}
	if req.Aliases != nil {
		entry.Aliases = *req.Aliases
	}
	if req.SortOrder != nil {
		entry.SortOrder = *req.SortOrder
	}

	if err := s.codexRepo.Save(entry); err != nil {
		return nil, fmt.Errorf("failed to update codex entry: %w", err)
	}

	return toCodexEntryDTO(entry), nil
}

// Delete 删除条目
func (s *codexService) Delete(ctx context.Context, id uint) error {
	if _, err := s.codexRepo.Get(id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrCodexEntryNotFound
		}
		return fmt.Errorf("failed to get codex entry: %w", err)
	}

	if err := s.codexRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete codex entry: %w", err)
	}

	return nil
}

// toCodexEntryDTO 转换为 DTO
func toCodexEntryDTO(e *model.CodexEntry) *CodexEntryDTO {
	return &CodexEntryDTO{
		ID:          e.ID,
		ProjectID:   e.ProjectID,
		EntryType:   e.EntryType,
		Name:        e.Name,
		Description: e.Description,
		Aliases:     e.Aliases,
		SortOrder:   e.SortOrder,
		CreatedAt:   e.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt:   e.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
