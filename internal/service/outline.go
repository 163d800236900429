package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/plotweave/backend/internal/model"
	"github.com/plotweave/backend/internal/repository"
)

var (
	ErrOutlineNodeNotFound = errors.New("outline node not found")
	ErrInvalidOutlineMove  = errors.New("invalid outline parent")
)

// CreateOutlineNodeRequest 创建大纲节点请求
type CreateOutlineNodeRequest struct {
	ProjectID   uint   `json:"-"` // 从 URL 参数获取，不接收 JSON
	ParentID    *uint  `json:"parent_id"`
	Title       string `json:"title" binding:"required,min=1,max=255"`
	Description string `json:"description" binding:"max=2000"`
	SortOrder   int    `json:"sort_order"`
}

// UpdateOutlineNodeRequest 更新大纲节点请求
type UpdateOutlineNodeRequest struct {
	ParentID    *uint   `json:"parent_id"`
	Title       *string `json:"title" binding:"omitempty,min=1,max=255"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
	SortOrder   *int    `json:"sort_order"`
}

// OutlineNodeDTO 节点数据传输对象
type OutlineNodeDTO struct {
	ID          uint   `json:"id"`
	ProjectID   uint   `json:"project_id"`
	ParentID    *uint  `json:"parent_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	SortOrder   int    `json:"sort_order"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// OutlineService 大纲树服务接口
type OutlineService interface {
	Create(ctx context.Context, req CreateOutlineNodeRequest) (*OutlineNodeDTO, error)
	ListByProject(ctx context.Context, projectID uint) ([]*OutlineNodeDTO, error)
	ListChildren(ctx context.Context, id uint) ([]*OutlineNodeDTO, error)
	GetByID(ctx context.Context, id uint) (*OutlineNodeDTO, error)
	Update(ctx context.Context, id uint, req UpdateOutlineNodeRequest) (*OutlineNodeDTO, error)
	Delete(ctx context.Context, id uint) error
}

// outlineService 实现
type outlineService struct {
	outlineRepo repository.OutlineRepository
	projectRepo repository.ProjectRepository
}

// NewOutlineService 创建服务实例
func NewOutlineService(outlineRepo repository.OutlineRepository, projectRepo repository.ProjectRepository) OutlineService {
	return &outlineService{
		outlineRepo: outlineRepo,
		projectRepo: projectRepo,
	}
}

// Create 创建节点
func (s *outlineService) Create(ctx context.Context, req CreateOutlineNodeRequest) (*OutlineNodeDTO, error) {
	if _, err := s.projectRepo.Get(req.ProjectID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	if req.ParentID != nil {
		parent, err := s.outlineRepo.Get(*req.ParentID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrInvalidOutlineMove
			}
			return nil, fmt.Errorf("failed to get parent node: %w", err)
		}
		if parent.ProjectID != req.ProjectID {
			return nil, ErrInvalidOutlineMove
		}
	}

	node := &model.OutlineNode{
		ProjectID:   req.ProjectID,
		ParentID:    req.ParentID,
		Title:       req.Title,
		Description: req.Description,
		SortOrder:   req.SortOrder,
	}

	if err := s.outlineRepo.Create(node); err != nil {
		return nil, fmt.Errorf("failed to create outline node: %w", err)
	}

	return toOutlineNodeDTO(node), nil
}

// ListByProject 获取项目下的所有节点，平铺返回，树形由前端组装
func (s *outlineService) ListByProject(ctx context.Context, projectID uint) ([]*OutlineNodeDTO, error) {
	nodes, err := s.outlineRepo.GetByProject(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list outline nodes: %w", err)
	}

	result := make([]*OutlineNodeDTO, len(nodes))
	for i, n := range nodes {
		result[i] = toOutlineNodeDTO(&n)
	}
	return result, nil
}

// ListChildren 获取节点的直接子节点，懒加载展开用
func (s *outlineService) ListChildren(ctx context.Context, id uint) ([]*OutlineNodeDTO, error) {
	if _, err := s.outlineRepo.Get(id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrOutlineNodeNotFound
		}
		return nil, fmt.Errorf("failed to get outline node: %w", err)
	}

	children, err := s.outlineRepo.GetChildren(id)
	if err != nil {
		return nil, fmt.Errorf("failed to list child nodes: %w", err)
	}

	result := make([]*OutlineNodeDTO, len(children))
	for i, n := range children {
		result[i] = toOutlineNodeDTO(&n)
	}
	return result, nil
}

// GetByID 获取节点详情
func (s *outlineService) GetByID(ctx context.Context, id uint) (*OutlineNodeDTO, error) {
	node, err := s.outlineRepo.Get(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrOutlineNodeNotFound
		}
		return nil, fmt.Errorf("failed to get outline node: %w", err)
	}

	return toOutlineNodeDTO(node), nil
}

// Update 更新节点，移动父节点时校验不落入自身子树
func (s *outlineService) Update(ctx context.Context, id uint, req UpdateOutlineNodeRequest) (*OutlineNodeDTO, error) {
	node, err := s.outlineRepo.Get(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrOutlineNodeNotFound
		}
		return nil, fmt.Errorf("failed to get outline node: %w", err)
	}

	if req.ParentID != nil {
		if err := s.validateMove(node, *req.ParentID); err != nil {
			return nil, err
		}
		node.ParentID = req.ParentID
	}
	if req.Title != nil {
		node.Title = *req.Title
	}
	if req.Description != nil {
		node.Description = *req.Description
	}
	if req.SortOrder != nil {
		node.SortOrder = *req.SortOrder
	}

	if err := s.outlineRepo.Save(node); err != nil {
		return nil, fmt.Errorf("failed to update outline node: %w", err)
	}

	return toOutlineNodeDTO(node), nil
}

// validateMove 父节点必须在同项目内，且不能是自己或自己的后代
func (s *outlineService) validateMove(node *model.OutlineNode, newParentID uint) error {
	if newParentID == node.ID {
		return ErrInvalidOutlineMove
	}

	parent, err := s.outlineRepo.Get(newParentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrInvalidOutlineMove
		}
		return fmt.Errorf("failed to get parent node: %w", err)
	}
	if parent.ProjectID != node.ProjectID {
		return ErrInvalidOutlineMove
	}

	// 沿祖先链上溯，新父节点不能位于被移动节点的子树内
	current := parent
	for current.ParentID != nil {
		if *current.ParentID == node.ID {
			return ErrInvalidOutlineMove
		}
		current, err = s.outlineRepo.Get(*current.ParentID)
		if err != nil {
			return fmt.Errorf("failed to walk ancestor chain: %w", err)
		}
	}
	return nil
}

// Delete 删除节点及其全部后代
func (s *outlineService) Delete(ctx context.Context, id uint) error {
	if _, err := s.outlineRepo.Get(id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrOutlineNodeNotFound
		}
		return fmt.Errorf("failed to get outline node: %w", err)
	}

	if err := s.outlineRepo.DeleteSubtree(id); err != nil {
		return fmt.Errorf("failed to delete outline subtree: %w", err)
	}

	return nil
}

// toOutlineNodeDTO 转换为 DTO
func toOutlineNodeDTO(n *model.OutlineNode) *OutlineNodeDTO {
	return &OutlineNodeDTO{
		ID:          n.ID,
		ProjectID:   n.ProjectID,
		ParentID:    n.ParentID,
		Title:       n.Title,
		Description: n.Description,
		SortOrder:   n.SortOrder,
		CreatedAt:   n.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt:   n.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
