package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/plotweave/backend/internal/model"
	"github.com/plotweave/backend/internal/repository"
)

var (
	ErrWhiteboardItemNotFound = errors.New("whiteboard item not found")
)

// CreateWhiteboardItemRequest 创建画布元素请求
// NodeKey 缺省时由服务端生成 UUID，前端离线建卡时可自带
type CreateWhiteboardItemRequest struct {
	ProjectID uint    `json:"-"` // 从 URL 参数获取，不接收 JSON
	NodeKey   string  `json:"node_key" binding:"omitempty,uuid"`
	Kind      string  `json:"kind" binding:"omitempty,oneof=note card connector"`
	Content   string  `json:"content"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	Color     string  `json:"color" binding:"max=20"`
	ZIndex    int     `json:"z_index"`
}

// UpdateWhiteboardItemRequest 更新画布元素请求
type UpdateWhiteboardItemRequest struct {
	Content *string  `json:"content"`
	X       *float64 `json:"x"`
	Y       *float64 `json:"y"`
	Width   *float64 `json:"width"`
	Height  *float64 `json:"height"`
	Color   *string  `json:"color" binding:"omitempty,max=20"`
	ZIndex  *int     `json:"z_index"`
}

// WhiteboardItemDTO 画布元素数据传输对象
type WhiteboardItemDTO struct {
	ID        uint    `json:"id"`
	ProjectID uint    `json:"project_id"`
	NodeKey   string  `json:"node_key"`
	Kind      string  `json:"kind"`
	Content   string  `json:"content"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	Color     string  `json:"color"`
	ZIndex    int     `json:"z_index"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

// WhiteboardService 白板服务接口
type WhiteboardService interface {
	Create(ctx context.Context, req CreateWhiteboardItemRequest) (*WhiteboardItemDTO, error)
	ListByProject(ctx context.Context, projectID uint) ([]*WhiteboardItemDTO, error)
	GetByID(ctx context.Context, id uint) (*WhiteboardItemDTO, error)
	Update(ctx context.Context, id uint, req UpdateWhiteboardItemRequest) (*WhiteboardItemDTO, error)
	Delete(ctx context.Context, id uint) error
}

// whiteboardService 实现
type whiteboardService struct {
	whiteboardRepo repository.WhiteboardRepository
	projectRepo    repository.ProjectRepository
}

// NewWhiteboardService 创建服务实例
func NewWhiteboardService(whiteboardRepo repository.WhiteboardRepository, projectRepo repository.ProjectRepository) WhiteboardService {
	return &whiteboardService{
		whiteboardRepo: whiteboardRepo,
		projectRepo:    projectRepo,
	}
}

// Create 创建画布元素
func (s *whiteboardService) Create(ctx context.Context, req CreateWhiteboardItemRequest) (*WhiteboardItemDTO, error) {
	if _, err := s.projectRepo.Get(req.ProjectID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	nodeKey := req.NodeKey
	if nodeKey == "" {
		nodeKey = uuid.New().String()
	}
	kind := req.Kind
	if kind == "" {
		kind = "note"
	}

	item := &model.WhiteboardItem{
		ProjectID: req.ProjectID,
		NodeKey:   nodeKey,
		Kind:      kind,
		Content:   req.Content,
		X:         req.X,
		Y:         req.Y,
		Width:     req.Width,
		Height:    req.Height,
		Color:     req.Color,
		ZIndex:    req.ZIndex,
	}

	if err := s.whiteboardRepo.Create(item); err != nil {
		return nil, fmt.Errorf("failed to create whiteboard item: %w", err)
	}

	return toWhiteboardItemDTO(item), nil
}

// ListByProject 获取项目画布的全部元素
func (s *whiteboardService) ListByProject(ctx context.Context, projectID uint) ([]*WhiteboardItemDTO, error) {
	items, err := s.whiteboardRepo.GetByProject(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list whiteboard items: %w", err)
	}

	result := make([]*WhiteboardItemDTO, len(items))
	for i, item := range items {
		result[i] = toWhiteboardItemDTO(&item)
	}
	return result, nil
}

// GetByID 获取元素详情
func (s *whiteboardService) GetByID(ctx context.Context, id uint) (*WhiteboardItemDTO, error) {
	item, err := s.whiteboardRepo.Get(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWhiteboardItemNotFound
		}
		return nil, fmt.Errorf("failed to get whiteboard item: %w", err)
	}

	return toWhiteboardItemDTO(item), nil
}

// Update 更新元素，逐字段合并，拖动产生的高频保存也走这里
func (s *whiteboardService) Update(ctx context.Context, id uint, req UpdateWhiteboardItemRequest) (*WhiteboardItemDTO, error) {
	item, err := s.whiteboardRepo.Get(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWhiteboardItemNotFound
		}
		return nil, fmt.Errorf("failed to get whiteboard item: %w", err)
	}

	if req.Content != nil {
		item.Content = *req.Content
	}
	if req.X != nil {
		item.X = *req.X
	}
	if req.Y != nil {
		item.Y = *req.Y
	}
	if req.Width != nil {
		item.Width = *req.Width
	}
	if req.Height != nil {
		item.Height = *req.Height
	}
	if req.Color != nil {
		item.Color = *req.Color
	}
	if req.ZIndex != nil {
		item.ZIndex = *req.ZIndex
	}

	if err := s.whiteboardRepo.Save(item); err != nil {
		return nil, fmt.Errorf("failed to update whiteboard item: %w", err)
	}

	return toWhiteboardItemDTO(item), nil
}

// Delete 删除元素
func (s *whiteboardService) Delete(ctx context.Context, id uint) error {
	if _, err := s.whiteboardRepo.Get(id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrWhiteboardItemNotFound
		}
		return fmt.Errorf("failed to get whiteboard item: %w", err)
	}

	if err := s.whiteboardRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete whiteboard item: %w", err)
	}

	return nil
}

// toWhiteboardItemDTO 转换为 DTO
func toWhiteboardItemDTO(item *model.WhiteboardItem) *WhiteboardItemDTO {
	return &WhiteboardItemDTO{
		ID:        item.ID,
		ProjectID: item.ProjectID,
		NodeKey:   item.NodeKey,
		Kind:      item.Kind,
		Content:   item.Content,
		X:         item.X,
		Y:         item.Y,
		Width:     item.Width,
		Height:    item.Height,
		Color:     item.Color,
		ZIndex:    item.ZIndex,
		CreatedAt: item.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt: item.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
