package service

import (
	"context"
	"errors"
	"fmt"
	"unicode"

	"github.com/plotweave/backend/internal/model"
	"github.com/plotweave/backend/internal/repository"
)

var (
	ErrChapterNotFound = errors.New("chapter not found")
)

// CreateChapterRequest 创建章节请求
type CreateChapterRequest struct {
	ProjectID uint   `json:"-"` // 从 URL 参数获取，不接收 JSON
	Title     string `json:"title" binding:"required,min=1,max=255"`
	Summary   string `json:"summary" binding:"max=2000"`
	Content   string `json:"content"`
	SortOrder int    `json:"sort_order"`
}

// UpdateChapterRequest 更新章节请求
type UpdateChapterRequest struct {
	Title     *string `json:"title" binding:"omitempty,min=1,max=255"`
	Summary   *string `json:"summary" binding:"omitempty,max=2000"`
	Content   *string `json:"content"`
	SortOrder *int    `json:"sort_order"`
}

// ChapterDTO 章节数据传输对象
type ChapterDTO struct {
	ID        uint   `json:"id"`
	ProjectID uint   `json:"project_id"`
	Title     string `json:"title"`
	Summary   string `json:"summary"`
	Content   string `json:"content"`
	WordCount int    `json:"word_count"`
	SortOrder int    `json:"sort_order"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// ChapterService 章节服务接口
type ChapterService interface {
	Create(ctx context.Context, req CreateChapterRequest) (*ChapterDTO, error)
	ListByProject(ctx context.Context, projectID uint) ([]*ChapterDTO, error)
	GetByID(ctx context.Context, id uint) (*ChapterDTO, error)
	Update(ctx context.Context, id uint, req UpdateChapterRequest) (*ChapterDTO, error)
	Delete(ctx context.Context, id uint) error
}

// chapterService 实现
type chapterService struct {
	chapterRepo repository.ChapterRepository
	projectRepo repository.ProjectRepository
}

// NewChapterService 创建服务实例
func NewChapterService(chapterRepo repository.ChapterRepository, projectRepo repository.ProjectRepository) ChapterService {
	return &chapterService{
		chapterRepo: chapterRepo,
		projectRepo: projectRepo,
	}
}

// Create 创建章节
func (s *chapterService) Create(ctx context.Context, req CreateChapterRequest) (*ChapterDTO, error) {
	if _, err := s.projectRepo.Get(req.ProjectID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	chapter := &model.Chapter{
		ProjectID: req.ProjectID,
		Title:     req.Title,
		Summary:   req.Summary,
		Content:   req.Content,
		WordCount: countWords(req.Content),
		SortOrder: req.SortOrder,
	}

	if err := s.chapterRepo.Create(chapter); err != nil {
		return nil, fmt.Errorf("failed to create chapter: %w", err)
	}

	return toChapterDTO(chapter), nil
}

// ListByProject 获取项目下的章节列表
func (s *chapterService) ListByProject(ctx context.Context, projectID uint) ([]*ChapterDTO, error) {
	chapters, err := s.chapterRepo.GetByProject(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list chapters: %w", err)
	}

	result := make([]*ChapterDTO, len(chapters))
	for i, c := range chapters {
		result[i] = toChapterDTO(&c)
	}
	return result, nil
}

// GetByID 获取章节详情
func (s *chapterService) GetByID(ctx context.Context, id uint) (*ChapterDTO, error) {
	chapter, err := s.chapterRepo.Get(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrChapterNotFound
		}
		return nil, fmt.Errorf("failed to get chapter: %w", err)
	}

	return toChapterDTO(chapter), nil
}

// Update 更新章节，正文变更时重新统计字数
func (s *chapterService) Update(ctx context.Context, id uint, req UpdateChapterRequest) (*ChapterDTO, error) {
	chapter, err := s.chapterRepo.Get(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrChapterNotFound
		}
		return nil, fmt.Errorf("failed to get chapter: %w", err)
	}

	if req.Title != nil {
		chapter.Title = *req.Title
	}
	if req.Summary != nil {
		chapter.Summary = *req.Summary
	}
	if req.Content != nil {
		chapter.Content = *req.Content
		chapter.WordCount = countWords(*req.Content)
	}
	if req.SortOrder != nil {
		chapter.SortOrder = *req.SortOrder
	}

	if err := s.chapterRepo.Save(chapter); err != nil {
		return nil, fmt.Errorf("failed to update chapter: %w", err)
	}

	return toChapterDTO(chapter), nil
}

// Delete 删除章节
func (s *chapterService) Delete(ctx context.Context, id uint) error {
	if _, err := s.chapterRepo.Get(id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrChapterNotFound
		}
		return fmt.Errorf("failed to get chapter: %w", err)
	}

	if err := s.chapterRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete chapter: %w", err)
	}

	return nil
}

// countWords 统计字数：CJK 按字计，其余按空白分词计
func countWords(content string) int {
	count := 0
	inWord := false
	for _, r := range content {
		switch {
		case unicode.Is(unicode.Han, r):
			count++
			inWord = false
		case unicode.IsSpace(r):
			inWord = false
		default:
			if !inWord {
				count++
				inWord = true
			}
		}
	}
	return count
}

// toChapterDTO 转换为 DTO
func toChapterDTO(c *model.Chapter) *ChapterDTO {
	return &ChapterDTO{
		ID:        c.ID,
		ProjectID: c.ProjectID,
		Title:     c.Title,
		Summary:   c.Summary,
		Content:   c.Content,
		WordCount: c.WordCount,
		SortOrder: c.SortOrder,
		CreatedAt: c.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt: c.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
