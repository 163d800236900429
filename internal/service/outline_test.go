package service

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/plotweave/backend/internal/model"
	"github.com/plotweave/backend/internal/repository"
	"gorm.io/gorm"
)

func newOutlineTestService(t *testing.T) (OutlineService, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	if err := db.AutoMigrate(&model.Project{}, &model.OutlineNode{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	service := NewOutlineService(
		repository.NewOutlineRepository(db),
		repository.NewProjectRepository(db),
	)
	return service, db
}

func TestOutlineListChildren(t *testing.T) {
	service, db := newOutlineTestService(t)
	ctx := context.Background()

	project := &model.Project{Title: "Outlined"}
	if err := db.Create(project).Error; err != nil {
		t.Fatalf("failed to create project: %v", err)
	}

	part, err := service.Create(ctx, CreateOutlineNodeRequest{
		ProjectID: project.ID,
		Title:     "Part One",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// 两个直接子节点乱序写入，一个孙节点不应出现在结果里
	ch2, err := service.Create(ctx, CreateOutlineNodeRequest{
		ProjectID: project.ID,
		ParentID:  &part.ID,
		Title:     "Chapter 2",
		SortOrder: 2,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	ch1, err := service.Create(ctx, CreateOutlineNodeRequest{
		ProjectID: project.ID,
		ParentID:  &part.ID,
		Title:     "Chapter 1",
		SortOrder: 1,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := service.Create(ctx, CreateOutlineNodeRequest{
		ProjectID: project.ID,
		ParentID:  &ch1.ID,
		Title:     "Scene 1.1",
	}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	children, err := service.ListChildren(ctx, part.ID)
	if err != nil {
		t.Fatalf("ListChildren() error = %v", err)
	}
	if len(children) != 2 {
		t.Fatalf("got %d children, want 2", len(children))
	}
	if children[0].ID != ch1.ID || children[1].ID != ch2.ID {
		t.Errorf("children out of order: got [%d %d], want [%d %d]",
			children[0].ID, children[1].ID, ch1.ID, ch2.ID)
	}
}

func TestOutlineListChildrenMissingNode(t *testing.T) {
	service, _ := newOutlineTestService(t)

	_, err := service.ListChildren(context.Background(), 99)
	if err != ErrOutlineNodeNotFound {
		t.Errorf("ListChildren() error = %v, want ErrOutlineNodeNotFound", err)
	}
}

func TestOutlineListChildrenLeaf(t *testing.T) {
	service, db := newOutlineTestService(t)
	ctx := context.Background()

	project := &model.Project{Title: "Sparse"}
	if err := db.Create(project).Error; err != nil {
		t.Fatalf("failed to create project: %v", err)
	}

	leaf, err := service.Create(ctx, CreateOutlineNodeRequest{
		ProjectID: project.ID,
		Title:     "Lone Node",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	children, err := service.ListChildren(ctx, leaf.ID)
	if err != nil {
		t.Fatalf("ListChildren() error = %v", err)
	}
	if len(children) != 0 {
		t.Errorf("got %d children for leaf node, want 0", len(children))
	}
}
