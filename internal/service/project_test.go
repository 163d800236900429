package service

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/plotweave/backend/internal/model"
	"github.com/plotweave/backend/internal/repository"
	"gorm.io/gorm"
)

func newProjectTestService(t *testing.T) (ProjectService, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	if err := db.AutoMigrate(
		&model.Project{},
		&model.Chapter{},
		&model.CodexEntry{},
		&model.OutlineNode{},
		&model.WhiteboardItem{},
		&model.PlotTemplate{},
		&model.TemplateSection{},
		&model.PlotStructure{},
		&model.PlotSection{},
	); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	service := NewProjectService(
		repository.NewProjectRepository(db),
		repository.NewChapterRepository(db),
		repository.NewCodexRepository(db),
		repository.NewOutlineRepository(db),
		repository.NewWhiteboardRepository(db),
		repository.NewPlotStructureRepository(db),
	)
	return service, db
}

func TestProjectDeleteCascades(t *testing.T) {
	service, db := newProjectTestService(t)
	ctx := context.Background()

	doomed, err := service.Create(ctx, CreateProjectRequest{Title: "Doomed"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	keeper, err := service.Create(ctx, CreateProjectRequest{Title: "Keeper"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// 两个项目各挂一份全类型数据
	for _, projectID := range []uint{doomed.ID, keeper.ID} {
		if err := db.Create(&model.Chapter{ProjectID: projectID, Title: "Ch 1"}).Error; err != nil {
			t.Fatalf("failed to seed chapter: %v", err)
		}
		if err := db.Create(&model.CodexEntry{ProjectID: projectID, EntryType: "character", Name: "Hero"}).Error; err != nil {
			t.Fatalf("failed to seed codex entry: %v", err)
		}
		if err := db.Create(&model.OutlineNode{ProjectID: projectID, Title: "Part One"}).Error; err != nil {
			t.Fatalf("failed to seed outline node: %v", err)
		}
		if err := db.Create(&model.WhiteboardItem{ProjectID: projectID, NodeKey: "board-root"}).Error; err != nil {
			t.Fatalf("failed to seed whiteboard item: %v", err)
		}
		structure := &model.PlotStructure{ProjectID: projectID, TemplateID: 1, Name: "Main Plot"}
		if err := db.Create(structure).Error; err != nil {
			t.Fatalf("failed to seed plot structure: %v", err)
		}
		if err := db.Create(&model.PlotSection{PlotStructureID: structure.ID, SectionKey: "beginning", Title: "Beginning"}).Error; err != nil {
			t.Fatalf("failed to seed plot section: %v", err)
		}
	}

	if err := service.Delete(ctx, doomed.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	if _, err := service.GetByID(ctx, doomed.ID); err != ErrProjectNotFound {
		t.Errorf("GetByID() error = %v, want ErrProjectNotFound", err)
	}

	for name, value := range map[string]interface{}{
		"chapters":   &model.Chapter{},
		"codex":      &model.CodexEntry{},
		"outline":    &model.OutlineNode{},
		"whiteboard": &model.WhiteboardItem{},
		"structures": &model.PlotStructure{},
	} {
		var count int64
		db.Model(value).Where("project_id = ?", doomed.ID).Count(&count)
		if count != 0 {
			t.Errorf("%s: %d rows remain for deleted project", name, count)
		}
	}

	var sectionCount int64
	db.Model(&model.PlotSection{}).Count(&sectionCount)
	if sectionCount != 1 {
		t.Errorf("got %d plot sections remaining, want 1", sectionCount)
	}

	// 另一个项目的数据完好
	if _, err := service.GetByID(ctx, keeper.ID); err != nil {
		t.Errorf("keeper project missing after delete: %v", err)
	}
	var keeperChapters int64
	db.Model(&model.Chapter{}).Where("project_id = ?", keeper.ID).Count(&keeperChapters)
	if keeperChapters != 1 {
		t.Errorf("got %d keeper chapters, want 1", keeperChapters)
	}
}

func TestProjectUpdatePartial(t *testing.T) {
	service, _ := newProjectTestService(t)
	ctx := context.Background()

	created, err := service.Create(ctx, CreateProjectRequest{
		Title: "Working Title",
		Genre: "fantasy",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if created.Status != "draft" {
		t.Errorf("Status = %q, want draft", created.Status)
	}

	status := "writing"
	updated, err := service.Update(ctx, created.ID, UpdateProjectRequest{Status: &status})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Status != "writing" {
		t.Errorf("Status = %q, want writing", updated.Status)
	}
	if updated.Title != "Working Title" || updated.Genre != "fantasy" {
		t.Errorf("untouched fields changed: title %q, genre %q", updated.Title, updated.Genre)
	}
}
