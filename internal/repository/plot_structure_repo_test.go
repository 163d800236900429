package repository

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/plotweave/backend/internal/model"
	"gorm.io/gorm"
)

func newStructureTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db error: %v", err)
	}
	if err := db.AutoMigrate(&model.PlotStructure{}, &model.PlotSection{}); err != nil {
		t.Fatalf("migrate error: %v", err)
	}
	return db
}

func TestPlotStructureCreateWithSections(t *testing.T) {
	db := newStructureTestDB(t)
	repo := NewPlotStructureRepository(db)

	structure := &model.PlotStructure{ProjectID: 1, TemplateID: 3, Name: "Three Act Structure"}
	sections := []model.PlotSection{
		{SectionKey: "act1_setup", Title: "Act I: Setup", SortOrder: 1},
		{SectionKey: "act2_rising_action", Title: "Act II: Rising Action", SortOrder: 2},
		{SectionKey: "act3_resolution", Title: "Act III: Resolution", SortOrder: 3},
	}
	if err := repo.CreateWithSections(structure, sections); err != nil {
		t.Fatalf("CreateWithSections error: %v", err)
	}

	got, err := repo.GetByID(structure.ID)
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if len(got.Sections) != 3 {
		t.Fatalf("expected 3 sections, got %d", len(got.Sections))
	}
	for _, sec := range got.Sections {
		if sec.PlotStructureID != structure.ID {
			t.Fatalf("section %q not bound to structure: %d", sec.SectionKey, sec.PlotStructureID)
		}
		if sec.Content != "" {
			t.Fatalf("expected empty initial content, got %q", sec.Content)
		}
	}
}

func TestPlotStructureCreateWithSectionsRollsBack(t *testing.T) {
	db := newStructureTestDB(t)
	repo := NewPlotStructureRepository(db)

	// 第二个环节与第一个 key 重复，唯一索引使插入在中途失败
	structure := &model.PlotStructure{ProjectID: 1, TemplateID: 3, Name: "Broken"}
	sections := []model.PlotSection{
		{SectionKey: "setup", Title: "Setup", SortOrder: 1},
		{SectionKey: "setup", Title: "Setup Again", SortOrder: 2},
		{SectionKey: "finale", Title: "Finale", SortOrder: 3},
	}
	if err := repo.CreateWithSections(structure, sections); err == nil {
		t.Fatalf("expected error from duplicate section key")
	}

	var structureCount, sectionCount int64
	if err := db.Model(&model.PlotStructure{}).Count(&structureCount).Error; err != nil {
		t.Fatalf("count structures error: %v", err)
	}
	if err := db.Model(&model.PlotSection{}).Count(&sectionCount).Error; err != nil {
		t.Fatalf("count sections error: %v", err)
	}
	if structureCount != 0 || sectionCount != 0 {
		t.Fatalf("expected full rollback, got %d structures and %d sections", structureCount, sectionCount)
	}
}

func TestPlotStructureDeleteCascades(t *testing.T) {
	db := newStructureTestDB(t)
	repo := NewPlotStructureRepository(db)

	parent := &model.PlotStructure{ProjectID: 1, TemplateID: 2, Name: "Main Plot"}
	if err := repo.CreateWithSections(parent, []model.PlotSection{
		{SectionKey: "hook", Title: "Hook", SortOrder: 1},
		{SectionKey: "midpoint", Title: "Midpoint", SortOrder: 2},
	}); err != nil {
		t.Fatalf("create parent error: %v", err)
	}

	child := &model.PlotStructure{ProjectID: 1, TemplateID: 8, Name: "Subplot", ParentID: &parent.ID}
	if err := repo.CreateWithSections(child, []model.PlotSection{
		{SectionKey: "beginning", Title: "Beginning", SortOrder: 1},
	}); err != nil {
		t.Fatalf("create child error: %v", err)
	}

	if err := repo.Delete(parent.ID); err != nil {
		t.Fatalf("Delete error: %v", err)
	}

	var structureCount, sectionCount int64
	db.Model(&model.PlotStructure{}).Count(&structureCount)
	db.Model(&model.PlotSection{}).Count(&sectionCount)
	if structureCount != 0 {
		t.Fatalf("expected cascade to remove child structures, %d remain", structureCount)
	}
	if sectionCount != 0 {
		t.Fatalf("expected cascade to remove all sections, %d remain", sectionCount)
	}
}

func TestPlotStructureNextSortOrder(t *testing.T) {
	db := newStructureTestDB(t)
	repo := NewPlotStructureRepository(db)

	order, err := repo.NextSortOrder(7, nil)
	if err != nil {
		t.Fatalf("NextSortOrder error: %v", err)
	}
	if order != 1 {
		t.Fatalf("expected first sort order 1, got %d", order)
	}

	first := &model.PlotStructure{ProjectID: 7, TemplateID: 1, Name: "A", SortOrder: order}
	if err := repo.CreateWithSections(first, nil); err != nil {
		t.Fatalf("create error: %v", err)
	}

	order, err = repo.NextSortOrder(7, nil)
	if err != nil {
		t.Fatalf("NextSortOrder error: %v", err)
	}
	if order != 2 {
		t.Fatalf("expected next sort order 2, got %d", order)
	}

	// 子结构的序号独立于顶层
	order, err = repo.NextSortOrder(7, &first.ID)
	if err != nil {
		t.Fatalf("NextSortOrder for children error: %v", err)
	}
	if order != 1 {
		t.Fatalf("expected child sort order 1, got %d", order)
	}
}

func TestPlotStructureDeleteByProjectID(t *testing.T) {
	db := newStructureTestDB(t)
	repo := NewPlotStructureRepository(db)

	for i := 0; i < 2; i++ {
		st := &model.PlotStructure{ProjectID: 42, TemplateID: 1, Name: "S", SortOrder: i + 1}
		if err := repo.CreateWithSections(st, []model.PlotSection{
			{SectionKey: "only", Title: "Only", SortOrder: 1},
		}); err != nil {
			t.Fatalf("create error: %v", err)
		}
	}
	other := &model.PlotStructure{ProjectID: 43, TemplateID: 1, Name: "Keep"}
	if err := repo.CreateWithSections(other, []model.PlotSection{
		{SectionKey: "only", Title: "Only", SortOrder: 1},
	}); err != nil {
		t.Fatalf("create error: %v", err)
	}

	if err := repo.DeleteByProjectID(42); err != nil {
		t.Fatalf("DeleteByProjectID error: %v", err)
	}

	remaining, err := repo.ListByProject(42)
	if err != nil {
		t.Fatalf("ListByProject error: %v", err)
	}
	if len(remaining) != 0 {
		t.Fatalf("expected project 42 empty, got %d structures", len(remaining))
	}

	var sectionCount int64
	db.Model(&model.PlotSection{}).Count(&sectionCount)
	if sectionCount != 1 {
		t.Fatalf("expected only project 43 section to survive, got %d", sectionCount)
	}
}
