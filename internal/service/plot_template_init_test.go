package service

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/plotweave/backend/internal/model"
	"gorm.io/gorm"
)

func newTemplateTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db error: %v", err)
	}
	if err := db.AutoMigrate(&model.PlotTemplate{}, &model.TemplateSection{}); err != nil {
		t.Fatalf("migrate error: %v", err)
	}
	return db
}

func TestInitDefaultPlotTemplates(t *testing.T) {
	db := newTemplateTestDB(t)

	if err := InitDefaultPlotTemplates(db); err != nil {
		t.Fatalf("seed error: %v", err)
	}

	var count int64
	if err := db.Model(&model.PlotTemplate{}).Count(&count).Error; err != nil {
		t.Fatalf("count error: %v", err)
	}
	if count != 8 {
		t.Fatalf("expected 8 templates, got %d", count)
	}

	var threeAct model.PlotTemplate
	if err := db.Preload("Sections", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order ASC, id ASC")
	}).Where("template_type = ?", "three_act").First(&threeAct).Error; err != nil {
		t.Fatalf("load three_act error: %v", err)
	}
	if !threeAct.IsDefault {
		t.Fatalf("expected three_act to be the default template")
	}
	if len(threeAct.Sections) != 9 {
		t.Fatalf("expected 9 sections for three_act, got %d", len(threeAct.Sections))
	}
	for i, sec := range threeAct.Sections {
		if sec.SortOrder != i+1 {
			t.Fatalf("unexpected sort order at index %d: %d", i, sec.SortOrder)
		}
	}
	if threeAct.Sections[0].Key != "act1_setup" {
		t.Fatalf("expected first section key act1_setup, got %q", threeAct.Sections[0].Key)
	}
}

func TestInitDefaultPlotTemplatesIdempotent(t *testing.T) {
	db := newTemplateTestDB(t)

	if err := InitDefaultPlotTemplates(db); err != nil {
		t.Fatalf("first seed error: %v", err)
	}
	if err := InitDefaultPlotTemplates(db); err != nil {
		t.Fatalf("second seed error: %v", err)
	}

	var count int64
	if err := db.Model(&model.PlotTemplate{}).Count(&count).Error; err != nil {
		t.Fatalf("count error: %v", err)
	}
	if count != 8 {
		t.Fatalf("expected 8 templates after double seed, got %d", count)
	}

	// 每个 template_type 只允许出现一次
	var types []string
	if err := db.Model(&model.PlotTemplate{}).Pluck("template_type", &types).Error; err != nil {
		t.Fatalf("pluck error: %v", err)
	}
	seen := make(map[string]bool, len(types))
	for _, tt := range types {
		if seen[tt] {
			t.Fatalf("duplicate template type %q", tt)
		}
		seen[tt] = true
	}
}

func TestInitDefaultPlotTemplatesBackfillsMissing(t *testing.T) {
	db := newTemplateTestDB(t)

	if err := InitDefaultPlotTemplates(db); err != nil {
		t.Fatalf("first seed error: %v", err)
	}

	// 模拟部分丢失：删掉一个模板及其环节定义
	var heros model.PlotTemplate
	if err := db.Where("template_type = ?", "heros_journey").First(&heros).Error; err != nil {
		t.Fatalf("load heros_journey error: %v", err)
	}
	if err := db.Where("template_id = ?", heros.ID).Delete(&model.TemplateSection{}).Error; err != nil {
		t.Fatalf("delete sections error: %v", err)
	}
	if err := db.Delete(&heros).Error; err != nil {
		t.Fatalf("delete template error: %v", err)
	}

	if err := InitDefaultPlotTemplates(db); err != nil {
		t.Fatalf("reseed error: %v", err)
	}

	var count int64
	if err := db.Model(&model.PlotTemplate{}).Count(&count).Error; err != nil {
		t.Fatalf("count error: %v", err)
	}
	if count != 8 {
		t.Fatalf("expected 8 templates after backfill, got %d", count)
	}

	var restored model.PlotTemplate
	if err := db.Preload("Sections").Where("template_type = ?", "heros_journey").First(&restored).Error; err != nil {
		t.Fatalf("heros_journey not restored: %v", err)
	}
	if len(restored.Sections) != 12 {
		t.Fatalf("expected 12 sections for restored heros_journey, got %d", len(restored.Sections))
	}
}

func TestBuiltinPlotTemplateSectionKeysUnique(t *testing.T) {
	for _, template := range builtinPlotTemplates() {
		seen := make(map[string]bool, len(template.Sections))
		for _, sec := range template.Sections {
			if sec.Key == "" || sec.Title == "" {
				t.Fatalf("template %q has section with empty key or title", template.TemplateType)
			}
			if seen[sec.Key] {
				t.Fatalf("template %q has duplicate section key %q", template.TemplateType, sec.Key)
			}
			seen[sec.Key] = true
		}
	}
}
