package service

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/plotweave/backend/internal/model"
	"github.com/plotweave/backend/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newPipelineTestEnv(t *testing.T) (*gorm.DB, PlotStructureService, PlotSectionService) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.Project{},
		&model.PlotTemplate{},
		&model.TemplateSection{},
		&model.PlotStructure{},
		&model.PlotSection{},
	))
	require.NoError(t, InitDefaultPlotTemplates(db))

	structureRepo := repository.NewPlotStructureRepository(db)
	templateRepo := repository.NewPlotTemplateRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	sectionRepo := repository.NewPlotSectionRepository(db)

	structureService := NewPlotStructureService(structureRepo, templateRepo, projectRepo)
	sectionService := NewPlotSectionService(sectionRepo, structureRepo)
	return db, structureService, sectionService
}

func mustTemplate(t *testing.T, db *gorm.DB, templateType string) *model.PlotTemplate {
	t.Helper()
	var template model.PlotTemplate
	require.NoError(t, db.Preload("Sections", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order ASC, id ASC")
	}).Where("template_type = ?", templateType).First(&template).Error)
	return &template
}

func mustProject(t *testing.T, db *gorm.DB, title string) *model.Project {
	t.Helper()
	project := &model.Project{Title: title, Status: "draft"}
	require.NoError(t, db.Create(project).Error)
	return project
}

func TestInstantiateMaterializesAllSections(t *testing.T) {
	db, structureService, sectionService := newPipelineTestEnv(t)
	ctx := context.Background()

	project := mustProject(t, db, "The Long Winter")
	template := mustTemplate(t, db, "three_act")

	structure, err := structureService.Instantiate(ctx, InstantiateRequest{
		ProjectID:  project.ID,
		TemplateID: template.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, template.ID, structure.TemplateID)
	assert.Equal(t, "Three Act Structure", structure.Name)
	assert.Equal(t, 1, structure.SortOrder)

	sections, err := sectionService.ListByStructure(ctx, structure.ID)
	require.NoError(t, err)
	require.Len(t, sections, 9)

	// key 集合与模板一致，顺序与模板定义一致，正文初始为空
	wantKeys := make(map[string]int, len(template.Sections))
	for _, def := range template.Sections {
		wantKeys[def.Key] = def.SortOrder
	}
	for i, sec := range sections {
		assert.Equal(t, i+1, sec.SortOrder)
		assert.Equal(t, wantKeys[sec.SectionKey], sec.SortOrder)
		assert.Equal(t, "", sec.Content)
	}
	assert.Equal(t, "act1_setup", sections[0].SectionKey)
}

func TestInstantiateTemplateNotFound(t *testing.T) {
	db, structureService, _ := newPipelineTestEnv(t)
	project := mustProject(t, db, "Orphan")

	_, err := structureService.Instantiate(context.Background(), InstantiateRequest{
		ProjectID:  project.ID,
		TemplateID: 9999,
	})
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestInstantiateProjectNotFound(t *testing.T) {
	db, structureService, _ := newPipelineTestEnv(t)
	template := mustTemplate(t, db, "freeform")

	_, err := structureService.Instantiate(context.Background(), InstantiateRequest{
		ProjectID:  9999,
		TemplateID: template.ID,
	})
	assert.ErrorIs(t, err, ErrProjectNotFound)
}

func TestInstantiateRejectsInvalidTemplate(t *testing.T) {
	db, structureService, _ := newPipelineTestEnv(t)
	project := mustProject(t, db, "Broken Template")

	// 空 key 的环节定义属于模板数据问题，物化必须拒绝
	broken := &model.PlotTemplate{
		TemplateType: "broken",
		Name:         "Broken",
		Sections: []model.TemplateSection{
			{Key: "", Title: "Nameless", SortOrder: 1},
		},
	}
	require.NoError(t, db.Create(broken).Error)

	_, err := structureService.Instantiate(context.Background(), InstantiateRequest{
		ProjectID:  project.ID,
		TemplateID: broken.ID,
	})
	assert.ErrorIs(t, err, ErrInvalidTemplate)

	var count int64
	db.Model(&model.PlotStructure{}).Count(&count)
	assert.Zero(t, count)
}

func TestInstantiateZeroSectionTemplate(t *testing.T) {
	db, structureService, sectionService := newPipelineTestEnv(t)
	project := mustProject(t, db, "Empty")

	empty := &model.PlotTemplate{TemplateType: "empty", Name: "Empty Scaffold"}
	require.NoError(t, db.Create(empty).Error)

	structure, err := structureService.Instantiate(context.Background(), InstantiateRequest{
		ProjectID:  project.ID,
		TemplateID: empty.ID,
	})
	require.NoError(t, err)

	sections, err := sectionService.ListByStructure(context.Background(), structure.ID)
	require.NoError(t, err)
	assert.Empty(t, sections)
}

func TestInstantiateParentValidation(t *testing.T) {
	db, structureService, _ := newPipelineTestEnv(t)
	ctx := context.Background()

	project := mustProject(t, db, "Nested")
	otherProject := mustProject(t, db, "Elsewhere")
	template := mustTemplate(t, db, "freeform")

	parent, err := structureService.Instantiate(ctx, InstantiateRequest{
		ProjectID:  project.ID,
		TemplateID: template.ID,
	})
	require.NoError(t, err)

	child, err := structureService.Instantiate(ctx, InstantiateRequest{
		ProjectID:  project.ID,
		TemplateID: template.ID,
		Name:       "Subplot",
		ParentID:   &parent.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, child.SortOrder) // 子结构序号独立于顶层

	// 子结构不能再挂子结构，嵌套只允许一层
	_, err = structureService.Instantiate(ctx, InstantiateRequest{
		ProjectID:  project.ID,
		TemplateID: template.ID,
		ParentID:   &child.ID,
	})
	assert.ErrorIs(t, err, ErrInvalidParent)

	// 父结构必须属于同一项目
	_, err = structureService.Instantiate(ctx, InstantiateRequest{
		ProjectID:  otherProject.ID,
		TemplateID: template.ID,
		ParentID:   &parent.ID,
	})
	assert.ErrorIs(t, err, ErrInvalidParent)
}

func TestUpdatePlotStructureKeepsTemplateBinding(t *testing.T) {
	db, structureService, _ := newPipelineTestEnv(t)
	ctx := context.Background()

	project := mustProject(t, db, "Rename")
	template := mustTemplate(t, db, "story_circle")

	structure, err := structureService.Instantiate(ctx, InstantiateRequest{
		ProjectID:  project.ID,
		TemplateID: template.ID,
	})
	require.NoError(t, err)

	name := "Act One Spine"
	updated, err := structureService.Update(ctx, structure.ID, UpdatePlotStructureRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Act One Spine", updated.Name)
	assert.Equal(t, template.ID, updated.TemplateID)
	assert.Equal(t, structure.Description, updated.Description)
}

func TestUpdatePlotSectionAdvancesUpdatedAt(t *testing.T) {
	db, structureService, sectionService := newPipelineTestEnv(t)
	ctx := context.Background()

	project := mustProject(t, db, "Timestamps")
	template := mustTemplate(t, db, "freeform")

	structure, err := structureService.Instantiate(ctx, InstantiateRequest{
		ProjectID:  project.ID,
		TemplateID: template.ID,
	})
	require.NoError(t, err)

	var before model.PlotSection
	require.NoError(t, db.Where("plot_structure_id = ?", structure.ID).
		Order("sort_order ASC").First(&before).Error)
	var structureBefore model.PlotStructure
	require.NoError(t, db.First(&structureBefore, structure.ID).Error)

	// 越过秒级精度，时间戳推进才可观察
	time.Sleep(1100 * time.Millisecond)

	content := "She leaves home at dawn."
	_, err = sectionService.Update(ctx, before.ID, UpdatePlotSectionRequest{Content: &content})
	require.NoError(t, err)

	var after model.PlotSection
	require.NoError(t, db.First(&after, before.ID).Error)
	assert.True(t, after.UpdatedAt.After(before.UpdatedAt),
		"section updated_at did not advance: %v -> %v", before.UpdatedAt, after.UpdatedAt)

	// 普通保存同时刷新所属实例的 updated_at
	var structureAfter model.PlotStructure
	require.NoError(t, db.First(&structureAfter, structure.ID).Error)
	assert.True(t, structureAfter.UpdatedAt.After(structureBefore.UpdatedAt),
		"structure updated_at did not advance: %v -> %v", structureBefore.UpdatedAt, structureAfter.UpdatedAt)

	// suppress_touch 保存不刷新实例时间戳
	time.Sleep(1100 * time.Millisecond)
	content = "Revised at dawn."
	_, err = sectionService.Update(ctx, before.ID, UpdatePlotSectionRequest{
		Content:       &content,
		SuppressTouch: true,
	})
	require.NoError(t, err)

	var structureFinal model.PlotStructure
	require.NoError(t, db.First(&structureFinal, structure.ID).Error)
	assert.True(t, structureFinal.UpdatedAt.Equal(structureAfter.UpdatedAt),
		"structure updated_at changed under suppress_touch: %v -> %v",
		structureAfter.UpdatedAt, structureFinal.UpdatedAt)
}

func TestUpdatePlotStructureReparent(t *testing.T) {
	db, structureService, _ := newPipelineTestEnv(t)
	ctx := context.Background()

	project := mustProject(t, db, "Regrouped")
	template := mustTemplate(t, db, "freeform")

	main, err := structureService.Instantiate(ctx, InstantiateRequest{
		ProjectID:  project.ID,
		TemplateID: template.ID,
		Name:       "Main Plot",
	})
	require.NoError(t, err)

	subplot, err := structureService.Instantiate(ctx, InstantiateRequest{
		ProjectID:  project.ID,
		TemplateID: template.ID,
		Name:       "Subplot",
	})
	require.NoError(t, err)

	// 顶层结构挂到另一个顶层结构下
	updated, err := structureService.Update(ctx, subplot.ID, UpdatePlotStructureRequest{ParentID: &main.ID})
	require.NoError(t, err)
	require.NotNil(t, updated.ParentID)
	assert.Equal(t, main.ID, *updated.ParentID)

	// 已有子结构的不能再挂到别人下面
	_, err = structureService.Update(ctx, main.ID, UpdatePlotStructureRequest{ParentID: &subplot.ID})
	assert.ErrorIs(t, err, ErrInvalidParent)

	// 不能挂到自己下面
	_, err = structureService.Update(ctx, subplot.ID, UpdatePlotStructureRequest{ParentID: &subplot.ID})
	assert.ErrorIs(t, err, ErrInvalidParent)

	// 传 0 脱离父结构
	detach := uint(0)
	updated, err = structureService.Update(ctx, subplot.ID, UpdatePlotStructureRequest{ParentID: &detach})
	require.NoError(t, err)
	assert.Nil(t, updated.ParentID)
}

func TestDeletePlotStructureRemovesSections(t *testing.T) {
	db, structureService, sectionService := newPipelineTestEnv(t)
	ctx := context.Background()

	project := mustProject(t, db, "Doomed")
	template := mustTemplate(t, db, "seven_point")

	structure, err := structureService.Instantiate(ctx, InstantiateRequest{
		ProjectID:  project.ID,
		TemplateID: template.ID,
	})
	require.NoError(t, err)

	require.NoError(t, structureService.Delete(ctx, structure.ID))

	list, err := structureService.ListByProject(ctx, project.ID)
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = sectionService.ListByStructure(ctx, structure.ID)
	assert.ErrorIs(t, err, ErrPlotStructureNotFound)

	var orphanCount int64
	db.Model(&model.PlotSection{}).Where("plot_structure_id = ?", structure.ID).Count(&orphanCount)
	assert.Zero(t, orphanCount)
}
