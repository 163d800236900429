package main

import (
	"flag"
	"log"
	"os"

	"k8s.io/klog/v2"

	"github.com/plotweave/backend/config"
	"github.com/plotweave/backend/internal/handler"
	"github.com/plotweave/backend/internal/pkg/database"
	"github.com/plotweave/backend/internal/repository"
	"github.com/plotweave/backend/internal/router"
	"github.com/plotweave/backend/internal/service"
)

func main() {
	// 初始化 klog
	klog.InitFlags(nil)
	flag.Parse()
	defer klog.Flush()

	klog.V(6).Info("服务启动中...")

	cfg := config.GetConfig()

	if err := os.MkdirAll(cfg.Data.Dir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	// 初始化数据库
	db, err := database.InitDB(cfg.Database.Type, cfg.Database.DSN)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// 种子化内置情节模板；失败只记录，目录留空等待下次启动重试
	if err := service.InitDefaultPlotTemplates(db); err != nil {
		klog.Errorf("初始化内置情节模板失败: %v", err)
	}

	// 初始化 Repository
	projectRepo := repository.NewProjectRepository(db)
	chapterRepo := repository.NewChapterRepository(db)
	codexRepo := repository.NewCodexRepository(db)
	outlineRepo := repository.NewOutlineRepository(db)
	whiteboardRepo := repository.NewWhiteboardRepository(db)
	templateRepo := repository.NewPlotTemplateRepository(db)
	structureRepo := repository.NewPlotStructureRepository(db)
	sectionRepo := repository.NewPlotSectionRepository(db)

	// 初始化 Service
	projectService := service.NewProjectService(projectRepo, chapterRepo, codexRepo, outlineRepo, whiteboardRepo, structureRepo)
	chapterService := service.NewChapterService(chapterRepo, projectRepo)
	codexService := service.NewCodexService(codexRepo, projectRepo)
	outlineService := service.NewOutlineService(outlineRepo, projectRepo)
	whiteboardService := service.NewWhiteboardService(whiteboardRepo, projectRepo)
	templateService := service.NewPlotTemplateService(templateRepo)
	structureService := service.NewPlotStructureService(structureRepo, templateRepo, projectRepo)
	sectionService := service.NewPlotSectionService(sectionRepo, structureRepo)

	// 初始化 Handler
	projectHandler := handler.NewProjectHandler(projectService)
	chapterHandler := handler.NewChapterHandler(chapterService)
	codexHandler := handler.NewCodexHandler(codexService)
	outlineHandler := handler.NewOutlineHandler(outlineService)
	whiteboardHandler := handler.NewWhiteboardHandler(whiteboardService)
	templateHandler := handler.NewPlotTemplateHandler(templateService)
	structureHandler := handler.NewPlotStructureHandler(structureService, sectionService)

	// 设置路由
	r := router.Setup(cfg, projectHandler, chapterHandler, codexHandler, outlineHandler,
		whiteboardHandler, templateHandler, structureHandler)

	log.Printf("Server starting on port %s...", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
