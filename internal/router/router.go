package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/plotweave/backend/config"
	"github.com/plotweave/backend/internal/handler"
)

func Setup(
	cfg *config.Config,
	projectHandler *handler.ProjectHandler,
	chapterHandler *handler.ChapterHandler,
	codexHandler *handler.CodexHandler,
	outlineHandler *handler.OutlineHandler,
	whiteboardHandler *handler.WhiteboardHandler,
	templateHandler *handler.PlotTemplateHandler,
	structureHandler *handler.PlotStructureHandler,
) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	api := r.Group("/api")
	{
		templates := api.Group("/plot-templates")
		{
			templates.GET("", templateHandler.List)
			templates.GET("/:id", templateHandler.Get)
		}

		projects := api.Group("/projects")
		{
			projects.POST("", projectHandler.Create)
			projects.GET("", projectHandler.List)
			projects.GET("/:id", projectHandler.Get)
			projects.PUT("/:id", projectHandler.Update)
			projects.DELETE("/:id", projectHandler.Delete)

			projects.POST("/:id/chapters", chapterHandler.Create)
			projects.GET("/:id/chapters", chapterHandler.ListByProject)
			projects.POST("/:id/codex", codexHandler.Create)
			projects.GET("/:id/codex", codexHandler.ListByProject)
			projects.POST("/:id/outline", outlineHandler.Create)
			projects.GET("/:id/outline", outlineHandler.ListByProject)
			projects.POST("/:id/whiteboard", whiteboardHandler.Create)
			projects.GET("/:id/whiteboard", whiteboardHandler.ListByProject)

			projects.POST("/:id/plot-structures", structureHandler.Instantiate)
			projects.GET("/:id/plot-structures", structureHandler.ListByProject)
		}

		chapters := api.Group("/chapters")
		{
			chapters.GET("/:id", chapterHandler.Get)
			chapters.PUT("/:id", chapterHandler.Update)
			chapters.DELETE("/:id", chapterHandler.Delete)
		}

		codex := api.Group("/codex-entries")
		{
			codex.GET("/:id", codexHandler.Get)
			codex.PUT("/:id", codexHandler.Update)
			codex.DELETE("/:id", codexHandler.Delete)
		}

		outline := api.Group("/outline-nodes")
		{
			outline.GET("/:id", outlineHandler.Get)
			outline.GET("/:id/children", outlineHandler.ListChildren)
			outline.PUT("/:id", outlineHandler.Update)
			outline.DELETE("/:id", outlineHandler.Delete)
		}

		whiteboard := api.Group("/whiteboard-items")
		{
			whiteboard.GET("/:id", whiteboardHandler.Get)
			whiteboard.PUT("/:id", whiteboardHandler.Update)
			whiteboard.DELETE("/:id", whiteboardHandler.Delete)
		}

		structures := api.Group("/plot-structures")
		{
			structures.GET("/:id", structureHandler.Get)
			structures.PUT("/:id", structureHandler.Update)
			structures.DELETE("/:id", structureHandler.Delete)
			structures.GET("/:id/sections", structureHandler.ListSections)
		}

		sections := api.Group("/plot-sections")
		{
			sections.PUT("/:id", structureHandler.UpdateSection)
		}
	}

	return r
}
