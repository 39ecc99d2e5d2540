package http

import (
	"path/filepath"

	"github.com/gin-gonic/gin"

	"webqa/internal/bootstrap"
	"webqa/internal/transport/http/handler"
	"webqa/internal/transport/http/middleware"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery(), middleware.CORS())

	healthHandler := handler.NewHealthHandler(app)
	router.StaticFile("/", filepath.Join(app.Config.App.WebDir, "index.html"))
	router.GET("/healthz", healthHandler.Check)

	qaHandler := handler.NewQAHandler(app.Pipeline)
	historyHandler := handler.NewHistoryHandler(nil)
	if app.RunRepo != nil {
		historyHandler = handler.NewHistoryHandler(app.RunRepo)
	}

	// The bare routes and the /api prefix serve the same endpoints.
	for _, group := range []*gin.RouterGroup{&router.RouterGroup, router.Group("/api")} {
		group.POST("/ingest", qaHandler.Ingest)
		group.POST("/query", qaHandler.Query)
		group.GET("/status", qaHandler.Status)
		group.GET("/ingestions", historyHandler.List)
		group.GET("/ingestions/:runId", historyHandler.Get)
	}

	return router
}
