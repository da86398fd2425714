package router

import (
	"github.com/gin-gonic/gin"

	"tripdesk/internal/handler"
	"tripdesk/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(importH *handler.ImportHandler, healthH *handler.HealthHandler) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS())

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	imports := v1.Group("/imports")
	imports.POST("", importH.CreateImport)
	imports.POST("/upload", importH.UploadImport)
	imports.GET("/:id", importH.GetImport)
	imports.GET("/:id/result", importH.GetImportResult)
	imports.POST("/:id/confirm", importH.ConfirmImport)
	imports.GET("/:id/export", importH.ExportImport)

	v1.POST("/normalize", importH.NormalizeFields)

	return r
}
