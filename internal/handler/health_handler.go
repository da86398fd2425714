package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tripdesk/internal/importer"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	queue *importer.SubmissionQueue
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(queue *importer.SubmissionQueue) *HealthHandler {
	return &HealthHandler{queue: queue}
}

// Liveness handles GET /healthz
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness handles GET /readyz
func (h *HealthHandler) Readiness(c *gin.Context) {
	if h.queue == nil || h.queue.Closed() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": "submission queue not accepting work"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
