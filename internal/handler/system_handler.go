package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/myclassroom/assessment-api/internal/service"
)

// SystemHandler serves the static endpoints: health, class list, metrics.
type SystemHandler struct {
	classes *service.ClassService
	metrics *service.MetricsService
}

// NewSystemHandler constructs a SystemHandler.
func NewSystemHandler(classes *service.ClassService, metrics *service.MetricsService) *SystemHandler {
	return &SystemHandler{classes: classes, metrics: metrics}
}

// Health handles GET /api/health.
func (h *SystemHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "MyClassroom API berjalan dengan baik",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// Classes handles GET /api/classes.
func (h *SystemHandler) Classes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    h.classes.Names(),
	})
}

// ClassDetails handles GET /api/classes/details with per-level meeting counts.
func (h *SystemHandler) ClassDetails(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    h.classes.Details(),
	})
}

// Metrics handles GET /metrics.
func (h *SystemHandler) Metrics(c *gin.Context) {
	h.metrics.Handler().ServeHTTP(c.Writer, c.Request)
}
