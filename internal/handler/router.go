package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/myclassroom/assessment-api/pkg/response"
)

// Routes registers the API surface on the provided engine under the given
// prefix (normally "/api"), plus the Prometheus endpoint and the JSON
// fallbacks for unmatched routes and panics.
func Routes(r *gin.Engine, prefix string, system *SystemHandler, teachers *TeacherHandler, assessments *AssessmentHandler, exportEnabled bool) {
	api := r.Group(prefix)

	api.GET("/health", system.Health)
	api.GET("/classes", system.Classes)
	api.GET("/classes/details", system.ClassDetails)

	api.GET("/teachers", teachers.List)
	api.GET("/teachers/:id", teachers.Get)
	api.PUT("/teachers/:id", teachers.Update)

	if exportEnabled {
		api.GET("/assessments/export", assessments.Export)
	}
	api.GET("/assessments", assessments.List)
	api.GET("/assessments/:id", assessments.Get)
	api.POST("/assessments", assessments.Create)
	api.PUT("/assessments/:id", assessments.Update)
	api.DELETE("/assessments/:id", assessments.Delete)

	r.GET("/metrics", system.Metrics)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, response.Envelope{Success: false, Message: "Endpoint tidak ditemukan"})
	})
}

// Recovery converts panics into the generic 500 envelope; details are logged
// by the recovery middleware itself, never returned to the client.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, _ interface{}) {
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.Envelope{
			Success: false,
			Message: "Terjadi kesalahan server internal",
		})
	})
}
