package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/myclassroom/assessment-api/internal/models"
	"github.com/myclassroom/assessment-api/internal/service"
	appErrors "github.com/myclassroom/assessment-api/pkg/errors"
	"github.com/myclassroom/assessment-api/pkg/response"
)

// AssessmentHandler wires the assessment service to HTTP routes.
type AssessmentHandler struct {
	assessments *service.AssessmentService
	exports     *service.ExportService
}

// NewAssessmentHandler constructs an AssessmentHandler.
func NewAssessmentHandler(assessments *service.AssessmentService, exports *service.ExportService) *AssessmentHandler {
	return &AssessmentHandler{assessments: assessments, exports: exports}
}

// List handles GET /api/assessments with pagination and student-name search.
func (h *AssessmentHandler) List(c *gin.Context) {
	filter := models.AssessmentFilter{
		Search: strings.TrimSpace(c.Query("q")),
	}
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if limit, err := strconv.Atoi(c.DefaultQuery("limit", "10")); err == nil {
		filter.Limit = limit
	}

	assessments, pagination, err := h.assessments.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paginated(c, assessments, pagination, "Data penilaian berhasil diambil")
}

// Get handles GET /api/assessments/:id.
func (h *AssessmentHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "Data penilaian tidak ditemukan")
	if !ok {
		return
	}
	assessment, err := h.assessments.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, assessment, "Detail penilaian berhasil diambil")
}

// Create handles POST /api/assessments.
func (h *AssessmentHandler) Create(c *gin.Context) {
	var req service.SaveAssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest,
			"Data tidak lengkap. Pastikan semua field terisi dengan benar."))
		return
	}
	assessment, err := h.assessments.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, assessment, "Penilaian berhasil disimpan")
}

// Update handles PUT /api/assessments/:id with full-replacement semantics.
func (h *AssessmentHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "Data penilaian tidak ditemukan")
	if !ok {
		return
	}
	var req service.SaveAssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest,
			"Data tidak lengkap. Pastikan semua field terisi dengan benar."))
		return
	}
	assessment, err := h.assessments.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, assessment, "Penilaian berhasil diperbarui")
}

// Delete handles DELETE /api/assessments/:id.
func (h *AssessmentHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "Data penilaian tidak ditemukan")
	if !ok {
		return
	}
	if err := h.assessments.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, nil, "Penilaian berhasil dihapus")
}

// Export handles GET /api/assessments/export?format=csv|pdf&className=.
func (h *AssessmentHandler) Export(c *gin.Context) {
	if h.exports == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "Endpoint tidak ditemukan"))
		return
	}
	format := service.ExportFormat(strings.ToLower(c.DefaultQuery("format", "csv")))
	className := strings.TrimSpace(c.Query("className"))

	result, err := h.exports.Recap(c.Request.Context(), className, format)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+result.Filename+`"`)
	c.Data(http.StatusOK, result.ContentType, result.Content)
}

// pathID parses the :id path segment; a non-numeric id behaves as not-found,
// matching how the dashboard has always treated broken links.
func pathID(c *gin.Context, notFoundMessage string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, notFoundMessage))
		return 0, false
	}
	return id, true
}
