package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/myclassroom/assessment-api/internal/service"
	appErrors "github.com/myclassroom/assessment-api/pkg/errors"
	"github.com/myclassroom/assessment-api/pkg/response"
)

// TeacherHandler wires the teacher service to HTTP routes.
type TeacherHandler struct {
	teachers *service.TeacherService
}

// NewTeacherHandler constructs a TeacherHandler.
func NewTeacherHandler(teachers *service.TeacherService) *TeacherHandler {
	return &TeacherHandler{teachers: teachers}
}

// List handles GET /api/teachers.
func (h *TeacherHandler) List(c *gin.Context) {
	teachers, err := h.teachers.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, teachers, "Data guru berhasil diambil")
}

// Get handles GET /api/teachers/:id.
func (h *TeacherHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "Guru tidak ditemukan")
	if !ok {
		return
	}
	teacher, err := h.teachers.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, teacher, "Detail guru berhasil diambil")
}

// Update handles PUT /api/teachers/:id (rename only).
func (h *TeacherHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "Guru tidak ditemukan")
	if !ok {
		return
	}
	var req service.UpdateTeacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "Nama guru tidak boleh kosong"))
		return
	}
	teacher, err := h.teachers.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, teacher, "Data guru berhasil diperbarui")
}
