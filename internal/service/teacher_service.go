package service

import (
	"context"
	"database/sql"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/myclassroom/assessment-api/internal/models"
	appErrors "github.com/myclassroom/assessment-api/pkg/errors"
)

const teacherListCacheKey = "teachers:list"

type teacherRepository interface {
	List(ctx context.Context) ([]models.Teacher, error)
	FindByID(ctx context.Context, id int64) (*models.Teacher, error)
	Update(ctx context.Context, teacher *models.Teacher) error
}

type teacherAssessmentLister interface {
	ListByTeacher(ctx context.Context, teacherID int64) ([]models.StudentAssessment, error)
}

// UpdateTeacherRequest renames a teacher; nothing else is mutable over HTTP.
type UpdateTeacherRequest struct {
	Name string `json:"name" validate:"required"`
}

// TeacherService orchestrates teacher reads and the rename operation.
type TeacherService struct {
	repo        teacherRepository
	assessments teacherAssessmentLister
	cache       *CacheService
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewTeacherService constructs a TeacherService.
func NewTeacherService(repo teacherRepository, assessments teacherAssessmentLister, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *TeacherService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TeacherService{repo: repo, assessments: assessments, cache: cache, validator: validate, logger: logger}
}

// List returns all teachers ordered by name with their assessment counts,
// served from cache when enabled.
func (s *TeacherService) List(ctx context.Context) ([]models.Teacher, error) {
	if s.cache != nil {
		var cached []models.Teacher
		if s.cache.Get(ctx, teacherListCacheKey, &cached) {
			return cached, nil
		}
	}

	teachers, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Gagal mengambil data guru")
	}
	if s.cache != nil {
		s.cache.Set(ctx, teacherListCacheKey, teachers)
	}
	return teachers, nil
}

// Get returns one teacher with all of its assessments newest-first.
func (s *TeacherService) Get(ctx context.Context, id int64) (*models.Teacher, error) {
	teacher, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Guru tidak ditemukan")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Gagal mengambil detail guru")
	}

	assessments, err := s.assessments.ListByTeacher(ctx, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Gagal mengambil detail guru")
	}
	teacher.Assessments = assessments
	return teacher, nil
}

// Update renames a teacher. A trimmed-empty name is a validation failure;
// a missing teacher is a distinct not-found.
func (s *TeacherService) Update(ctx context.Context, id int64, req UpdateTeacherRequest) (*models.Teacher, error) {
	name := strings.TrimSpace(req.Name)
	if err := s.validator.Struct(req); err != nil || name == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "Nama guru tidak boleh kosong")
	}

	teacher, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Guru tidak ditemukan")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Gagal memperbarui data guru")
	}

	teacher.Name = name
	if err := s.repo.Update(ctx, teacher); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Gagal memperbarui data guru")
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, "teachers:*")
	}
	return teacher, nil
}
