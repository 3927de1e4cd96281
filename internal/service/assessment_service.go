package service

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/myclassroom/assessment-api/internal/models"
	"github.com/myclassroom/assessment-api/internal/scoring"
	appErrors "github.com/myclassroom/assessment-api/pkg/errors"
)

type assessmentRepository interface {
	List(ctx context.Context, filter models.AssessmentFilter) ([]models.StudentAssessment, int, error)
	FindByID(ctx context.Context, id int64) (*models.StudentAssessment, error)
	Create(ctx context.Context, assessment *models.StudentAssessment) error
	Update(ctx context.Context, assessment *models.StudentAssessment) error
	Delete(ctx context.Context, id int64) error
}

type teacherReader interface {
	FindByID(ctx context.Context, id int64) (*models.Teacher, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

// MeetingScoresPayload carries one meeting's five aspect scores. Fields are
// float64 on purpose: a fractional score like 3.5 must be rejected with a
// meeting-specific message, not fail JSON binding with a generic one.
type MeetingScoresPayload struct {
	Kehadiran  float64 `json:"kehadiran"`
	Membaca    float64 `json:"membaca"`
	Kosakata   float64 `json:"kosakata"`
	Pengucapan float64 `json:"pengucapan"`
	Speaking   float64 `json:"speaking"`
}

// MeetingPayload tags a score set with its 1-based meeting index.
type MeetingPayload struct {
	Meeting int                  `json:"meeting"`
	Scores  MeetingScoresPayload `json:"scores"`
}

// SaveAssessmentRequest is the full-replacement payload shared by create and
// update; there are no partial patches.
type SaveAssessmentRequest struct {
	StudentName   string           `json:"studentName" validate:"required"`
	ClassName     string           `json:"className" validate:"required"`
	TeacherID     int64            `json:"teacherId" validate:"required"`
	WeekNumber    int              `json:"weekNumber" validate:"omitempty,min=1"`
	Pertemuan     []MeetingPayload `json:"pertemuan"`
	ProgressNotes *string          `json:"progressNotes"`
}

// AssessmentService orchestrates validation, scoring and persistence for
// student assessments.
type AssessmentService struct {
	repo             assessmentRepository
	teachers         teacherReader
	cache            *CacheService
	validator        *validator.Validate
	logger           *zap.Logger
	allowZeroNotHeld bool
}

// NewAssessmentService constructs an AssessmentService.
func NewAssessmentService(repo assessmentRepository, teachers teacherReader, cache *CacheService, validate *validator.Validate, logger *zap.Logger, allowZeroNotHeld bool) *AssessmentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssessmentService{
		repo:             repo,
		teachers:         teachers,
		cache:            cache,
		validator:        validate,
		logger:           logger,
		allowZeroNotHeld: allowZeroNotHeld,
	}
}

// List returns a page of assessments newest-first, each with its teacher
// attached, plus pagination metadata.
func (s *AssessmentService) List(ctx context.Context, filter models.AssessmentFilter) ([]models.StudentAssessment, *models.Pagination, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = 10
	}

	assessments, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Gagal mengambil data penilaian")
	}
	if err := s.attachTeachers(ctx, assessments); err != nil {
		return nil, nil, err
	}

	totalPages := 0
	if total > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(filter.Limit)))
	}
	pagination := &models.Pagination{
		CurrentPage:  filter.Page,
		TotalPages:   totalPages,
		TotalItems:   total,
		ItemsPerPage: filter.Limit,
		HasNext:      filter.Page < totalPages,
		HasPrev:      filter.Page > 1,
	}
	return assessments, pagination, nil
}

// Get returns one assessment with its teacher.
func (s *AssessmentService) Get(ctx context.Context, id int64) (*models.StudentAssessment, error) {
	assessment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Data penilaian tidak ditemukan")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Gagal mengambil detail penilaian")
	}
	if teacher, err := s.teachers.FindByID(ctx, assessment.TeacherID); err == nil {
		assessment.Teacher = teacher
	}
	return assessment, nil
}

// Create validates the payload, recomputes every derived field from the raw
// scores and persists the assessment.
func (s *AssessmentService) Create(ctx context.Context, req SaveAssessmentRequest) (*models.StudentAssessment, error) {
	meetings, err := s.validate(ctx, req)
	if err != nil {
		return nil, err
	}

	assessment := s.build(req, meetings)
	if err := s.repo.Create(ctx, assessment); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Gagal menyimpan penilaian")
	}
	s.invalidateTeacherCache(ctx)

	if teacher, err := s.teachers.FindByID(ctx, assessment.TeacherID); err == nil {
		assessment.Teacher = teacher
	}
	return assessment, nil
}

// Update replaces an existing assessment wholesale after the same validation
// and recomputation as Create.
func (s *AssessmentService) Update(ctx context.Context, id int64, req SaveAssessmentRequest) (*models.StudentAssessment, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Data penilaian tidak ditemukan")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Gagal memperbarui penilaian")
	}

	meetings, err := s.validate(ctx, req)
	if err != nil {
		return nil, err
	}

	assessment := s.build(req, meetings)
	assessment.ID = existing.ID
	assessment.CreatedAt = existing.CreatedAt
	if err := s.repo.Update(ctx, assessment); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Gagal memperbarui penilaian")
	}
	s.invalidateTeacherCache(ctx)

	if teacher, err := s.teachers.FindByID(ctx, assessment.TeacherID); err == nil {
		assessment.Teacher = teacher
	}
	return assessment, nil
}

// Delete removes an assessment; a missing id is a not-found, never a silent
// success.
func (s *AssessmentService) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "Data penilaian tidak ditemukan")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Gagal menghapus penilaian")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Gagal menghapus penilaian")
	}
	s.invalidateTeacherCache(ctx)
	return nil
}

// validate runs the ordered checks: presence/shape, teacher existence, class
// membership, then per-meeting scores (first failure wins).
func (s *AssessmentService) validate(ctx context.Context, req SaveAssessmentRequest) ([scoring.MeetingCount]scoring.MeetingScores, error) {
	var meetings [scoring.MeetingCount]scoring.MeetingScores

	if err := s.validator.Struct(req); err != nil || strings.TrimSpace(req.StudentName) == "" || req.Pertemuan == nil {
		return meetings, appErrors.Clone(appErrors.ErrValidation, "Data tidak lengkap. Pastikan semua field terisi dengan benar.")
	}
	if len(req.Pertemuan) != scoring.MeetingCount {
		return meetings, appErrors.Clone(appErrors.ErrValidation, "Data pertemuan harus berisi 3 pertemuan")
	}

	exists, err := s.teachers.Exists(ctx, req.TeacherID)
	if err != nil {
		return meetings, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Gagal memeriksa data guru")
	}
	if !exists {
		return meetings, appErrors.Clone(appErrors.ErrNotFound, "Guru tidak ditemukan")
	}

	if !scoring.IsValidClass(req.ClassName) {
		return meetings, appErrors.Clone(appErrors.ErrValidation, "Kelas tidak valid")
	}

	policy := scoring.PolicyFor(req.ClassName, s.allowZeroNotHeld)
	for i, meeting := range req.Pertemuan {
		if meeting.Meeting != i+1 {
			return meetings, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("Data pertemuan %d tidak valid", i+1))
		}
		converted, ok := toMeetingScores(meeting.Scores, policy)
		if !ok {
			return meetings, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf(
				"Skor pada pertemuan %d tidak valid. Semua skor harus berupa angka bulat %d-%d.",
				i+1, policy.Min, policy.Max))
		}
		meetings[i] = converted
	}
	return meetings, nil
}

func (s *AssessmentService) build(req SaveAssessmentRequest, meetings [scoring.MeetingCount]scoring.MeetingScores) *models.StudentAssessment {
	summary := scoring.Summarize(meetings)

	week := req.WeekNumber
	if week < 1 {
		week = 1
	}

	var notes *string
	if req.ProgressNotes != nil {
		if trimmed := strings.TrimSpace(*req.ProgressNotes); trimmed != "" {
			notes = &trimmed
		}
	}

	return &models.StudentAssessment{
		StudentName: strings.TrimSpace(req.StudentName),
		ClassName:   req.ClassName,
		WeekNumber:  week,
		TeacherID:   req.TeacherID,

		Meeting1Kehadiran:  meetings[0].Kehadiran,
		Meeting1Membaca:    meetings[0].Membaca,
		Meeting1Kosakata:   meetings[0].Kosakata,
		Meeting1Pengucapan: meetings[0].Pengucapan,
		Meeting1Speaking:   meetings[0].Speaking,
		Meeting1Total:      summary.MeetingTotals[0],

		Meeting2Kehadiran:  meetings[1].Kehadiran,
		Meeting2Membaca:    meetings[1].Membaca,
		Meeting2Kosakata:   meetings[1].Kosakata,
		Meeting2Pengucapan: meetings[1].Pengucapan,
		Meeting2Speaking:   meetings[1].Speaking,
		Meeting2Total:      summary.MeetingTotals[1],

		Meeting3Kehadiran:  meetings[2].Kehadiran,
		Meeting3Membaca:    meetings[2].Membaca,
		Meeting3Kosakata:   meetings[2].Kosakata,
		Meeting3Pengucapan: meetings[2].Pengucapan,
		Meeting3Speaking:   meetings[2].Speaking,
		Meeting3Total:      summary.MeetingTotals[2],

		TotalWeekly:   summary.TotalWeekly,
		Average:       summary.Average,
		Category:      summary.Category,
		ProgressNotes: notes,
	}
}

func (s *AssessmentService) attachTeachers(ctx context.Context, assessments []models.StudentAssessment) error {
	loaded := make(map[int64]*models.Teacher)
	for i := range assessments {
		id := assessments[i].TeacherID
		teacher, ok := loaded[id]
		if !ok {
			var err error
			teacher, err = s.teachers.FindByID(ctx, id)
			if err != nil {
				if err == sql.ErrNoRows {
					continue
				}
				return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Gagal mengambil data guru")
			}
			loaded[id] = teacher
		}
		assessments[i].Teacher = teacher
	}
	return nil
}

// invalidateTeacherCache drops cached teacher lists; assessment writes change
// the per-teacher assessment counts.
func (s *AssessmentService) invalidateTeacherCache(ctx context.Context) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, "teachers:*")
	}
}

func toMeetingScores(p MeetingScoresPayload, policy scoring.Policy) (scoring.MeetingScores, bool) {
	fields := [5]float64{p.Kehadiran, p.Membaca, p.Kosakata, p.Pengucapan, p.Speaking}
	var values [5]int
	for i, raw := range fields {
		if raw != math.Trunc(raw) {
			return scoring.MeetingScores{}, false
		}
		value := int(raw)
		if !policy.Contains(value) {
			return scoring.MeetingScores{}, false
		}
		values[i] = value
	}
	return scoring.MeetingScores{
		Kehadiran:  values[0],
		Membaca:    values[1],
		Kosakata:   values[2],
		Pengucapan: values[3],
		Speaking:   values[4],
	}, true
}
