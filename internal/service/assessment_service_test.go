package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/myclassroom/assessment-api/internal/models"
	"github.com/myclassroom/assessment-api/internal/scoring"
	appErrors "github.com/myclassroom/assessment-api/pkg/errors"
)

type mockAssessmentRepo struct {
	items      map[int64]*models.StudentAssessment
	nextID     int64
	listResult []models.StudentAssessment
	listTotal  int
	listErr    error
	deleted    []int64
	created    int
}

func (m *mockAssessmentRepo) List(ctx context.Context, filter models.AssessmentFilter) ([]models.StudentAssessment, int, error) {
	if m.listErr != nil {
		return nil, 0, m.listErr
	}
	return m.listResult, m.listTotal, nil
}

func (m *mockAssessmentRepo) FindByID(ctx context.Context, id int64) (*models.StudentAssessment, error) {
	if a, ok := m.items[id]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockAssessmentRepo) Create(ctx context.Context, assessment *models.StudentAssessment) error {
	if m.items == nil {
		m.items = make(map[int64]*models.StudentAssessment)
	}
	m.nextID++
	assessment.ID = m.nextID
	cp := *assessment
	m.items[assessment.ID] = &cp
	m.created++
	return nil
}

func (m *mockAssessmentRepo) Update(ctx context.Context, assessment *models.StudentAssessment) error {
	cp := *assessment
	m.items[assessment.ID] = &cp
	return nil
}

func (m *mockAssessmentRepo) Delete(ctx context.Context, id int64) error {
	delete(m.items, id)
	m.deleted = append(m.deleted, id)
	return nil
}

type mockTeacherReader struct {
	teachers map[int64]*models.Teacher
}

func (m *mockTeacherReader) FindByID(ctx context.Context, id int64) (*models.Teacher, error) {
	if t, ok := m.teachers[id]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockTeacherReader) Exists(ctx context.Context, id int64) (bool, error) {
	_, ok := m.teachers[id]
	return ok, nil
}

func newAssessmentService(repo *mockAssessmentRepo, teachers *mockTeacherReader, allowZero bool) *AssessmentService {
	return NewAssessmentService(repo, teachers, nil, validator.New(), zap.NewNop(), allowZero)
}

func meeting(index, score int) MeetingPayload {
	v := float64(score)
	return MeetingPayload{Meeting: index, Scores: MeetingScoresPayload{
		Kehadiran: v, Membaca: v, Kosakata: v, Pengucapan: v, Speaking: v,
	}}
}

func validRequest() SaveAssessmentRequest {
	return SaveAssessmentRequest{
		StudentName: "Ahmad Rizki",
		ClassName:   "3A",
		TeacherID:   1,
		Pertemuan:   []MeetingPayload{meeting(1, 5), meeting(2, 5), meeting(3, 5)},
	}
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	return appErr.Status
}

func TestAssessmentServiceCreateDerivesFields(t *testing.T) {
	repo := &mockAssessmentRepo{}
	teachers := &mockTeacherReader{teachers: map[int64]*models.Teacher{1: {ID: 1, Name: "Bu Sari"}}}
	svc := newAssessmentService(repo, teachers, true)

	created, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, 25, created.Meeting1Total)
	assert.Equal(t, 25, created.Meeting2Total)
	assert.Equal(t, 25, created.Meeting3Total)
	assert.Equal(t, 75, created.TotalWeekly)
	assert.Equal(t, 25.0, created.Average)
	assert.Equal(t, scoring.CategorySangatBaik, created.Category)
	assert.Equal(t, 1, created.WeekNumber)
	require.NotNil(t, created.Teacher)
	assert.Equal(t, "Bu Sari", created.Teacher.Name)
}

func TestAssessmentServiceCreateIgnoresClientDerivedFields(t *testing.T) {
	repo := &mockAssessmentRepo{}
	teachers := &mockTeacherReader{teachers: map[int64]*models.Teacher{1: {ID: 1, Name: "Bu Sari"}}}
	svc := newAssessmentService(repo, teachers, true)

	req := validRequest()
	req.Pertemuan = []MeetingPayload{meeting(1, 2), meeting(2, 2), meeting(3, 2)}

	created, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	// 3×10 per meeting; the caller never supplies totals.
	assert.Equal(t, 30, created.TotalWeekly)
	assert.Equal(t, 10.0, created.Average)
	assert.Equal(t, scoring.CategoryKurang, created.Category)
}

func TestAssessmentServiceCreateWrongMeetingCount(t *testing.T) {
	repo := &mockAssessmentRepo{}
	teachers := &mockTeacherReader{teachers: map[int64]*models.Teacher{1: {ID: 1}}}
	svc := newAssessmentService(repo, teachers, true)

	req := validRequest()
	req.Pertemuan = req.Pertemuan[:2]

	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, 400, statusOf(t, err))
	assert.Contains(t, err.Error(), "3 pertemuan")
	assert.Zero(t, repo.created, "nothing may be persisted after a validation failure")
}

func TestAssessmentServiceCreateMissingFields(t *testing.T) {
	repo := &mockAssessmentRepo{}
	teachers := &mockTeacherReader{teachers: map[int64]*models.Teacher{1: {ID: 1}}}
	svc := newAssessmentService(repo, teachers, true)

	req := validRequest()
	req.StudentName = "   "

	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, 400, statusOf(t, err))
	assert.Contains(t, err.Error(), "Data tidak lengkap")
}

func TestAssessmentServiceCreateUnknownTeacherIsNotFound(t *testing.T) {
	repo := &mockAssessmentRepo{}
	teachers := &mockTeacherReader{teachers: map[int64]*models.Teacher{}}
	svc := newAssessmentService(repo, teachers, true)

	_, err := svc.Create(context.Background(), validRequest())
	require.Error(t, err)
	assert.Equal(t, 404, statusOf(t, err))
	assert.Contains(t, err.Error(), "Guru tidak ditemukan")
}

func TestAssessmentServiceCreateInvalidClass(t *testing.T) {
	repo := &mockAssessmentRepo{}
	teachers := &mockTeacherReader{teachers: map[int64]*models.Teacher{1: {ID: 1}}}
	svc := newAssessmentService(repo, teachers, true)

	req := validRequest()
	req.ClassName = "6A"

	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, 400, statusOf(t, err))
	assert.Contains(t, err.Error(), "Kelas tidak valid")
}

func TestAssessmentServiceCreateScoreOutOfRange(t *testing.T) {
	repo := &mockAssessmentRepo{}
	teachers := &mockTeacherReader{teachers: map[int64]*models.Teacher{1: {ID: 1}}}
	svc := newAssessmentService(repo, teachers, true)

	req := validRequest()
	req.Pertemuan[1].Scores.Membaca = 6

	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, 400, statusOf(t, err))
	assert.Contains(t, err.Error(), "pertemuan 2")
	assert.Contains(t, err.Error(), "1-5")
}

func TestAssessmentServiceCreateFractionalScore(t *testing.T) {
	repo := &mockAssessmentRepo{}
	teachers := &mockTeacherReader{teachers: map[int64]*models.Teacher{1: {ID: 1}}}
	svc := newAssessmentService(repo, teachers, true)

	req := validRequest()
	req.Pertemuan[2].Scores.Speaking = 3.5

	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, 400, statusOf(t, err))
	assert.Contains(t, err.Error(), "pertemuan 3")
}

func TestAssessmentServiceCreateMeetingIndexMismatch(t *testing.T) {
	repo := &mockAssessmentRepo{}
	teachers := &mockTeacherReader{teachers: map[int64]*models.Teacher{1: {ID: 1}}}
	svc := newAssessmentService(repo, teachers, true)

	req := validRequest()
	req.Pertemuan[1].Meeting = 3

	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Data pertemuan 2 tidak valid")
}

func TestAssessmentServiceZeroScoreSentinel(t *testing.T) {
	teachers := &mockTeacherReader{teachers: map[int64]*models.Teacher{1: {ID: 1}}}

	// Grade-5 classes meet twice a week; the third meeting is stored all-zero.
	repo := &mockAssessmentRepo{}
	svc := newAssessmentService(repo, teachers, true)
	req := validRequest()
	req.ClassName = "5A"
	req.Pertemuan = []MeetingPayload{meeting(1, 5), meeting(2, 5), meeting(3, 0)}

	created, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 50, created.TotalWeekly)
	assert.Equal(t, 16.67, created.Average)
	assert.Equal(t, scoring.CategoryBaik, created.Category)

	// Grade 3-4 classes never accept zero.
	req = validRequest()
	req.Pertemuan = []MeetingPayload{meeting(1, 5), meeting(2, 5), meeting(3, 0)}
	_, err = svc.Create(context.Background(), req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pertemuan 3")

	// With the sentinel disabled, even grade 5 rejects zero.
	strict := newAssessmentService(&mockAssessmentRepo{}, teachers, false)
	req = validRequest()
	req.ClassName = "5A"
	req.Pertemuan = []MeetingPayload{meeting(1, 5), meeting(2, 5), meeting(3, 0)}
	_, err = strict.Create(context.Background(), req)
	require.Error(t, err)
}

func TestAssessmentServiceUpdate(t *testing.T) {
	repo := &mockAssessmentRepo{items: map[int64]*models.StudentAssessment{
		7: {ID: 7, StudentName: "Ahmad Rizki", ClassName: "3A", TeacherID: 1},
	}}
	teachers := &mockTeacherReader{teachers: map[int64]*models.Teacher{1: {ID: 1, Name: "Bu Sari"}}}
	svc := newAssessmentService(repo, teachers, true)

	req := validRequest()
	req.Pertemuan = []MeetingPayload{meeting(1, 4), meeting(2, 4), meeting(3, 4)}

	updated, err := svc.Update(context.Background(), 7, req)
	require.NoError(t, err)
	assert.Equal(t, int64(7), updated.ID)
	assert.Equal(t, 60, updated.TotalWeekly)
	assert.Equal(t, 20.0, updated.Average)
	assert.Equal(t, scoring.CategoryBaik, updated.Category)
}

func TestAssessmentServiceUpdateMissing(t *testing.T) {
	repo := &mockAssessmentRepo{}
	teachers := &mockTeacherReader{teachers: map[int64]*models.Teacher{1: {ID: 1}}}
	svc := newAssessmentService(repo, teachers, true)

	_, err := svc.Update(context.Background(), 99, validRequest())
	require.Error(t, err)
	assert.Equal(t, 404, statusOf(t, err))
}

func TestAssessmentServiceDelete(t *testing.T) {
	repo := &mockAssessmentRepo{items: map[int64]*models.StudentAssessment{5: {ID: 5}}}
	teachers := &mockTeacherReader{}
	svc := newAssessmentService(repo, teachers, true)

	require.NoError(t, svc.Delete(context.Background(), 5))
	assert.Equal(t, []int64{5}, repo.deleted)

	// Deleting it again is a not-found, never a silent success.
	err := svc.Delete(context.Background(), 5)
	require.Error(t, err)
	assert.Equal(t, 404, statusOf(t, err))
}

func TestAssessmentServiceListPagination(t *testing.T) {
	teachers := &mockTeacherReader{teachers: map[int64]*models.Teacher{1: {ID: 1, Name: "Bu Sari"}}}
	repo := &mockAssessmentRepo{
		listResult: []models.StudentAssessment{{ID: 11, TeacherID: 1}, {ID: 10, TeacherID: 1}},
		listTotal:  25,
	}
	svc := newAssessmentService(repo, teachers, true)

	items, pagination, err := svc.List(context.Background(), models.AssessmentFilter{Page: 2, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, 2, pagination.CurrentPage)
	assert.Equal(t, 3, pagination.TotalPages)
	assert.Equal(t, 25, pagination.TotalItems)
	assert.Equal(t, 10, pagination.ItemsPerPage)
	assert.True(t, pagination.HasNext)
	assert.True(t, pagination.HasPrev)

	require.NotNil(t, items[0].Teacher)
	assert.Equal(t, "Bu Sari", items[0].Teacher.Name)
}

func TestAssessmentServiceListLastPageAndEmpty(t *testing.T) {
	teachers := &mockTeacherReader{}
	repo := &mockAssessmentRepo{listTotal: 25}
	svc := newAssessmentService(repo, teachers, true)

	_, pagination, err := svc.List(context.Background(), models.AssessmentFilter{Page: 3, Limit: 10})
	require.NoError(t, err)
	assert.False(t, pagination.HasNext)
	assert.True(t, pagination.HasPrev)

	repo.listTotal = 0
	_, pagination, err = svc.List(context.Background(), models.AssessmentFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, pagination.CurrentPage)
	assert.Equal(t, 0, pagination.TotalPages)
	assert.False(t, pagination.HasNext)
	assert.False(t, pagination.HasPrev)
}

func TestAssessmentServiceGetMissing(t *testing.T) {
	svc := newAssessmentService(&mockAssessmentRepo{}, &mockTeacherReader{}, true)

	_, err := svc.Get(context.Background(), 42)
	require.Error(t, err)
	assert.Equal(t, 404, statusOf(t, err))
}
