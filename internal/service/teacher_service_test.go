package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/myclassroom/assessment-api/internal/models"
)

type mockTeacherRepo struct {
	items      map[int64]*models.Teacher
	listResult []models.Teacher
	listErr    error
	updated    []int64
}

func (m *mockTeacherRepo) List(ctx context.Context) ([]models.Teacher, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.listResult, nil
}

func (m *mockTeacherRepo) FindByID(ctx context.Context, id int64) (*models.Teacher, error) {
	if t, ok := m.items[id]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockTeacherRepo) Update(ctx context.Context, teacher *models.Teacher) error {
	cp := *teacher
	m.items[teacher.ID] = &cp
	m.updated = append(m.updated, teacher.ID)
	return nil
}

type mockAssessmentLister struct {
	byTeacher map[int64][]models.StudentAssessment
}

func (m *mockAssessmentLister) ListByTeacher(ctx context.Context, teacherID int64) ([]models.StudentAssessment, error) {
	return m.byTeacher[teacherID], nil
}

func newTeacherService(repo *mockTeacherRepo, lister *mockAssessmentLister) *TeacherService {
	return NewTeacherService(repo, lister, nil, validator.New(), zap.NewNop())
}

func TestTeacherServiceList(t *testing.T) {
	count := 3
	repo := &mockTeacherRepo{listResult: []models.Teacher{
		{ID: 1, Name: "Bu Ani", AssessmentCount: &count},
		{ID: 2, Name: "Bu Sari"},
	}}
	svc := newTeacherService(repo, &mockAssessmentLister{})

	teachers, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, teachers, 2)
	assert.Equal(t, "Bu Ani", teachers[0].Name)
	require.NotNil(t, teachers[0].AssessmentCount)
	assert.Equal(t, 3, *teachers[0].AssessmentCount)
}

func TestTeacherServiceGetAttachesAssessments(t *testing.T) {
	repo := &mockTeacherRepo{items: map[int64]*models.Teacher{
		1: {ID: 1, Name: "Bu Sari"},
	}}
	lister := &mockAssessmentLister{byTeacher: map[int64][]models.StudentAssessment{
		1: {{ID: 9, TeacherID: 1}, {ID: 4, TeacherID: 1}},
	}}
	svc := newTeacherService(repo, lister)

	teacher, err := svc.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Bu Sari", teacher.Name)
	require.Len(t, teacher.Assessments, 2)
	assert.Equal(t, int64(9), teacher.Assessments[0].ID)
}

func TestTeacherServiceGetMissing(t *testing.T) {
	svc := newTeacherService(&mockTeacherRepo{}, &mockAssessmentLister{})

	_, err := svc.Get(context.Background(), 42)
	require.Error(t, err)
	assert.Equal(t, 404, statusOf(t, err))
}

func TestTeacherServiceUpdate(t *testing.T) {
	repo := &mockTeacherRepo{items: map[int64]*models.Teacher{
		1: {ID: 1, Name: "Bu Sari"},
	}}
	svc := newTeacherService(repo, &mockAssessmentLister{})

	teacher, err := svc.Update(context.Background(), 1, UpdateTeacherRequest{Name: "  Bu Sari Dewi  "})
	require.NoError(t, err)
	assert.Equal(t, "Bu Sari Dewi", teacher.Name)
	assert.Equal(t, []int64{1}, repo.updated)
}

func TestTeacherServiceUpdateBlankName(t *testing.T) {
	repo := &mockTeacherRepo{items: map[int64]*models.Teacher{1: {ID: 1, Name: "Bu Sari"}}}
	svc := newTeacherService(repo, &mockAssessmentLister{})

	_, err := svc.Update(context.Background(), 1, UpdateTeacherRequest{Name: "   "})
	require.Error(t, err)
	assert.Equal(t, 400, statusOf(t, err))
	assert.Empty(t, repo.updated)
}

func TestTeacherServiceUpdateMissing(t *testing.T) {
	svc := newTeacherService(&mockTeacherRepo{}, &mockAssessmentLister{})

	_, err := svc.Update(context.Background(), 9, UpdateTeacherRequest{Name: "Pak Budi"})
	require.Error(t, err)
	assert.Equal(t, 404, statusOf(t, err))
}
