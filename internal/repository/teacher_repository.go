package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/myclassroom/assessment-api/internal/models"
)

// TeacherRepository manages persistence for teachers.
type TeacherRepository struct {
	db       *sqlx.DB
	observer QueryObserver
}

// NewTeacherRepository constructs a TeacherRepository. The observer may be
// nil.
func NewTeacherRepository(db *sqlx.DB, observer QueryObserver) *TeacherRepository {
	return &TeacherRepository{db: db, observer: observer}
}

// List returns all teachers ordered by name, each with its live assessment
// count.
func (r *TeacherRepository) List(ctx context.Context) ([]models.Teacher, error) {
	defer observeQuery(r.observer, "teachers_list", time.Now())

	const query = `SELECT t.id, t.name, t.notes, t.created_at, t.updated_at,
		COUNT(a.id) AS assessment_count
	FROM teachers t
	LEFT JOIN student_assessments a ON a.teacher_id = t.id
	GROUP BY t.id, t.name, t.notes, t.created_at, t.updated_at
	ORDER BY t.name ASC`

	var teachers []models.Teacher
	if err := r.db.SelectContext(ctx, &teachers, query); err != nil {
		return nil, fmt.Errorf("list teachers: %w", err)
	}
	return teachers, nil
}

// FindByID fetches a teacher by ID.
func (r *TeacherRepository) FindByID(ctx context.Context, id int64) (*models.Teacher, error) {
	defer observeQuery(r.observer, "teachers_find", time.Now())

	const query = `SELECT id, name, notes, created_at, updated_at FROM teachers WHERE id = $1`
	var teacher models.Teacher
	if err := r.db.GetContext(ctx, &teacher, query, id); err != nil {
		return nil, err
	}
	return &teacher, nil
}

// Exists reports whether a teacher with the given ID exists.
func (r *TeacherRepository) Exists(ctx context.Context, id int64) (bool, error) {
	defer observeQuery(r.observer, "teachers_exists", time.Now())

	const query = `SELECT 1 FROM teachers WHERE id = $1 LIMIT 1`
	var exists int
	if err := r.db.GetContext(ctx, &exists, query, id); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check teacher: %w", err)
	}
	return true, nil
}

// Update persists a teacher's mutable fields.
func (r *TeacherRepository) Update(ctx context.Context, teacher *models.Teacher) error {
	defer observeQuery(r.observer, "teachers_update", time.Now())

	teacher.UpdatedAt = time.Now().UTC()
	const query = `UPDATE teachers SET name = :name, notes = :notes, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, teacher); err != nil {
		return fmt.Errorf("update teacher: %w", err)
	}
	return nil
}
