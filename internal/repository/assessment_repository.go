package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/myclassroom/assessment-api/internal/models"
)

const assessmentColumns = `id, student_name, class_name, week_number, teacher_id,
	meeting1_kehadiran, meeting1_membaca, meeting1_kosakata, meeting1_pengucapan, meeting1_speaking, meeting1_total,
	meeting2_kehadiran, meeting2_membaca, meeting2_kosakata, meeting2_pengucapan, meeting2_speaking, meeting2_total,
	meeting3_kehadiran, meeting3_membaca, meeting3_kosakata, meeting3_pengucapan, meeting3_speaking, meeting3_total,
	total_weekly, average, category, progress_notes, created_at, updated_at`

// AssessmentRepository manages persistence for student assessments.
type AssessmentRepository struct {
	db       *sqlx.DB
	observer QueryObserver
}

// NewAssessmentRepository constructs an AssessmentRepository. The observer
// may be nil.
func NewAssessmentRepository(db *sqlx.DB, observer QueryObserver) *AssessmentRepository {
	return &AssessmentRepository{db: db, observer: observer}
}

// likeEscaper neutralizes LIKE metacharacters so a search for "100%" matches
// the literal text instead of every row.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// List returns assessments newest-first along with the total match count.
func (r *AssessmentRepository) List(ctx context.Context, filter models.AssessmentFilter) ([]models.StudentAssessment, int, error) {
	defer observeQuery(r.observer, "assessments_list", time.Now())

	base := "FROM student_assessments WHERE 1=1"
	var conditions []string
	var args []interface{}

	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf(`LOWER(student_name) LIKE $%d ESCAPE '\'`, len(args)+1))
		args = append(args, "%"+likeEscaper.Replace(strings.ToLower(filter.Search))+"%")
	}
	if filter.ClassName != "" {
		conditions = append(conditions, fmt.Sprintf("class_name = $%d", len(args)+1))
		args = append(args, filter.ClassName)
	}

	if len(conditions) > 0 {
		base += " AND " + strings.Join(conditions, " AND ")
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 10
	}
	offset := (page - 1) * limit

	query := fmt.Sprintf("SELECT %s %s ORDER BY created_at DESC LIMIT %d OFFSET %d", assessmentColumns, base, limit, offset)
	var assessments []models.StudentAssessment
	if err := r.db.SelectContext(ctx, &assessments, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list assessments: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count assessments: %w", err)
	}

	return assessments, total, nil
}

// FindByID fetches one assessment by ID.
func (r *AssessmentRepository) FindByID(ctx context.Context, id int64) (*models.StudentAssessment, error) {
	defer observeQuery(r.observer, "assessments_find", time.Now())

	query := fmt.Sprintf("SELECT %s FROM student_assessments WHERE id = $1", assessmentColumns)
	var assessment models.StudentAssessment
	if err := r.db.GetContext(ctx, &assessment, query, id); err != nil {
		return nil, err
	}
	return &assessment, nil
}

// ListByTeacher returns a teacher's assessments newest-first.
func (r *AssessmentRepository) ListByTeacher(ctx context.Context, teacherID int64) ([]models.StudentAssessment, error) {
	defer observeQuery(r.observer, "assessments_list_by_teacher", time.Now())

	query := fmt.Sprintf("SELECT %s FROM student_assessments WHERE teacher_id = $1 ORDER BY created_at DESC", assessmentColumns)
	var assessments []models.StudentAssessment
	if err := r.db.SelectContext(ctx, &assessments, query, teacherID); err != nil {
		return nil, fmt.Errorf("list teacher assessments: %w", err)
	}
	return assessments, nil
}

// ListForRecap returns assessments for the recap export, ordered for
// tabulation (class, week, student) and optionally restricted to one class.
func (r *AssessmentRepository) ListForRecap(ctx context.Context, className string) ([]models.StudentAssessment, error) {
	defer observeQuery(r.observer, "assessments_recap", time.Now())

	query := fmt.Sprintf("SELECT %s FROM student_assessments", assessmentColumns)
	var args []interface{}
	if className != "" {
		query += " WHERE class_name = $1"
		args = append(args, className)
	}
	query += " ORDER BY class_name ASC, week_number ASC, student_name ASC"

	var assessments []models.StudentAssessment
	if err := r.db.SelectContext(ctx, &assessments, query, args...); err != nil {
		return nil, fmt.Errorf("list recap assessments: %w", err)
	}
	return assessments, nil
}

// Create inserts a new assessment and fills in the generated ID.
func (r *AssessmentRepository) Create(ctx context.Context, assessment *models.StudentAssessment) error {
	defer observeQuery(r.observer, "assessments_insert", time.Now())

	now := time.Now().UTC()
	assessment.CreatedAt = now
	assessment.UpdatedAt = now

	const query = `INSERT INTO student_assessments (
		student_name, class_name, week_number, teacher_id,
		meeting1_kehadiran, meeting1_membaca, meeting1_kosakata, meeting1_pengucapan, meeting1_speaking, meeting1_total,
		meeting2_kehadiran, meeting2_membaca, meeting2_kosakata, meeting2_pengucapan, meeting2_speaking, meeting2_total,
		meeting3_kehadiran, meeting3_membaca, meeting3_kosakata, meeting3_pengucapan, meeting3_speaking, meeting3_total,
		total_weekly, average, category, progress_notes, created_at, updated_at
	) VALUES (
		:student_name, :class_name, :week_number, :teacher_id,
		:meeting1_kehadiran, :meeting1_membaca, :meeting1_kosakata, :meeting1_pengucapan, :meeting1_speaking, :meeting1_total,
		:meeting2_kehadiran, :meeting2_membaca, :meeting2_kosakata, :meeting2_pengucapan, :meeting2_speaking, :meeting2_total,
		:meeting3_kehadiran, :meeting3_membaca, :meeting3_kosakata, :meeting3_pengucapan, :meeting3_speaking, :meeting3_total,
		:total_weekly, :average, :category, :progress_notes, :created_at, :updated_at
	) RETURNING id`

	rows, err := sqlx.NamedQueryContext(ctx, r.db, query, assessment)
	if err != nil {
		return fmt.Errorf("create assessment: %w", err)
	}
	defer rows.Close()

	if rows.Next() {
		if err := rows.Scan(&assessment.ID); err != nil {
			return fmt.Errorf("scan assessment id: %w", err)
		}
	}
	return rows.Err()
}

// Update replaces every mutable column of an existing assessment.
func (r *AssessmentRepository) Update(ctx context.Context, assessment *models.StudentAssessment) error {
	defer observeQuery(r.observer, "assessments_update", time.Now())

	assessment.UpdatedAt = time.Now().UTC()

	const query = `UPDATE student_assessments SET
		student_name = :student_name, class_name = :class_name, week_number = :week_number, teacher_id = :teacher_id,
		meeting1_kehadiran = :meeting1_kehadiran, meeting1_membaca = :meeting1_membaca, meeting1_kosakata = :meeting1_kosakata,
		meeting1_pengucapan = :meeting1_pengucapan, meeting1_speaking = :meeting1_speaking, meeting1_total = :meeting1_total,
		meeting2_kehadiran = :meeting2_kehadiran, meeting2_membaca = :meeting2_membaca, meeting2_kosakata = :meeting2_kosakata,
		meeting2_pengucapan = :meeting2_pengucapan, meeting2_speaking = :meeting2_speaking, meeting2_total = :meeting2_total,
		meeting3_kehadiran = :meeting3_kehadiran, meeting3_membaca = :meeting3_membaca, meeting3_kosakata = :meeting3_kosakata,
		meeting3_pengucapan = :meeting3_pengucapan, meeting3_speaking = :meeting3_speaking, meeting3_total = :meeting3_total,
		total_weekly = :total_weekly, average = :average, category = :category, progress_notes = :progress_notes,
		updated_at = :updated_at
	WHERE id = :id`

	if _, err := r.db.NamedExecContext(ctx, query, assessment); err != nil {
		return fmt.Errorf("update assessment: %w", err)
	}
	return nil
}

// Delete removes an assessment by ID.
func (r *AssessmentRepository) Delete(ctx context.Context, id int64) error {
	defer observeQuery(r.observer, "assessments_delete", time.Now())

	const query = `DELETE FROM student_assessments WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete assessment: %w", err)
	}
	return nil
}
