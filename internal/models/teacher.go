package models

import "time"

// Teacher represents an instructor owning student assessments. JSON field
// names follow the dashboard's existing wire contract.
type Teacher struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Notes     *string   `db:"notes" json:"notes"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`

	// AssessmentCount is populated on list reads; Assessments on detail reads.
	AssessmentCount *int                `db:"assessment_count" json:"assessmentCount,omitempty"`
	Assessments     []StudentAssessment `db:"-" json:"assessments,omitempty"`
}
