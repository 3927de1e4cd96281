package models

import "time"

// StudentAssessment is one student's weekly evaluation: fifteen raw
// sub-scores across three meetings plus the server-derived totals, average
// and category. Derived columns are recomputed on every write and never
// trusted from the caller.
type StudentAssessment struct {
	ID          int64  `db:"id" json:"id"`
	StudentName string `db:"student_name" json:"studentName"`
	ClassName   string `db:"class_name" json:"className"`
	WeekNumber  int    `db:"week_number" json:"weekNumber"`
	TeacherID   int64  `db:"teacher_id" json:"teacherId"`

	Meeting1Kehadiran  int `db:"meeting1_kehadiran" json:"meeting1_kehadiran"`
	Meeting1Membaca    int `db:"meeting1_membaca" json:"meeting1_membaca"`
	Meeting1Kosakata   int `db:"meeting1_kosakata" json:"meeting1_kosakata"`
	Meeting1Pengucapan int `db:"meeting1_pengucapan" json:"meeting1_pengucapan"`
	Meeting1Speaking   int `db:"meeting1_speaking" json:"meeting1_speaking"`
	Meeting1Total      int `db:"meeting1_total" json:"meeting1_total"`

	Meeting2Kehadiran  int `db:"meeting2_kehadiran" json:"meeting2_kehadiran"`
	Meeting2Membaca    int `db:"meeting2_membaca" json:"meeting2_membaca"`
	Meeting2Kosakata   int `db:"meeting2_kosakata" json:"meeting2_kosakata"`
	Meeting2Pengucapan int `db:"meeting2_pengucapan" json:"meeting2_pengucapan"`
	Meeting2Speaking   int `db:"meeting2_speaking" json:"meeting2_speaking"`
	Meeting2Total      int `db:"meeting2_total" json:"meeting2_total"`

	Meeting3Kehadiran  int `db:"meeting3_kehadiran" json:"meeting3_kehadiran"`
	Meeting3Membaca    int `db:"meeting3_membaca" json:"meeting3_membaca"`
	Meeting3Kosakata   int `db:"meeting3_kosakata" json:"meeting3_kosakata"`
	Meeting3Pengucapan int `db:"meeting3_pengucapan" json:"meeting3_pengucapan"`
	Meeting3Speaking   int `db:"meeting3_speaking" json:"meeting3_speaking"`
	Meeting3Total      int `db:"meeting3_total" json:"meeting3_total"`

	TotalWeekly   int     `db:"total_weekly" json:"total_weekly"`
	Average       float64 `db:"average" json:"average"`
	Category      string  `db:"category" json:"category"`
	ProgressNotes *string `db:"progress_notes" json:"progress_notes"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`

	Teacher *Teacher `db:"-" json:"teacher,omitempty"`
}

// AssessmentFilter captures list query options.
type AssessmentFilter struct {
	Search    string
	ClassName string
	Page      int
	Limit     int
}

// Pagination mirrors the dashboard's pagination block.
type Pagination struct {
	CurrentPage  int  `json:"currentPage"`
	TotalPages   int  `json:"totalPages"`
	TotalItems   int  `json:"totalItems"`
	ItemsPerPage int  `json:"itemsPerPage"`
	HasNext      bool `json:"hasNext"`
	HasPrev      bool `json:"hasPrev"`
}
