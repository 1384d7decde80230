package models

import "time"

// ProgressRecord is a per-session score and notes entry tied to an enrolment.
// Records are append-only.
type ProgressRecord struct {
	ID          string    `db:"id" json:"id"`
	EnrolmentID string    `db:"enrolment_id" json:"enrolment_id"`
	SessionDate time.Time `db:"session_date" json:"session_date"`
	Notes       string    `db:"notes" json:"notes"`
	Score       int       `db:"score" json:"score"`
}

// ProgressDetail enriches a record with gymnast and program names.
type ProgressDetail struct {
	ProgressRecord
	GymnastName string `db:"gymnast_name" json:"gymnast_name"`
	ProgramName string `db:"program_name" json:"program_name"`
}
