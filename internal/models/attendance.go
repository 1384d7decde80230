package models

import "time"

// AttendanceRecord is a per-session presence entry tied to an enrolment.
// Records are append-only and multiple rows per (enrolment, date) are allowed.
type AttendanceRecord struct {
	ID          string    `db:"id" json:"id"`
	EnrolmentID string    `db:"enrolment_id" json:"enrolment_id"`
	SessionDate time.Time `db:"session_date" json:"session_date"`
	Attended    bool      `db:"attended" json:"attended"`
	RecordedAt  time.Time `db:"recorded_at" json:"recorded_at"`
}

// AttendanceStats summarises attendance across the whole club.
type AttendanceStats struct {
	TotalSessions    int `db:"total_sessions" json:"total_sessions"`
	AttendedSessions int `db:"attended_sessions" json:"attended_sessions"`
}
