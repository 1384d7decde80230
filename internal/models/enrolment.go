package models

import "time"

// Enrolment binds one gymnast to one program. The experience level must equal
// the program's skill level at enrolment time; it is not re-checked when the
// program is later edited.
type Enrolment struct {
	ID              string     `db:"id" json:"id"`
	ProgramID       string     `db:"program_id" json:"program_id"`
	GymnastName     string     `db:"gymnast_name" json:"gymnast_name"`
	Age             int        `db:"age" json:"age"`
	ExperienceLevel SkillLevel `db:"experience_level" json:"experience_level"`
	EnrolledAt      time.Time  `db:"enrolled_at" json:"enrolled_at"`
}

// EnrolmentDetail enriches Enrolment with the program name for list views.
type EnrolmentDetail struct {
	Enrolment
	ProgramName string `db:"program_name" json:"program_name"`
}

// ProgressPercentage is the derived completion metric for an enrolment:
// attended sessions over program duration, capped at 100.
type ProgressPercentage struct {
	EnrolmentID      string `json:"enrolment_id"`
	AttendedSessions int    `json:"attended_sessions"`
	Duration         int    `json:"duration"`
	Percentage       int    `json:"percentage"`
}
