package models

// DashboardStats aggregates the club-wide counters shown on the landing page.
type DashboardStats struct {
	TotalPrograms    int     `json:"total_programs"`
	TotalEnrolments  int     `json:"total_enrolments"`
	TotalSessions    int     `json:"total_sessions"`
	AttendedSessions int     `json:"attended_sessions"`
	AttendanceRate   float64 `json:"attendance_rate"`
	AverageScore     float64 `json:"average_score"`
}
