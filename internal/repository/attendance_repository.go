package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/vitalize/club-api/internal/models"
)

// AttendanceRepository handles persistence of per-session attendance records.
type AttendanceRepository struct {
	db *sqlx.DB
}

// NewAttendanceRepository constructs the repository.
func NewAttendanceRepository(db *sqlx.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// Create appends a new attendance record. Duplicate (enrolment, date) rows are
// allowed; the log is append-only.
func (r *AttendanceRepository) Create(ctx context.Context, record *models.AttendanceRecord) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.RecordedAt.IsZero() {
		record.RecordedAt = time.Now().UTC()
	}
	const query = `INSERT INTO attendance (id, enrolment_id, session_date, attended, recorded_at)
        VALUES (:id, :enrolment_id, :session_date, :attended, :recorded_at)`
	if _, err := r.db.NamedExecContext(ctx, query, record); err != nil {
		return fmt.Errorf("create attendance record: %w", err)
	}
	return nil
}

// ListByEnrolment returns an enrolment's attendance log, newest session first.
func (r *AttendanceRepository) ListByEnrolment(ctx context.Context, enrolmentID string) ([]models.AttendanceRecord, error) {
	const query = `SELECT id, enrolment_id, session_date, attended, recorded_at
        FROM attendance WHERE enrolment_id = $1 ORDER BY session_date DESC`
	records := []models.AttendanceRecord{}
	if err := r.db.SelectContext(ctx, &records, query, enrolmentID); err != nil {
		return nil, fmt.Errorf("list attendance records: %w", err)
	}
	return records, nil
}

// CountAttended returns the number of attended sessions for an enrolment.
func (r *AttendanceRepository) CountAttended(ctx context.Context, enrolmentID string) (int, error) {
	const query = `SELECT COUNT(*) FROM attendance WHERE enrolment_id = $1 AND attended = TRUE`
	var count int
	if err := r.db.GetContext(ctx, &count, query, enrolmentID); err != nil {
		return 0, fmt.Errorf("count attended sessions: %w", err)
	}
	return count, nil
}

// Stats summarises session and attendance counts across the club.
func (r *AttendanceRepository) Stats(ctx context.Context) (*models.AttendanceStats, error) {
	const query = `SELECT COUNT(*) AS total_sessions,
        COUNT(*) FILTER (WHERE attended) AS attended_sessions FROM attendance`
	var stats models.AttendanceStats
	if err := r.db.GetContext(ctx, &stats, query); err != nil {
		return nil, fmt.Errorf("attendance stats: %w", err)
	}
	return &stats, nil
}
