package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/vitalize/club-api/internal/models"
)

// ProgressRepository handles persistence of per-session progress records.
type ProgressRepository struct {
	db *sqlx.DB
}

// NewProgressRepository constructs the repository.
func NewProgressRepository(db *sqlx.DB) *ProgressRepository {
	return &ProgressRepository{db: db}
}

// Create appends a new progress record. The log is append-only.
func (r *ProgressRepository) Create(ctx context.Context, record *models.ProgressRecord) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	const query = `INSERT INTO progress (id, enrolment_id, session_date, notes, score)
        VALUES (:id, :enrolment_id, :session_date, :notes, :score)`
	if _, err := r.db.NamedExecContext(ctx, query, record); err != nil {
		return fmt.Errorf("create progress record: %w", err)
	}
	return nil
}

// List returns all progress records hydrated with gymnast and program names,
// newest session first.
func (r *ProgressRepository) List(ctx context.Context) ([]models.ProgressDetail, error) {
	const query = `SELECT pr.id, pr.enrolment_id, pr.session_date, pr.notes, pr.score,
        e.gymnast_name, p.name AS program_name
        FROM progress pr
        JOIN enrolments e ON e.id = pr.enrolment_id
        JOIN programs p ON p.id = e.program_id
        ORDER BY pr.session_date DESC`
	records := []models.ProgressDetail{}
	if err := r.db.SelectContext(ctx, &records, query); err != nil {
		return nil, fmt.Errorf("list progress records: %w", err)
	}
	return records, nil
}

// ListByEnrolment returns an enrolment's progress log, newest session first.
func (r *ProgressRepository) ListByEnrolment(ctx context.Context, enrolmentID string) ([]models.ProgressRecord, error) {
	const query = `SELECT id, enrolment_id, session_date, notes, score
        FROM progress WHERE enrolment_id = $1 ORDER BY session_date DESC`
	records := []models.ProgressRecord{}
	if err := r.db.SelectContext(ctx, &records, query, enrolmentID); err != nil {
		return nil, fmt.Errorf("list enrolment progress: %w", err)
	}
	return records, nil
}

// AverageScore returns the mean score across all progress records, zero when
// the table is empty.
func (r *ProgressRepository) AverageScore(ctx context.Context) (float64, error) {
	const query = `SELECT COALESCE(AVG(score), 0) FROM progress`
	var avg float64
	if err := r.db.GetContext(ctx, &avg, query); err != nil {
		return 0, fmt.Errorf("average progress score: %w", err)
	}
	return avg, nil
}
