package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/vitalize/club-api/internal/models"
)

// ErrSkillLevelMismatch is returned when a gymnast's experience level does not
// equal the target program's skill level at insert time.
var ErrSkillLevelMismatch = errors.New("experience level does not match program skill level")

// EnrolmentRepository handles persistence of gymnast enrolments.
type EnrolmentRepository struct {
	db *sqlx.DB
}

// NewEnrolmentRepository constructs the repository.
func NewEnrolmentRepository(db *sqlx.DB) *EnrolmentRepository {
	return &EnrolmentRepository{db: db}
}

// Create inserts an enrolment inside a transaction that re-verifies the target
// program under a share lock, so the skill-level match stays valid against a
// concurrent program edit or delete. It returns the program name for the coach
// notification. A missing program surfaces as sql.ErrNoRows; a level mismatch
// as ErrSkillLevelMismatch.
func (r *EnrolmentRepository) Create(ctx context.Context, enrolment *models.Enrolment) (string, error) {
	if enrolment.ID == "" {
		enrolment.ID = uuid.NewString()
	}
	if enrolment.EnrolledAt.IsZero() {
		enrolment.EnrolledAt = time.Now().UTC()
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin enrolment: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			tx.Rollback()
		}
	}()

	var program struct {
		Name       string            `db:"name"`
		SkillLevel models.SkillLevel `db:"skill_level"`
	}
	const lockQuery = `SELECT name, skill_level FROM programs WHERE id = $1 FOR SHARE`
	if err := tx.GetContext(ctx, &program, lockQuery, enrolment.ProgramID); err != nil {
		return "", err
	}
	if program.SkillLevel != enrolment.ExperienceLevel {
		return "", ErrSkillLevelMismatch
	}

	const insertQuery = `INSERT INTO enrolments (id, program_id, gymnast_name, age, experience_level, enrolled_at)
        VALUES (:id, :program_id, :gymnast_name, :age, :experience_level, :enrolled_at)`
	if _, err := tx.NamedExecContext(ctx, insertQuery, enrolment); err != nil {
		return "", fmt.Errorf("create enrolment: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit enrolment: %w", err)
	}
	committed = true
	return program.Name, nil
}

// Delete removes an enrolment. Attendance and progress rows cascade in the
// store. It returns false when the id does not resolve to a row.
func (r *EnrolmentRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM enrolments WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete enrolment: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete enrolment affected rows: %w", err)
	}
	return affected > 0, nil
}

// FindByID returns an enrolment by its ID.
func (r *EnrolmentRepository) FindByID(ctx context.Context, id string) (*models.Enrolment, error) {
	const query = `SELECT id, program_id, gymnast_name, age, experience_level, enrolled_at
        FROM enrolments WHERE id = $1`
	var enrolment models.Enrolment
	if err := r.db.GetContext(ctx, &enrolment, query, id); err != nil {
		return nil, err
	}
	return &enrolment, nil
}

// List returns all enrolments hydrated with their program names.
func (r *EnrolmentRepository) List(ctx context.Context) ([]models.EnrolmentDetail, error) {
	const query = `SELECT e.id, e.program_id, e.gymnast_name, e.age, e.experience_level, e.enrolled_at,
        p.name AS program_name
        FROM enrolments e JOIN programs p ON p.id = e.program_id
        ORDER BY e.enrolled_at DESC`
	enrolments := []models.EnrolmentDetail{}
	if err := r.db.SelectContext(ctx, &enrolments, query); err != nil {
		return nil, fmt.Errorf("list enrolments: %w", err)
	}
	return enrolments, nil
}

// ListByProgram returns the enrolments of a single program.
func (r *EnrolmentRepository) ListByProgram(ctx context.Context, programID string) ([]models.Enrolment, error) {
	const query = `SELECT id, program_id, gymnast_name, age, experience_level, enrolled_at
        FROM enrolments WHERE program_id = $1 ORDER BY enrolled_at DESC`
	enrolments := []models.Enrolment{}
	if err := r.db.SelectContext(ctx, &enrolments, query, programID); err != nil {
		return nil, fmt.Errorf("list program enrolments: %w", err)
	}
	return enrolments, nil
}

// FindDuration joins an enrolment to its program and returns the program
// duration in weeks. A missing enrolment surfaces as sql.ErrNoRows.
func (r *EnrolmentRepository) FindDuration(ctx context.Context, enrolmentID string) (int, error) {
	const query = `SELECT p.duration FROM enrolments e
        JOIN programs p ON p.id = e.program_id WHERE e.id = $1`
	var duration int
	if err := r.db.GetContext(ctx, &duration, query, enrolmentID); err != nil {
		return 0, err
	}
	return duration, nil
}

// Count returns the total number of enrolments.
func (r *EnrolmentRepository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM enrolments`); err != nil {
		return 0, fmt.Errorf("count enrolments: %w", err)
	}
	return total, nil
}
