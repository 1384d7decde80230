package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/vitalize/club-api/internal/models"
)

// ProgramRepository handles persistence of training programs.
type ProgramRepository struct {
	db *sqlx.DB
}

// NewProgramRepository constructs the repository.
func NewProgramRepository(db *sqlx.DB) *ProgramRepository {
	return &ProgramRepository{db: db}
}

// Create persists a new program.
func (r *ProgramRepository) Create(ctx context.Context, program *models.Program) error {
	if program.ID == "" {
		program.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if program.CreatedAt.IsZero() {
		program.CreatedAt = now
	}
	program.UpdatedAt = now
	const query = `INSERT INTO programs (id, name, description, coach_name, contact, duration, skill_level, created_at, updated_at)
        VALUES (:id, :name, :description, :coach_name, :contact, :duration, :skill_level, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, program); err != nil {
		return fmt.Errorf("create program: %w", err)
	}
	return nil
}

// Update replaces all mutable fields of an existing program. It returns false
// when the id does not resolve to a row.
func (r *ProgramRepository) Update(ctx context.Context, program *models.Program) (bool, error) {
	program.UpdatedAt = time.Now().UTC()
	const query = `UPDATE programs SET name = $2, description = $3, coach_name = $4, contact = $5,
        duration = $6, skill_level = $7, updated_at = $8 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, program.ID, program.Name, program.Description,
		program.CoachName, program.Contact, program.Duration, program.SkillLevel, program.UpdatedAt)
	if err != nil {
		return false, fmt.Errorf("update program: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("update program affected rows: %w", err)
	}
	return affected > 0, nil
}

// Delete removes a program. Dependent enrolments, attendance and progress rows
// are removed by the store's ON DELETE CASCADE constraints. It returns false
// when the id does not resolve to a row.
func (r *ProgramRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM programs WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete program: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete program affected rows: %w", err)
	}
	return affected > 0, nil
}

// FindByID returns a program by its ID.
func (r *ProgramRepository) FindByID(ctx context.Context, id string) (*models.Program, error) {
	const query = `SELECT id, name, description, coach_name, contact, duration, skill_level, created_at, updated_at
        FROM programs WHERE id = $1`
	var program models.Program
	if err := r.db.GetContext(ctx, &program, query, id); err != nil {
		return nil, err
	}
	return &program, nil
}

// List returns programs matching the filter, each annotated with its live
// enrolment count. An empty filter returns every program. The search term
// matches name, description or coach name as a case-sensitive substring.
func (r *ProgramRepository) List(ctx context.Context, filter models.ProgramFilter) ([]models.ProgramSummary, error) {
	base := `SELECT p.id, p.name, p.description, p.coach_name, p.contact, p.duration, p.skill_level,
        p.created_at, p.updated_at, COUNT(e.id) AS enrolment_count
        FROM programs p LEFT JOIN enrolments e ON e.program_id = p.id`

	var conditions []string
	var args []interface{}

	if filter.Search != "" {
		idx := len(args) + 1
		conditions = append(conditions, fmt.Sprintf("(p.name LIKE $%d OR p.description LIKE $%d OR p.coach_name LIKE $%d)", idx, idx, idx))
		args = append(args, "%"+filter.Search+"%")
	}
	if filter.SkillLevel != "" {
		conditions = append(conditions, fmt.Sprintf("p.skill_level = $%d", len(args)+1))
		args = append(args, filter.SkillLevel)
	}

	query := base
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " GROUP BY p.id ORDER BY p.created_at DESC"

	programs := []models.ProgramSummary{}
	if err := r.db.SelectContext(ctx, &programs, query, args...); err != nil {
		return nil, fmt.Errorf("list programs: %w", err)
	}
	return programs, nil
}

// Count returns the total number of programs.
func (r *ProgramRepository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM programs`); err != nil {
		return 0, fmt.Errorf("count programs: %w", err)
	}
	return total, nil
}
