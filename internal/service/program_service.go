package service

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	"github.com/vitalize/club-api/internal/models"
	"github.com/vitalize/club-api/internal/validation"
	appErrors "github.com/vitalize/club-api/pkg/errors"
)

type programRepository interface {
	Create(ctx context.Context, program *models.Program) error
	Update(ctx context.Context, program *models.Program) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	FindByID(ctx context.Context, id string) (*models.Program, error)
	List(ctx context.Context, filter models.ProgramFilter) ([]models.ProgramSummary, error)
}

type programEnrolmentLister interface {
	ListByProgram(ctx context.Context, programID string) ([]models.Enrolment, error)
}

// ProgramRequest carries the raw form fields for adding or editing a program.
type ProgramRequest struct {
	Name        string        `json:"name"`
	Description string        `json:"description"`
	CoachName   string        `json:"coach_name"`
	Contact     string        `json:"contact"`
	Duration    models.Number `json:"duration"`
	SkillLevel  string        `json:"skill_level"`
}

// ProgramDetail is the single-program view: the program plus its enrolments.
type ProgramDetail struct {
	models.Program
	Enrolments []models.Enrolment `json:"enrolments"`
}

// ProgramService orchestrates program workflows.
type ProgramService struct {
	repo       programRepository
	enrolments programEnrolmentLister
	logger     *zap.Logger
}

// NewProgramService constructs ProgramService.
func NewProgramService(repo programRepository, enrolments programEnrolmentLister, logger *zap.Logger) *ProgramService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProgramService{repo: repo, enrolments: enrolments, logger: logger}
}

// Add validates and creates a new program, returning the persisted row.
func (s *ProgramService) Add(ctx context.Context, req ProgramRequest) (*models.Program, error) {
	if errs := validation.Program(programInput(req)); len(errs) > 0 {
		return nil, appErrors.Validation(errs)
	}

	duration, _ := req.Duration.Int()
	program := &models.Program{
		Name:        req.Name,
		Description: req.Description,
		CoachName:   req.CoachName,
		Contact:     req.Contact,
		Duration:    duration,
		SkillLevel:  models.SkillLevel(req.SkillLevel),
	}
	if err := s.repo.Create(ctx, program); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create program")
	}
	return program, nil
}

// Edit replaces all mutable fields of an existing program. The existence check
// runs before field validation so a dangling id reports NotFound regardless of
// payload quality.
func (s *ProgramService) Edit(ctx context.Context, id string, req ProgramRequest) (*models.Program, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFound("Program not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load program")
	}

	if errs := validation.Program(programInput(req)); len(errs) > 0 {
		return nil, appErrors.Validation(errs)
	}

	duration, _ := req.Duration.Int()
	program := &models.Program{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		CoachName:   req.CoachName,
		Contact:     req.Contact,
		Duration:    duration,
		SkillLevel:  models.SkillLevel(req.SkillLevel),
	}
	found, err := s.repo.Update(ctx, program)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update program")
	}
	if !found {
		return nil, appErrors.NotFound("Program not found")
	}
	return program, nil
}

// Delete removes a program. Enrolments and their attendance/progress records
// cascade in the store. Deleting an unknown or already-deleted id reports
// NotFound, never a fault.
func (s *ProgramService) Delete(ctx context.Context, id string) error {
	found, err := s.repo.Delete(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete program")
	}
	if !found {
		return appErrors.NotFound("Program not found")
	}
	return nil
}

// Filter returns programs matching the optional search term and skill level,
// each annotated with its live enrolment count. Empty filters return every
// program.
func (s *ProgramService) Filter(ctx context.Context, filter models.ProgramFilter) ([]models.ProgramSummary, error) {
	programs, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list programs")
	}
	return programs, nil
}

// Get returns a single program with its enrolments.
func (s *ProgramService) Get(ctx context.Context, id string) (*ProgramDetail, error) {
	program, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFound("Program not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load program")
	}
	enrolments, err := s.enrolments.ListByProgram(ctx, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load program enrolments")
	}
	return &ProgramDetail{Program: *program, Enrolments: enrolments}, nil
}

func programInput(req ProgramRequest) validation.ProgramInput {
	return validation.ProgramInput{
		Name:        req.Name,
		Description: req.Description,
		CoachName:   req.CoachName,
		Contact:     req.Contact,
		Duration:    req.Duration,
		SkillLevel:  req.SkillLevel,
	}
}
