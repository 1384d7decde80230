package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/vitalize/club-api/internal/models"
	"github.com/vitalize/club-api/internal/repository"
	"github.com/vitalize/club-api/internal/validation"
	appErrors "github.com/vitalize/club-api/pkg/errors"
)

const skillMismatchMessage = "Gymnast experience level does not match program requirements"

type enrolmentRepository interface {
	Create(ctx context.Context, enrolment *models.Enrolment) (string, error)
	Delete(ctx context.Context, id string) (bool, error)
	FindByID(ctx context.Context, id string) (*models.Enrolment, error)
	List(ctx context.Context) ([]models.EnrolmentDetail, error)
	FindDuration(ctx context.Context, enrolmentID string) (int, error)
}

type enrolmentProgramReader interface {
	FindByID(ctx context.Context, id string) (*models.Program, error)
}

type attendedSessionCounter interface {
	CountAttended(ctx context.Context, enrolmentID string) (int, error)
}

// EnrolRequest carries the raw enrolment form fields.
type EnrolRequest struct {
	ProgramID       string        `json:"program_id"`
	GymnastName     string        `json:"gymnast_name"`
	Age             models.Number `json:"age"`
	ExperienceLevel string        `json:"experience_level"`
}

// EnrolResult couples the new enrolment with the coach notification string.
// The notification is constructed but never transmitted; it is surfaced in the
// success message only.
type EnrolResult struct {
	Enrolment    models.Enrolment `json:"enrolment"`
	Notification string           `json:"notification"`
}

// EnrolmentService orchestrates enrolment workflows.
type EnrolmentService struct {
	repo       enrolmentRepository
	programs   enrolmentProgramReader
	attendance attendedSessionCounter
	logger     *zap.Logger
}

// NewEnrolmentService constructs EnrolmentService.
func NewEnrolmentService(repo enrolmentRepository, programs enrolmentProgramReader, attendance attendedSessionCounter, logger *zap.Logger) *EnrolmentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EnrolmentService{repo: repo, programs: programs, attendance: attendance, logger: logger}
}

// Enrol registers a gymnast to a program. Field checks and program existence
// report together in rule order; the skill-level match is verified only after
// those pass and is reported as a single error. The insert itself re-verifies
// the program under lock, so a concurrent edit or delete cannot slip between
// the validation read and the write.
func (s *EnrolmentService) Enrol(ctx context.Context, req EnrolRequest) (*EnrolResult, error) {
	errs := validation.Enrolment(validation.EnrolmentInput{
		GymnastName:     req.GymnastName,
		Age:             req.Age,
		ExperienceLevel: req.ExperienceLevel,
	})

	program, err := s.programs.FindByID(ctx, req.ProgramID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			errs = append(errs, "Program not found")
		} else {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load program")
		}
	}
	if len(errs) > 0 {
		return nil, appErrors.Validation(errs)
	}

	if program.SkillLevel != models.SkillLevel(req.ExperienceLevel) {
		return nil, appErrors.Validation([]string{skillMismatchMessage})
	}

	age, _ := req.Age.Int()
	enrolment := &models.Enrolment{
		ProgramID:       req.ProgramID,
		GymnastName:     req.GymnastName,
		Age:             age,
		ExperienceLevel: models.SkillLevel(req.ExperienceLevel),
	}
	programName, err := s.repo.Create(ctx, enrolment)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFound("Program not found")
		}
		if errors.Is(err, repository.ErrSkillLevelMismatch) {
			return nil, appErrors.Validation([]string{skillMismatchMessage})
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create enrolment")
	}

	notification := fmt.Sprintf("New enrolment: %s has enrolled in %s", req.GymnastName, programName)
	return &EnrolResult{Enrolment: *enrolment, Notification: notification}, nil
}

// Delete removes an enrolment and, via store cascades, its attendance and
// progress records. A second delete of the same id reports NotFound.
func (s *EnrolmentService) Delete(ctx context.Context, id string) error {
	found, err := s.repo.Delete(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete enrolment")
	}
	if !found {
		return appErrors.NotFound("Enrolment not found")
	}
	return nil
}

// List returns all enrolments hydrated with program names.
func (s *EnrolmentService) List(ctx context.Context) ([]models.EnrolmentDetail, error) {
	enrolments, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list enrolments")
	}
	return enrolments, nil
}

// Progress computes the completion percentage for an enrolment: attended
// sessions over program duration, rounded and capped at 100. A missing
// enrolment or zero duration yields 0, not an error.
func (s *EnrolmentService) Progress(ctx context.Context, enrolmentID string) (*models.ProgressPercentage, error) {
	result := &models.ProgressPercentage{EnrolmentID: enrolmentID}

	duration, err := s.repo.FindDuration(ctx, enrolmentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return result, nil
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load enrolment")
	}
	result.Duration = duration

	attended, err := s.attendance.CountAttended(ctx, enrolmentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count attended sessions")
	}
	result.AttendedSessions = attended

	if duration > 0 {
		pct := int(math.Round(float64(attended) / float64(duration) * 100))
		if pct > 100 {
			pct = 100
		}
		result.Percentage = pct
	}
	return result, nil
}
