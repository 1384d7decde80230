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

type progressRepository interface {
	Create(ctx context.Context, record *models.ProgressRecord) error
	List(ctx context.Context) ([]models.ProgressDetail, error)
	ListByEnrolment(ctx context.Context, enrolmentID string) ([]models.ProgressRecord, error)
}

// RecordProgressRequest carries the raw progress form fields.
type RecordProgressRequest struct {
	EnrolmentID string        `json:"enrolment_id"`
	SessionDate string        `json:"session_date"`
	Notes       string        `json:"notes"`
	Score       models.Number `json:"score"`
}

// ProgressService orchestrates progress scoring.
type ProgressService struct {
	repo       progressRepository
	enrolments attendanceEnrolmentReader
	logger     *zap.Logger
}

// NewProgressService constructs ProgressService.
func NewProgressService(repo progressRepository, enrolments attendanceEnrolmentReader, logger *zap.Logger) *ProgressService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProgressService{repo: repo, enrolments: enrolments, logger: logger}
}

// Record appends a progress record for a session. Scores are inclusive of both
// boundaries: 0 and 100 are valid.
func (s *ProgressService) Record(ctx context.Context, req RecordProgressRequest) (*models.ProgressRecord, error) {
	errs := validation.Progress(validation.ProgressInput{
		SessionDate: req.SessionDate,
		Notes:       req.Notes,
		Score:       req.Score,
	})

	if _, err := s.enrolments.FindByID(ctx, req.EnrolmentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			errs = append(errs, "Enrolment not found")
		} else {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load enrolment")
		}
	}
	if len(errs) > 0 {
		return nil, appErrors.Validation(errs)
	}

	sessionDate, err := validation.ParseSessionDate(req.SessionDate)
	if err != nil {
		return nil, appErrors.Validation([]string{"Session date must be a valid date (YYYY-MM-DD)"})
	}

	score, _ := req.Score.Int()
	record := &models.ProgressRecord{
		EnrolmentID: req.EnrolmentID,
		SessionDate: sessionDate,
		Notes:       req.Notes,
		Score:       score,
	}
	if err := s.repo.Create(ctx, record); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record progress")
	}
	return record, nil
}

// List returns all progress records hydrated with gymnast and program names.
func (s *ProgressService) List(ctx context.Context) ([]models.ProgressDetail, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list progress records")
	}
	return records, nil
}

// History returns an enrolment's progress log, newest session first.
func (s *ProgressService) History(ctx context.Context, enrolmentID string) ([]models.ProgressRecord, error) {
	records, err := s.repo.ListByEnrolment(ctx, enrolmentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list enrolment progress")
	}
	return records, nil
}
