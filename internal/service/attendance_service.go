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

type attendanceRepository interface {
	Create(ctx context.Context, record *models.AttendanceRecord) error
	ListByEnrolment(ctx context.Context, enrolmentID string) ([]models.AttendanceRecord, error)
}

type attendanceEnrolmentReader interface {
	FindByID(ctx context.Context, id string) (*models.Enrolment, error)
}

// MarkAttendanceRequest carries the raw attendance form fields.
type MarkAttendanceRequest struct {
	EnrolmentID string `json:"enrolment_id"`
	SessionDate string `json:"session_date"`
	Attended    bool   `json:"attended"`
}

// AttendanceService orchestrates attendance marking.
type AttendanceService struct {
	repo       attendanceRepository
	enrolments attendanceEnrolmentReader
	logger     *zap.Logger
}

// NewAttendanceService constructs AttendanceService.
func NewAttendanceService(repo attendanceRepository, enrolments attendanceEnrolmentReader, logger *zap.Logger) *AttendanceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AttendanceService{repo: repo, enrolments: enrolments, logger: logger}
}

// Mark appends an attendance record for a session. The log is append-only and
// multiple records per (enrolment, date) are allowed.
func (s *AttendanceService) Mark(ctx context.Context, req MarkAttendanceRequest) (*models.AttendanceRecord, error) {
	errs := validation.Attendance(validation.AttendanceInput{SessionDate: req.SessionDate})

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

	record := &models.AttendanceRecord{
		EnrolmentID: req.EnrolmentID,
		SessionDate: sessionDate,
		Attended:    req.Attended,
	}
	if err := s.repo.Create(ctx, record); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record attendance")
	}
	return record, nil
}

// History returns an enrolment's attendance log, newest session first.
func (s *AttendanceService) History(ctx context.Context, enrolmentID string) ([]models.AttendanceRecord, error) {
	records, err := s.repo.ListByEnrolment(ctx, enrolmentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list attendance records")
	}
	return records, nil
}
