package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitalize/club-api/internal/models"
	appErrors "github.com/vitalize/club-api/pkg/errors"
)

type mockAttendanceRepo struct {
	records     []models.AttendanceRecord
	createCalls int
}

func (m *mockAttendanceRepo) Create(_ context.Context, record *models.AttendanceRecord) error {
	m.createCalls++
	if record.ID == "" {
		record.ID = "a-new"
	}
	m.records = append(m.records, *record)
	return nil
}

func (m *mockAttendanceRepo) ListByEnrolment(_ context.Context, _ string) ([]models.AttendanceRecord, error) {
	return m.records, nil
}

func enrolmentReaderWith(ids ...string) *mockEnrolmentRepo {
	enrolments := map[string]*models.Enrolment{}
	for _, id := range ids {
		enrolments[id] = &models.Enrolment{ID: id}
	}
	return &mockEnrolmentRepo{enrolments: enrolments}
}

func TestAttendanceServiceMark(t *testing.T) {
	repo := &mockAttendanceRepo{}
	svc := NewAttendanceService(repo, enrolmentReaderWith("e1"), nil)

	record, err := svc.Mark(context.Background(), MarkAttendanceRequest{
		EnrolmentID: "e1",
		SessionDate: "2026-03-14",
		Attended:    true,
	})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC), record.SessionDate)
	assert.True(t, record.Attended)
	assert.Equal(t, 1, repo.createCalls)
}

func TestAttendanceServiceMarkAbsence(t *testing.T) {
	repo := &mockAttendanceRepo{}
	svc := NewAttendanceService(repo, enrolmentReaderWith("e1"), nil)

	record, err := svc.Mark(context.Background(), MarkAttendanceRequest{
		EnrolmentID: "e1",
		SessionDate: "2026-03-14",
		Attended:    false,
	})
	require.NoError(t, err)
	assert.False(t, record.Attended)
}

func TestAttendanceServiceMarkMissingDate(t *testing.T) {
	repo := &mockAttendanceRepo{}
	svc := NewAttendanceService(repo, enrolmentReaderWith("e1"), nil)

	_, err := svc.Mark(context.Background(), MarkAttendanceRequest{EnrolmentID: "e1"})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, []string{"Session date is required"}, appErr.Details)
	assert.Zero(t, repo.createCalls)
}

func TestAttendanceServiceMarkBadDate(t *testing.T) {
	repo := &mockAttendanceRepo{}
	svc := NewAttendanceService(repo, enrolmentReaderWith("e1"), nil)

	_, err := svc.Mark(context.Background(), MarkAttendanceRequest{EnrolmentID: "e1", SessionDate: "14/03/2026"})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, []string{"Session date must be a valid date (YYYY-MM-DD)"}, appErr.Details)
}

func TestAttendanceServiceMarkMissingEnrolment(t *testing.T) {
	repo := &mockAttendanceRepo{}
	svc := NewAttendanceService(repo, enrolmentReaderWith(), nil)

	_, err := svc.Mark(context.Background(), MarkAttendanceRequest{EnrolmentID: "ghost", SessionDate: "2026-03-14"})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, []string{"Enrolment not found"}, appErr.Details)
}

func TestAttendanceServiceMarkAllowsDuplicateSessions(t *testing.T) {
	repo := &mockAttendanceRepo{}
	svc := NewAttendanceService(repo, enrolmentReaderWith("e1"), nil)

	req := MarkAttendanceRequest{EnrolmentID: "e1", SessionDate: "2026-03-14", Attended: true}
	_, err := svc.Mark(context.Background(), req)
	require.NoError(t, err)
	_, err = svc.Mark(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.createCalls)
}

func TestAttendanceServiceHistory(t *testing.T) {
	repo := &mockAttendanceRepo{records: []models.AttendanceRecord{{ID: "a1", EnrolmentID: "e1"}}}
	svc := NewAttendanceService(repo, enrolmentReaderWith("e1"), nil)

	records, err := svc.History(context.Background(), "e1")
	require.NoError(t, err)
	assert.Len(t, records, 1)
}
