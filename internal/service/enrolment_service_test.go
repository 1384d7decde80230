package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitalize/club-api/internal/models"
	"github.com/vitalize/club-api/internal/repository"
	appErrors "github.com/vitalize/club-api/pkg/errors"
)

type mockEnrolmentRepo struct {
	enrolments  map[string]*models.Enrolment
	details     []models.EnrolmentDetail
	programName string
	durations   map[string]int
	createErr   error
	createCalls int
}

func (m *mockEnrolmentRepo) Create(_ context.Context, enrolment *models.Enrolment) (string, error) {
	m.createCalls++
	if m.createErr != nil {
		return "", m.createErr
	}
	if enrolment.ID == "" {
		enrolment.ID = "e-new"
	}
	return m.programName, nil
}

func (m *mockEnrolmentRepo) Delete(_ context.Context, id string) (bool, error) {
	if _, ok := m.enrolments[id]; !ok {
		return false, nil
	}
	delete(m.enrolments, id)
	return true, nil
}

func (m *mockEnrolmentRepo) FindByID(_ context.Context, id string) (*models.Enrolment, error) {
	enrolment, ok := m.enrolments[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return enrolment, nil
}

func (m *mockEnrolmentRepo) List(_ context.Context) ([]models.EnrolmentDetail, error) {
	return m.details, nil
}

func (m *mockEnrolmentRepo) FindDuration(_ context.Context, enrolmentID string) (int, error) {
	duration, ok := m.durations[enrolmentID]
	if !ok {
		return 0, sql.ErrNoRows
	}
	return duration, nil
}

type mockProgramReader struct {
	programs map[string]*models.Program
}

func (m *mockProgramReader) FindByID(_ context.Context, id string) (*models.Program, error) {
	program, ok := m.programs[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return program, nil
}

type mockAttendedCounter struct {
	counts map[string]int
}

func (m *mockAttendedCounter) CountAttended(_ context.Context, enrolmentID string) (int, error) {
	return m.counts[enrolmentID], nil
}

func newEnrolmentService(repo *mockEnrolmentRepo, programs *mockProgramReader, counts map[string]int) *EnrolmentService {
	return NewEnrolmentService(repo, programs, &mockAttendedCounter{counts: counts}, nil)
}

func validEnrolRequest() EnrolRequest {
	return EnrolRequest{
		ProgramID:       "p1",
		GymnastName:     "Mia",
		Age:             models.Number("9"),
		ExperienceLevel: "Beginner",
	}
}

func beginnerProgram() *mockProgramReader {
	return &mockProgramReader{programs: map[string]*models.Program{
		"p1": {ID: "p1", Name: "Tumbling Basics", SkillLevel: models.SkillBeginner},
	}}
}

func TestEnrolmentServiceEnrol(t *testing.T) {
	repo := &mockEnrolmentRepo{programName: "Tumbling Basics"}
	svc := newEnrolmentService(repo, beginnerProgram(), nil)

	result, err := svc.Enrol(context.Background(), validEnrolRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, result.Enrolment.ID)
	assert.Equal(t, 9, result.Enrolment.Age)
	assert.Equal(t, "New enrolment: Mia has enrolled in Tumbling Basics", result.Notification)
}

func TestEnrolmentServiceEnrolFieldErrors(t *testing.T) {
	repo := &mockEnrolmentRepo{}
	svc := newEnrolmentService(repo, beginnerProgram(), nil)

	_, err := svc.Enrol(context.Background(), EnrolRequest{ProgramID: "p1"})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, []string{
		"Gymnast name is required",
		"Age must be a number between 5 and 100",
		"Invalid experience level",
	}, appErr.Details)
	assert.Zero(t, repo.createCalls)
}

func TestEnrolmentServiceEnrolProgramMissing(t *testing.T) {
	repo := &mockEnrolmentRepo{}
	svc := newEnrolmentService(repo, &mockProgramReader{programs: map[string]*models.Program{}}, nil)

	req := validEnrolRequest()
	req.ProgramID = "ghost"
	_, err := svc.Enrol(context.Background(), req)
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, []string{"Program not found"}, appErr.Details)
}

func TestEnrolmentServiceEnrolProgramMissingWithFieldErrors(t *testing.T) {
	repo := &mockEnrolmentRepo{}
	svc := newEnrolmentService(repo, &mockProgramReader{programs: map[string]*models.Program{}}, nil)

	_, err := svc.Enrol(context.Background(), EnrolRequest{ProgramID: "ghost", GymnastName: "Mia", Age: models.Number("9")})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, []string{
		"Invalid experience level",
		"Program not found",
	}, appErr.Details)
}

func TestEnrolmentServiceEnrolSkillMismatch(t *testing.T) {
	repo := &mockEnrolmentRepo{}
	svc := newEnrolmentService(repo, beginnerProgram(), nil)

	req := validEnrolRequest()
	req.ExperienceLevel = "Advanced"
	_, err := svc.Enrol(context.Background(), req)
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	// The mismatch is the only reported error once field checks pass.
	assert.Equal(t, []string{"Gymnast experience level does not match program requirements"}, appErr.Details)
	assert.Zero(t, repo.createCalls)
}

func TestEnrolmentServiceEnrolMismatchDetectedAtInsert(t *testing.T) {
	repo := &mockEnrolmentRepo{createErr: repository.ErrSkillLevelMismatch}
	svc := newEnrolmentService(repo, beginnerProgram(), nil)

	_, err := svc.Enrol(context.Background(), validEnrolRequest())
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, []string{"Gymnast experience level does not match program requirements"}, appErr.Details)
}

func TestEnrolmentServiceEnrolProgramDeletedAtInsert(t *testing.T) {
	repo := &mockEnrolmentRepo{createErr: sql.ErrNoRows}
	svc := newEnrolmentService(repo, beginnerProgram(), nil)

	_, err := svc.Enrol(context.Background(), validEnrolRequest())
	assert.True(t, appErrors.IsNotFound(err))
}

func TestEnrolmentServiceDeleteIdempotence(t *testing.T) {
	repo := &mockEnrolmentRepo{enrolments: map[string]*models.Enrolment{"e1": {ID: "e1"}}}
	svc := newEnrolmentService(repo, beginnerProgram(), nil)

	require.NoError(t, svc.Delete(context.Background(), "e1"))

	err := svc.Delete(context.Background(), "e1")
	require.Error(t, err)
	assert.True(t, appErrors.IsNotFound(err))
	appErr := appErrors.FromError(err)
	assert.Equal(t, "Enrolment not found", appErr.Message)
}

func TestEnrolmentServiceProgress(t *testing.T) {
	cases := []struct {
		name     string
		duration int
		attended int
		want     int
	}{
		{"partial", 8, 4, 50},
		{"rounded", 3, 1, 33},
		{"complete", 8, 8, 100},
		{"capped at 100", 8, 12, 100},
		{"no sessions", 8, 0, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &mockEnrolmentRepo{durations: map[string]int{"e1": tc.duration}}
			svc := newEnrolmentService(repo, beginnerProgram(), map[string]int{"e1": tc.attended})

			result, err := svc.Progress(context.Background(), "e1")
			require.NoError(t, err)
			assert.Equal(t, tc.want, result.Percentage)
			assert.Equal(t, tc.attended, result.AttendedSessions)
			assert.Equal(t, tc.duration, result.Duration)
		})
	}
}

func TestEnrolmentServiceProgressMissingEnrolment(t *testing.T) {
	repo := &mockEnrolmentRepo{durations: map[string]int{}}
	svc := newEnrolmentService(repo, beginnerProgram(), nil)

	result, err := svc.Progress(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Zero(t, result.Percentage)
	assert.Zero(t, result.AttendedSessions)
	assert.Zero(t, result.Duration)
}

func TestEnrolmentServiceList(t *testing.T) {
	repo := &mockEnrolmentRepo{details: []models.EnrolmentDetail{
		{Enrolment: models.Enrolment{ID: "e1"}, ProgramName: "Tumbling Basics"},
	}}
	svc := newEnrolmentService(repo, beginnerProgram(), nil)

	enrolments, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, enrolments, 1)
	assert.Equal(t, "Tumbling Basics", enrolments[0].ProgramName)
}
