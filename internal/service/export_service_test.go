package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitalize/club-api/internal/models"
	appErrors "github.com/vitalize/club-api/pkg/errors"
)

func newExportFixture() *ExportService {
	programs := &mockProgramRepo{programs: map[string]*models.Program{
		"p1": {ID: "p1", Name: "Tumbling Basics", SkillLevel: models.SkillBeginner},
	}}
	enrolments := &mockEnrolmentLister{enrolments: []models.Enrolment{
		{
			ID:              "e1",
			ProgramID:       "p1",
			GymnastName:     "Mia",
			Age:             9,
			ExperienceLevel: models.SkillBeginner,
			EnrolledAt:      time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC),
		},
	}}
	progress := &mockProgressRepo{details: []models.ProgressDetail{
		{
			ProgressRecord: models.ProgressRecord{
				ID:          "pr1",
				EnrolmentID: "e1",
				SessionDate: time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
				Notes:       "Strong beam routine",
				Score:       85,
			},
			GymnastName: "Mia",
			ProgramName: "Tumbling Basics",
		},
	}}
	return NewExportService(programs, enrolments, progress, nil)
}

func TestExportServiceRosterCSV(t *testing.T) {
	svc := newExportFixture()

	file, err := svc.Roster(context.Background(), "p1", FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "roster.csv", file.Filename)
	assert.Equal(t, "text/csv", file.ContentType)

	content := string(file.Data)
	assert.True(t, strings.HasPrefix(content, "Gymnast,Age,Experience Level,Enrolled"))
	assert.Contains(t, content, "Mia,9,Beginner,2026-02-01")
}

func TestExportServiceRosterPDF(t *testing.T) {
	svc := newExportFixture()

	file, err := svc.Roster(context.Background(), "p1", FormatPDF)
	require.NoError(t, err)
	assert.Equal(t, "roster.pdf", file.Filename)
	assert.Equal(t, "application/pdf", file.ContentType)
	assert.True(t, strings.HasPrefix(string(file.Data), "%PDF"))
}

func TestExportServiceRosterProgramMissing(t *testing.T) {
	svc := newExportFixture()

	_, err := svc.Roster(context.Background(), "ghost", FormatCSV)
	assert.True(t, appErrors.IsNotFound(err))
}

func TestExportServiceProgressReportCSV(t *testing.T) {
	svc := newExportFixture()

	file, err := svc.ProgressReport(context.Background(), FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "progress.csv", file.Filename)

	content := string(file.Data)
	assert.True(t, strings.HasPrefix(content, "Gymnast,Program,Session,Score,Notes"))
	assert.Contains(t, content, "Mia,Tumbling Basics,2026-03-14,85,Strong beam routine")
}

func TestExportServiceUnknownFormat(t *testing.T) {
	svc := newExportFixture()

	_, err := svc.ProgressReport(context.Background(), ExportFormat("xlsx"))
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, []string{"Export format must be csv or pdf"}, appErr.Details)
}
