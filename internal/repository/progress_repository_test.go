package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitalize/club-api/internal/models"
)

func TestProgressRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewProgressRepository(db)

	mock.ExpectExec("INSERT INTO progress").
		WithArgs(sqlmock.AnyArg(), "e1", sqlmock.AnyArg(), "Strong beam routine", 85).
		WillReturnResult(sqlmock.NewResult(0, 1))

	record := &models.ProgressRecord{
		EnrolmentID: "e1",
		SessionDate: time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
		Notes:       "Strong beam routine",
		Score:       85,
	}
	err := repo.Create(context.Background(), record)
	require.NoError(t, err)
	assert.NotEmpty(t, record.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProgressRepositoryList(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewProgressRepository(db)

	rows := sqlmock.NewRows([]string{"id", "enrolment_id", "session_date", "notes", "score", "gymnast_name", "program_name"}).
		AddRow("pr1", "e1", time.Now(), "Strong beam routine", 85, "Mia", "Tumbling Basics")
	mock.ExpectQuery("FROM progress pr").
		WillReturnRows(rows)

	records, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Mia", records[0].GymnastName)
	assert.Equal(t, "Tumbling Basics", records[0].ProgramName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProgressRepositoryListByEnrolment(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewProgressRepository(db)

	rows := sqlmock.NewRows([]string{"id", "enrolment_id", "session_date", "notes", "score"}).
		AddRow("pr1", "e1", time.Now(), "Strong beam routine", 85)
	mock.ExpectQuery(regexp.QuoteMeta("FROM progress WHERE enrolment_id = $1 ORDER BY session_date DESC")).
		WithArgs("e1").
		WillReturnRows(rows)

	records, err := repo.ListByEnrolment(context.Background(), "e1")
	require.NoError(t, err)
	assert.Len(t, records, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProgressRepositoryAverageScore(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewProgressRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COALESCE(AVG(score), 0) FROM progress")).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(82.5))

	avg, err := repo.AverageScore(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 82.5, avg, 0.001)
	assert.NoError(t, mock.ExpectationsWereMet())
}
