package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitalize/club-api/internal/models"
)

func enrolmentColumns() []string {
	return []string{"id", "program_id", "gymnast_name", "age", "experience_level", "enrolled_at"}
}

func TestEnrolmentRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEnrolmentRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT name, skill_level FROM programs WHERE id = $1 FOR SHARE")).
		WithArgs("p1").
		WillReturnRows(sqlmock.NewRows([]string{"name", "skill_level"}).AddRow("Tumbling Basics", "Beginner"))
	mock.ExpectExec("INSERT INTO enrolments").
		WithArgs(sqlmock.AnyArg(), "p1", "Mia", 9, models.SkillBeginner, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	enrolment := &models.Enrolment{
		ProgramID:       "p1",
		GymnastName:     "Mia",
		Age:             9,
		ExperienceLevel: models.SkillBeginner,
	}
	programName, err := repo.Create(context.Background(), enrolment)
	require.NoError(t, err)
	assert.Equal(t, "Tumbling Basics", programName)
	assert.NotEmpty(t, enrolment.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrolmentRepositoryCreateSkillMismatch(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEnrolmentRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT name, skill_level FROM programs WHERE id = $1 FOR SHARE")).
		WithArgs("p1").
		WillReturnRows(sqlmock.NewRows([]string{"name", "skill_level"}).AddRow("Tumbling Basics", "Advanced"))
	mock.ExpectRollback()

	_, err := repo.Create(context.Background(), &models.Enrolment{
		ProgramID:       "p1",
		GymnastName:     "Mia",
		Age:             9,
		ExperienceLevel: models.SkillBeginner,
	})
	assert.ErrorIs(t, err, ErrSkillLevelMismatch)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrolmentRepositoryCreateProgramMissing(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEnrolmentRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT name, skill_level FROM programs WHERE id = $1 FOR SHARE")).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	_, err := repo.Create(context.Background(), &models.Enrolment{
		ProgramID:       "ghost",
		GymnastName:     "Mia",
		Age:             9,
		ExperienceLevel: models.SkillBeginner,
	})
	assert.True(t, errors.Is(err, sql.ErrNoRows))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrolmentRepositoryDelete(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEnrolmentRepository(db)

	mock.ExpectExec("DELETE FROM enrolments WHERE").
		WithArgs("e1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	found, err := repo.Delete(context.Background(), "e1")
	require.NoError(t, err)
	assert.True(t, found)

	mock.ExpectExec("DELETE FROM enrolments WHERE").
		WithArgs("e1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	found, err = repo.Delete(context.Background(), "e1")
	require.NoError(t, err)
	assert.False(t, found)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrolmentRepositoryList(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEnrolmentRepository(db)

	rows := sqlmock.NewRows(append(enrolmentColumns(), "program_name")).
		AddRow("e1", "p1", "Mia", 9, "Beginner", time.Now(), "Tumbling Basics")
	mock.ExpectQuery("FROM enrolments e JOIN programs p ON p.id = e.program_id").
		WillReturnRows(rows)

	enrolments, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, enrolments, 1)
	assert.Equal(t, "Tumbling Basics", enrolments[0].ProgramName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrolmentRepositoryListByProgram(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEnrolmentRepository(db)

	rows := sqlmock.NewRows(enrolmentColumns()).
		AddRow("e1", "p1", "Mia", 9, "Beginner", time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("FROM enrolments WHERE program_id = $1 ORDER BY enrolled_at DESC")).
		WithArgs("p1").
		WillReturnRows(rows)

	enrolments, err := repo.ListByProgram(context.Background(), "p1")
	require.NoError(t, err)
	assert.Len(t, enrolments, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrolmentRepositoryFindDuration(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEnrolmentRepository(db)

	mock.ExpectQuery("SELECT p.duration FROM enrolments e").
		WithArgs("e1").
		WillReturnRows(sqlmock.NewRows([]string{"duration"}).AddRow(8))

	duration, err := repo.FindDuration(context.Background(), "e1")
	require.NoError(t, err)
	assert.Equal(t, 8, duration)

	mock.ExpectQuery("SELECT p.duration FROM enrolments e").
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err = repo.FindDuration(context.Background(), "ghost")
	assert.True(t, errors.Is(err, sql.ErrNoRows))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrolmentRepositoryCount(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEnrolmentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM enrolments")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	total, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}
