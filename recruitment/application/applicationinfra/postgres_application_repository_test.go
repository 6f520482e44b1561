package applicationinfra

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/jmorenovfever/AI4Devs-backend-fever/pkg/errx"
	"github.com/jmorenovfever/AI4Devs-backend-fever/recruitment/application"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var applicationColumns = []string{
	"id", "position_id", "candidate_id", "application_date",
	"current_interview_step", "notes", "created_at", "updated_at",
}

func newMock(t *testing.T) (*PostgresApplicationRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresApplicationRepository(sqlx.NewDb(db, "postgres")), mock
}

func TestCreate(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Now()
	app := application.NewApplication(3, 1, now)

	mock.ExpectQuery("INSERT INTO applications").
		WithArgs(int64(1), int64(3), now, 0, nil, now, now).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))

	require.NoError(t, repo.Create(context.Background(), app))
	assert.EqualValues(t, 11, app.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateDuplicate(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery("INSERT INTO applications").
		WillReturnError(&pq.Error{Code: "23505"})

	err := repo.Create(context.Background(), application.NewApplication(3, 1, time.Now()))
	assert.True(t, errx.IsCode(err, application.CodeApplicationAlreadyExists))
}

func TestGetLatestByCandidateID(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Now()

	mock.ExpectQuery("SELECT (.+) FROM applications (.+) ORDER BY application_date DESC").
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows(applicationColumns).AddRow(12, 2, 3, now, 1, nil, now, now))

	app, err := repo.GetLatestByCandidateID(context.Background(), 3)
	require.NoError(t, err)
	assert.EqualValues(t, 12, app.ID)
	assert.EqualValues(t, 2, app.PositionID)
	assert.Equal(t, 1, app.CurrentInterviewStep)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetLatestByCandidateIDNotFound(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery("SELECT (.+) FROM applications").
		WithArgs(int64(9999)).
		WillReturnRows(sqlmock.NewRows(applicationColumns))

	_, err := repo.GetLatestByCandidateID(context.Background(), 9999)
	assert.True(t, errx.IsCode(err, application.CodeApplicationNotFound))
}

func TestGetByCandidateAndPosition(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Now()

	mock.ExpectQuery("SELECT (.+) FROM applications").
		WithArgs(int64(3), int64(1)).
		WillReturnRows(sqlmock.NewRows(applicationColumns).AddRow(11, 1, 3, now, 0, "referred", now, now))

	app, err := repo.GetByCandidateAndPosition(context.Background(), 3, 1)
	require.NoError(t, err)
	assert.Equal(t, "referred", app.Notes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListWithCandidateByPositionID(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Now()
	cols := append(append([]string{}, applicationColumns...), "first_name", "last_name", "email")

	mock.ExpectQuery("SELECT (.+) FROM applications a INNER JOIN candidates c").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(11, 1, 3, now, 0, nil, now, now, "Albert", "Saelices", "albert@example.com").
			AddRow(12, 1, 4, now, 2, nil, now, now, "Ana", "Diaz", "ana@example.com"))

	rows, err := repo.ListWithCandidateByPositionID(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.EqualValues(t, "Albert", rows[0].FirstName)
	assert.EqualValues(t, 4, rows[1].CandidateID)
	assert.Equal(t, 2, rows[1].CurrentInterviewStep)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListWithCandidateByPositionIDEmpty(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery("SELECT (.+) FROM applications").
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows(applicationColumns))

	rows, err := repo.ListWithCandidateByPositionID(context.Background(), 99)
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestUpdateInterviewStep(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return now }

	mock.ExpectQuery("UPDATE applications SET current_interview_step").
		WithArgs(int64(11), 2, now).
		WillReturnRows(sqlmock.NewRows(applicationColumns).AddRow(11, 1, 3, now, 2, nil, now, now))

	app, err := repo.UpdateInterviewStep(context.Background(), 11, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, app.CurrentInterviewStep)
	assert.Equal(t, now, app.UpdatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateInterviewStepNotFound(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery("UPDATE applications").
		WillReturnRows(sqlmock.NewRows(applicationColumns))

	_, err := repo.UpdateInterviewStep(context.Background(), 404, 1)
	assert.True(t, errx.IsCode(err, application.CodeApplicationNotFound))
}
