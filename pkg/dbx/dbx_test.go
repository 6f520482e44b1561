package dbx

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "postgres"), mock
}

func TestWithinTxCommits(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO things").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := NewTransactor(db).WithinTx(context.Background(), func(ctx context.Context) error {
		_, ok := TxFrom(ctx)
		assert.True(t, ok)
		_, err := Conn(ctx, db).ExecContext(ctx, "INSERT INTO things VALUES (1)")
		return err
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithinTxRollsBackOnError(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	boom := errors.New("boom")
	err := NewTransactor(db).WithinTx(context.Background(), func(ctx context.Context) error {
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithinTxJoinsOuterTransaction(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	tr := NewTransactor(db)
	err := tr.WithinTx(context.Background(), func(outer context.Context) error {
		outerTx, _ := TxFrom(outer)
		return tr.WithinTx(outer, func(inner context.Context) error {
			innerTx, _ := TxFrom(inner)
			assert.Same(t, outerTx, innerTx)
			return nil
		})
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConnWithoutTx(t *testing.T) {
	db, _ := newMockDB(t)
	assert.Same(t, db, Conn(context.Background(), db))
}

func TestIsUniqueViolation(t *testing.T) {
	dup := &pq.Error{Code: "23505", Constraint: "candidates_email_key"}

	assert.True(t, IsUniqueViolation(dup))
	assert.True(t, IsUniqueViolation(fmt.Errorf("insert: %w", dup), "candidates_email_key"))
	assert.False(t, IsUniqueViolation(dup, "applications_candidate_position_key"))
	assert.False(t, IsUniqueViolation(&pq.Error{Code: "23503"}))
	assert.False(t, IsUniqueViolation(errors.New("boom")))
}
