package db

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	raw, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { raw.Close() })
	return sqlx.NewDb(raw, "postgres"), mock
}

func TestWithTxCommitsOnSuccess(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	var calls int
	err := WithTx(context.Background(), db, func(*sqlx.Tx) error {
		calls++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTxRetriesSerializationFailure(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()
	mock.ExpectBegin()
	mock.ExpectCommit()

	var calls int
	err := WithTx(context.Background(), db, func(*sqlx.Tx) error {
		calls++
		if calls == 1 {
			return &pq.Error{Code: "40001"}
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTxDoesNotRetryOrdinaryErrors(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	boom := errors.New("boom")
	var calls int
	err := WithTx(context.Background(), db, func(*sqlx.Tx) error {
		calls++
		return boom
	})
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTxGivesUpAfterRetryLimit(t *testing.T) {
	db, mock := newMockDB(t)
	for i := 0; i < 5; i++ {
		mock.ExpectBegin()
		mock.ExpectRollback()
	}

	var calls int
	err := WithTx(context.Background(), db, func(*sqlx.Tx) error {
		calls++
		return &pq.Error{Code: "40P01"}
	})
	require.Error(t, err)
	assert.Equal(t, 5, calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIsRetryablePGError(t *testing.T) {
	assert.True(t, isRetryablePGError(&pq.Error{Code: "40001"}))
	assert.True(t, isRetryablePGError(&pq.Error{Code: "40P01"}))
	assert.False(t, isRetryablePGError(&pq.Error{Code: "23505"}))
	assert.False(t, isRetryablePGError(errors.New("not a pq error")))
}
