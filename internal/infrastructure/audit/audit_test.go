package audit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func failureColumns() []string {
	return []string{
		"failure_id", "session_id", "user_id", "subscription_id",
		"step", "operation", "error_reason", "created_at",
	}
}

func TestDBAudit_RecordFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO persistence_failures").
		WithArgs(sqlmock.AnyArg(), "sess_1", "user_1", "sub_1",
			"sorry-to-go", "mark_pending_cancellation", "connection reset", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	a := NewDBAudit(db)
	err = a.RecordFailure(context.Background(), "sess_1", "user_1", "sub_1",
		"sorry-to-go", "mark_pending_cancellation", "connection reset")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDBAudit_RecentFailures(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows(failureColumns()).
		AddRow(uuid.New().String(), "sess_1", "user_1", "sub_1",
			"sorry-to-go", "insert_cancellation_record", "connection reset", now).
		AddRow(uuid.New().String(), "sess_2", nil, nil,
			"all-done", "mark_pending_cancellation", "timeout", now)

	mock.ExpectQuery("FROM persistence_failures").WithArgs(2).WillReturnRows(rows)

	a := NewDBAudit(db)
	failures, err := a.RecentFailures(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, failures, 2)

	assert.Equal(t, "sess_1", failures[0].SessionID)
	assert.True(t, failures[0].UserID.Valid)
	assert.Equal(t, "user_1", failures[0].UserID.String)

	// Anonymous sessions carry NULL user and subscription ids
	assert.False(t, failures[1].UserID.Valid)
	assert.False(t, failures[1].SubscriptionID.Valid)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDBAudit_RecentFailures_ReportsRowError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows(failureColumns()).
		AddRow(uuid.New().String(), "sess_1", "user_1", "sub_1",
			"sorry-to-go", "insert_cancellation_record", "connection reset", time.Now()).
		AddRow(uuid.New().String(), "sess_2", "user_2", "sub_2",
			"all-done", "mark_pending_cancellation", "timeout", time.Now()).
		RowError(1, errors.New("driver: bad connection"))

	mock.ExpectQuery("FROM persistence_failures").WithArgs(5).WillReturnRows(rows)

	a := NewDBAudit(db)
	failures, err := a.RecentFailures(context.Background(), 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to iterate failures")
	assert.Nil(t, failures)
}
