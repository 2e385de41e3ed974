package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"luman/internal/domain/models"
)

func TestExecTxCommitsOnSuccess(t *testing.T) {
	ctx := context.Background()
	mock, cfg := newMockConfig(t)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO tasks .+").
		WithArgs("task-1", "ws-1", (*string)(nil), "ship it", false).
		WillReturnRows(
			pgxmock.NewRows([]string{"id", "workspace_id", "note_id", "content", "is_completed", "created_at", "updated_at"}).
				AddRow("task-1", "ws-1", (*string)(nil), "ship it", false, now, now),
		)
	mock.ExpectCommit()
	mock.ExpectRollback() // deferred rollback after commit is a no-op

	tm := NewTransactionManager(mock)
	repo := NewTaskRepository(cfg)

	err := tm.ExecTx(ctx, func(txCtx context.Context) error {
		// The repository must pick the transaction out of the context.
		_, err := repo.UpsertBatch(txCtx, []models.Task{
			{ID: "task-1", WorkspaceID: "ws-1", Content: "ship it"},
		})
		return err
	})

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExecTxRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	mock, _ := newMockConfig(t)

	mock.ExpectBegin()
	mock.ExpectRollback()

	tm := NewTransactionManager(mock)
	failure := errors.New("batch failed")

	err := tm.ExecTx(ctx, func(txCtx context.Context) error {
		return failure
	})

	assert.ErrorIs(t, err, failure)
	require.NoError(t, mock.ExpectationsWereMet())
}
