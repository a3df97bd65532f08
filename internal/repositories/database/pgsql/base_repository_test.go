package pgsql

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obrasoft/obra-backoffice/internal/apperrors"
)

// stubTx fails commit and rollback with the given errors. Only the methods
// under test are implemented; the embedded interface covers the rest.
type stubTx struct {
	pgx.Tx
	commitErr   error
	rollbackErr error
}

func (s stubTx) Commit(ctx context.Context) error   { return s.commitErr }
func (s stubTx) Rollback(ctx context.Context) error { return s.rollbackErr }

func TestCommitFailureIsRetryableStorageError(t *testing.T) {
	repo := &BaseRepository{}

	err := repo.Commit(context.Background(), stubTx{commitErr: errors.New("connection reset by peer")})
	require.Error(t, err)

	assert.ErrorIs(t, err, apperrors.ErrStorageUnavailable)
	assert.True(t, apperrors.IsRetryable(err), "a failed commit is transient and worth retrying")

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 503, appErr.Code)
}

func TestRollbackFailureClassification(t *testing.T) {
	repo := &BaseRepository{}

	// A rollback after the tx already finished is not an error.
	require.NoError(t, repo.Rollback(context.Background(), stubTx{rollbackErr: pgx.ErrTxClosed}))

	err := repo.Rollback(context.Background(), stubTx{rollbackErr: errors.New("broken pipe")})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrStorageUnavailable)
	assert.True(t, apperrors.IsRetryable(err))
}
