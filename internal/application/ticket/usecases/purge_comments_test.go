package usecases

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

type purgerFunc func(ctx context.Context, cutoff time.Time) (int64, error)

func (f purgerFunc) PurgeDeleted(ctx context.Context, cutoff time.Time) (int64, error) {
	return f(ctx, cutoff)
}

func TestPurgeDeletedCommentsUseCase(t *testing.T) {
	var gotCutoff time.Time
	uc := NewPurgeDeletedCommentsUseCase(purgerFunc(func(_ context.Context, cutoff time.Time) (int64, error) {
		gotCutoff = cutoff
		return 3, nil
	}), 30, logger.NewNop())

	n, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.WithinDuration(t, time.Now().UTC().Add(-30*24*time.Hour), gotCutoff, time.Minute)
}

func TestPurgeDeletedCommentsUseCase_Disabled(t *testing.T) {
	called := false
	uc := NewPurgeDeletedCommentsUseCase(purgerFunc(func(context.Context, time.Time) (int64, error) {
		called = true
		return 0, nil
	}), 0, logger.NewNop())

	n, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.False(t, called)
}

func TestPurgeDeletedCommentsUseCase_Error(t *testing.T) {
	uc := NewPurgeDeletedCommentsUseCase(purgerFunc(func(context.Context, time.Time) (int64, error) {
		return 0, errors.New("db down")
	}), 7, logger.NewNop())

	_, err := uc.Execute(context.Background())
	assert.Error(t, err)
}
