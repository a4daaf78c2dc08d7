package async_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aasthachits/chitfund/pkg/async"
)

func TestAsyncAwait(t *testing.T) {
	t.Parallel()

	f := async.Async(context.Background(), 21, func(ctx context.Context, n int) (int, error) {
		return n * 2, nil
	})

	res, err := f.Await()
	require.NoError(t, err)
	assert.Equal(t, 42, res)
}

func TestAsyncError(t *testing.T) {
	t.Parallel()

	wantErr := errors.New("boom")
	f := async.Async(context.Background(), struct{}{}, func(ctx context.Context, _ struct{}) (string, error) {
		return "", wantErr
	})

	_, err := f.Await()
	require.ErrorIs(t, err, wantErr)
}

func TestAwaitWithTimeout(t *testing.T) {
	t.Parallel()

	f := async.Async(context.Background(), struct{}{}, func(ctx context.Context, _ struct{}) (string, error) {
		time.Sleep(200 * time.Millisecond)
		return "late", nil
	})

	_, err := f.AwaitWithTimeout(20 * time.Millisecond)
	require.ErrorIs(t, err, async.ErrTimeout)

	// The underlying work still completes and remains observable.
	res, err := f.Await()
	require.NoError(t, err)
	assert.Equal(t, "late", res)
}

func TestAsyncCanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := async.Async(ctx, struct{}{}, func(ctx context.Context, _ struct{}) (int, error) {
		return 7, nil
	})

	_, err := f.Await()
	require.ErrorIs(t, err, context.Canceled)
}

func TestAwaitAfterCompletion(t *testing.T) {
	t.Parallel()

	f := async.Async(context.Background(), 3, func(ctx context.Context, n int) (int, error) {
		return n * n, nil
	})

	for range 2 {
		res, err := f.Await()
		require.NoError(t, err)
		assert.Equal(t, 9, res)
	}
}
