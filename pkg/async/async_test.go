package async_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrymomot/lazyi18n/pkg/async"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoAndAwait(t *testing.T) {
	t.Parallel()

	f := async.Go(context.Background(), func(ctx context.Context) (int, error) {
		return 42, nil
	})

	got, err := f.Await()
	require.NoError(t, err)
	assert.Equal(t, 42, got)
	assert.True(t, f.IsComplete())
}

func TestGoPropagatesError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	f := async.Go(context.Background(), func(ctx context.Context) (int, error) {
		return 0, boom
	})

	_, err := f.Await()
	assert.ErrorIs(t, err, boom)
}

func TestGoWithCancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	invoked := false
	f := async.Go(ctx, func(ctx context.Context) (int, error) {
		invoked = true
		return 1, nil
	})

	_, err := f.Await()
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, invoked, "pre-cancelled context must not invoke the function")
}

func TestAwaitWithTimeout(t *testing.T) {
	t.Parallel()

	f := async.Go(context.Background(), func(ctx context.Context) (string, error) {
		time.Sleep(200 * time.Millisecond)
		return "late", nil
	})

	_, err := f.AwaitWithTimeout(10 * time.Millisecond)
	assert.ErrorIs(t, err, async.ErrTimeout)

	// The computation keeps running and can still be awaited.
	got, err := f.Await()
	require.NoError(t, err)
	assert.Equal(t, "late", got)
}

func TestSettleReturnsEveryOutcome(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	ctx := context.Background()

	futures := []*async.Future[string]{
		async.Go(ctx, func(ctx context.Context) (string, error) { return "a", nil }),
		async.Go(ctx, func(ctx context.Context) (string, error) { return "", boom }),
		async.Go(ctx, func(ctx context.Context) (string, error) { return "c", nil }),
	}

	results := async.Settle(futures...)
	require.Len(t, results, 3)

	assert.Equal(t, "a", results[0].Value)
	require.NoError(t, results[0].Err)

	assert.ErrorIs(t, results[1].Err, boom)

	assert.Equal(t, "c", results[2].Value)
	require.NoError(t, results[2].Err, "a failed sibling must not affect other outcomes")
}

func TestSettleEmpty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, async.Settle[int]())
}
