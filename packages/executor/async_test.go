package executor

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdul-hamid-achik/checkspec/packages/catalog"
	"github.com/abdul-hamid-achik/checkspec/packages/outcome"
)

func asyncTrue() catalog.AsyncPredicate {
	return catalog.AsyncPredicate(func(ctx context.Context, subject any, _ ...any) (bool, error) {
		return true, nil
	})
}

func TestRunAsync_SyncImplementationRunsInline(t *testing.T) {
	a := catalog.MustNew("to hold", catalog.Predicate(func(subject any, _ ...any) bool {
		return subject == 1
	}))

	res, err := RunAsync(context.Background(), a, 1, nil, time.Second)
	require.NoError(t, err)
	assert.True(t, res.Passed)
}

func TestRunAsync_AsyncPredicate(t *testing.T) {
	a := catalog.MustNew("to settle", catalog.AsyncPredicate(func(ctx context.Context, subject any, _ ...any) (bool, error) {
		return subject == "ready", nil
	}))

	res, err := RunAsync(context.Background(), a, "ready", nil, time.Second)
	require.NoError(t, err)
	assert.True(t, res.Passed)

	res, err = RunAsync(context.Background(), a, "pending", nil, time.Second)
	require.NoError(t, err)
	assert.False(t, res.Passed)
}

func TestRunAsync_AsyncDescriber(t *testing.T) {
	a := catalog.MustNew("to report", catalog.AsyncDescriber(func(ctx context.Context, subject any, _ ...any) error {
		return &outcome.Failure{Message: "async diagnostic"}
	}))

	res, err := RunAsync(context.Background(), a, 1, nil, time.Second)
	require.NoError(t, err)
	require.False(t, res.Passed)
	assert.Equal(t, "async diagnostic", res.Failure.Message)
}

func TestRunAsync_TimeoutProducesDeterministicFailure(t *testing.T) {
	// The implementation blocks until its context is cancelled; the timer
	// must win the race and report a timeout failure, not an error.
	a := catalog.MustNew("to settle", catalog.AsyncPredicate(func(ctx context.Context, subject any, _ ...any) (bool, error) {
		<-ctx.Done()
		return false, ctx.Err()
	}), catalog.WithTimeout())

	start := time.Now()
	res, err := RunAsync(context.Background(), a, "slow", nil, 20*time.Millisecond)
	require.NoError(t, err)
	require.False(t, res.Passed)
	assert.Contains(t, res.Failure.Message, "timed out after 20ms")
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestRunAsync_CompletesBeforeTimeout(t *testing.T) {
	a := catalog.MustNew("to settle", catalog.AsyncPredicate(func(ctx context.Context, subject any, _ ...any) (bool, error) {
		return true, nil
	}), catalog.WithTimeout())

	res, err := RunAsync(context.Background(), a, 1, nil, time.Second)
	require.NoError(t, err)
	assert.True(t, res.Passed)
}

func TestRunAsync_ParentCancellationPropagates(t *testing.T) {
	a := catalog.MustNew("to settle", catalog.AsyncPredicate(func(ctx context.Context, subject any, _ ...any) (bool, error) {
		<-ctx.Done()
		return false, ctx.Err()
	}), catalog.WithTimeout())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := RunAsync(ctx, a, 1, nil, time.Second)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunAsync_NonTimeoutAwareRunsWithoutTimer(t *testing.T) {
	a := catalog.MustNew("to settle", catalog.AsyncPredicate(func(ctx context.Context, subject any, _ ...any) (bool, error) {
		return true, nil
	}))

	// within of zero must not matter for assertions that never wait.
	res, err := RunAsync(context.Background(), a, 1, nil, 0)
	require.NoError(t, err)
	assert.True(t, res.Passed)
}
