package stream

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromSlice_YieldsInOrder(t *testing.T) {
	s := FromSlice(1, 2, 3)

	got, err := Collect(context.Background(), s, 0)
	require.NoError(t, err)
	assert.Equal(t, []any{1, 2, 3}, got)

	// A drained stream stays done.
	_, done, err := s.Next(context.Background())
	require.NoError(t, err)
	assert.True(t, done)
}

func TestFromSlice_ContextCancellation(t *testing.T) {
	s := FromSlice(1, 2)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := s.Next(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFromChannel(t *testing.T) {
	ch := make(chan any, 3)
	ch <- "a"
	ch <- "b"
	close(ch)

	got, err := Collect(context.Background(), FromChannel(ch), 0)
	require.NoError(t, err)
	assert.Equal(t, []any{"a", "b"}, got)
}

func TestFromChannel_BlocksUntilCancelled(t *testing.T) {
	ch := make(chan any)
	ctx, cancel := context.WithCancel(context.Background())

	go cancel()

	_, err := Collect(ctx, FromChannel(ch), 0)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCollect_Max(t *testing.T) {
	got, err := Collect(context.Background(), FromSlice(1, 2, 3, 4), 2)
	require.NoError(t, err)
	assert.Equal(t, []any{1, 2}, got)
}

func TestCollect_ReturnsPartialOnError(t *testing.T) {
	ch := make(chan any, 1)
	ch <- 1
	ctx, cancel := context.WithCancel(context.Background())

	s := FromChannel(ch)
	v, done, err := s.Next(ctx)
	require.NoError(t, err)
	require.False(t, done)
	assert.Equal(t, 1, v)

	cancel()
	_, _, err = s.Next(ctx)
	assert.Error(t, err)
}
