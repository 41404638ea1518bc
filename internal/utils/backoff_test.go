package utils

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackoffRetriesUntilSuccess(t *testing.T) {
	b := NewBackoff(time.Millisecond, 5*time.Millisecond, 3)
	calls := 0
	err := b.Do(context.Background(), func(i int) error {
		calls++
		if i < 2 {
			return errors.New("transient")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestBackoffExhaustsRetries(t *testing.T) {
	b := NewBackoff(time.Millisecond, time.Millisecond, 2)
	calls := 0
	err := b.Do(context.Background(), func(int) error {
		calls++
		return errors.New("still down")
	})
	require.Error(t, err)
	assert.Equal(t, "still down", err.Error())
	assert.Equal(t, 3, calls)
}

func TestBackoffStopsOnCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	calls := 0
	err := NewBackoff(time.Millisecond, time.Millisecond, 5).Do(ctx, func(int) error {
		calls++
		return errors.New("x")
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}
