package common

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetry_EventuallySucceeds(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), RetryPolicy{Attempts: 3, Delay: time.Millisecond}, func() error {
		calls++
		if calls < 3 {
			return errors.New("busy")
		}

		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetry_GivesUp(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), RetryPolicy{Attempts: 2, Delay: time.Millisecond}, func() error {
		calls++
		return errors.New("busy")
	})

	require.EqualError(t, err, "busy")
	assert.Equal(t, 2, calls)
}

func TestRetry_NotExistIsPermanent(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), DefaultRetryPolicy(), func() error {
		calls++
		return fmt.Errorf("open a.cs: %w", fs.ErrNotExist)
	})

	require.ErrorIs(t, err, fs.ErrNotExist)
	assert.Equal(t, 1, calls)
}

func TestRetry_ZeroAttemptsRunsOnce(t *testing.T) {
	calls := 0
	_ = Retry(context.Background(), RetryPolicy{}, func() error {
		calls++
		return errors.New("x")
	})

	assert.Equal(t, 1, calls)
}
