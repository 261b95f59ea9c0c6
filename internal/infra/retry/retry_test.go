package retry

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func apiError(code, retryAfter int) error {
	return &tgbotapi.Error{
		Code:               code,
		Message:            "test",
		ResponseParameters: tgbotapi.ResponseParameters{RetryAfter: retryAfter},
	}
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(apiError(429, 0)))
	assert.True(t, IsRetryable(apiError(502, 0)))
	assert.True(t, IsRetryable(fmt.Errorf("wrapped: %w", apiError(500, 0))))
	assert.False(t, IsRetryable(apiError(400, 0)))
	assert.False(t, IsRetryable(errors.New("boom")))
	assert.False(t, IsRetryable(nil))
}

func TestRetryAfter(t *testing.T) {
	assert.Equal(t, 3*time.Second, RetryAfter(apiError(429, 3)))
	assert.Zero(t, RetryAfter(apiError(500, 3)))
	assert.Zero(t, RetryAfter(errors.New("boom")))
}

func TestFullJitterSleepBounds(t *testing.T) {
	for attempt := 0; attempt < 6; attempt++ {
		d := FullJitterSleep(attempt, 10*time.Millisecond, 40*time.Millisecond)
		assert.GreaterOrEqual(t, d, time.Duration(0))
		assert.LessOrEqual(t, d, 40*time.Millisecond)
	}
	assert.Zero(t, FullJitterSleep(3, 0, time.Second))
}

func TestDoRetriesUntilSuccess(t *testing.T) {
	calls := 0
	err := Do(context.Background(), Options{MaxRetries: 3, BaseDelay: time.Millisecond, MaxDelay: time.Millisecond}, func() error {
		calls++
		if calls < 3 {
			return apiError(503, 0)
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestDoStopsOnPermanentError(t *testing.T) {
	calls := 0
	err := Do(context.Background(), Options{MaxRetries: 5, BaseDelay: time.Millisecond}, func() error {
		calls++
		return apiError(400, 0)
	})
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestDoGivesUpAfterMaxRetries(t *testing.T) {
	calls := 0
	err := Do(context.Background(), Options{MaxRetries: 2, BaseDelay: time.Millisecond, MaxDelay: time.Millisecond}, func() error {
		calls++
		return apiError(429, 1)
	})
	require.Error(t, err)
	assert.Equal(t, 3, calls)
}

func TestDoHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	calls := 0
	err := Do(ctx, Options{MaxRetries: 2}, func() error {
		calls++
		return nil
	})
	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, calls)
}
