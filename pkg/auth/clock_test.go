package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// fakeClock records every requested sleep and advances virtual time without
// blocking.
type fakeClock struct {
	now    time.Time
	sleeps []time.Duration
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.sleeps = append(c.sleeps, d)
	c.now = c.now.Add(d)
	return nil
}

func TestSystemClockSleepHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := SystemClock.Sleep(ctx, time.Minute)
	require.ErrorIs(t, err, context.Canceled)
}

func TestSystemClockSleepReturnsAfterDuration(t *testing.T) {
	start := time.Now()
	require.NoError(t, SystemClock.Sleep(context.Background(), time.Millisecond))
	require.GreaterOrEqual(t, time.Since(start), time.Millisecond)
}
