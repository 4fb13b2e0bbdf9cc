package emulator

import (
	"context"
	"time"
)

const (
	TICK_RATE = 60 // Nominal ticks per second.
)

// Clock paces ticks at TICK_RATE times its speed. It is a best-effort
// rate limiter, not a real-time guarantee.
type Clock struct {
	period time.Duration
	next   time.Time
}

// NewClock creates a clock for a speed multiplier.
func NewClock(speed float64) (clock *Clock, err error) {
	if !(speed > 0) {
		err = ErrSpeed
		return
	}

	clock = &Clock{
		period: time.Duration(float64(time.Second) / (TICK_RATE * speed)),
	}

	return
}

// Period returns the time between ticks.
func (clock *Clock) Period() time.Duration {
	return clock.period
}

// Wait sleeps for the remainder of the current tick period.
// It returns early with the context's error on cancellation.
func (clock *Clock) Wait(ctx context.Context) (err error) {
	now := time.Now()
	if clock.next.IsZero() || now.Sub(clock.next) > clock.period {
		// First tick, or too far behind to catch up.
		clock.next = now
	}
	clock.next = clock.next.Add(clock.period)

	delay := clock.next.Sub(now)
	if delay <= 0 {
		err = ctx.Err()
		return
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		err = ctx.Err()
	case <-timer.C:
	}

	return
}
