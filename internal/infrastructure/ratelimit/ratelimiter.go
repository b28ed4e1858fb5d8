package ratelimit

import (
	"context"
	"time"
)

// Limits are per-subject request caps; zero disables a window.
type Limits struct {
	PerMinute int
	PerHour   int
}

type RateLimiter interface {
	Allow(ctx context.Context, subject string, limits Limits) (bool, error)
	Remaining(ctx context.Context, subject string, window time.Duration, limit int) (int64, error)
	Reset(ctx context.Context, subject string) error
}
