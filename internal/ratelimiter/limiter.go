package ratelimiter

import (
	"context"

	"golang.org/x/time/rate"
)

// SinkLimiter throttles writes to the audit sink with a token bucket.
// Burst equals the rate, so no capacity saves up beyond one second's worth.
type SinkLimiter struct {
	limiter *rate.Limiter
}

// New creates a SinkLimiter allowing ratePerSec writes per second.
// A non-positive rate disables throttling.
func New(ratePerSec int) *SinkLimiter {
	if ratePerSec <= 0 {
		return &SinkLimiter{limiter: rate.NewLimiter(rate.Inf, 0)}
	}
	return &SinkLimiter{limiter: rate.NewLimiter(rate.Limit(ratePerSec), ratePerSec)}
}

// Wait blocks until the limiter grants a token.
// Returns a non-nil error only if ctx is cancelled while waiting.
func (l *SinkLimiter) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}
