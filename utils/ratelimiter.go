package utils

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiter spaces out detail-page fetches by a fixed delay
type RateLimiter struct {
	limiter *rate.Limiter
}

// NewRateLimiter creates a new RateLimiter with the given delay in milliseconds.
// A delay of zero or less never blocks.
func NewRateLimiter(delayMs int) *RateLimiter {
	if delayMs <= 0 {
		return &RateLimiter{limiter: rate.NewLimiter(rate.Inf, 1)}
	}
	every := time.Duration(delayMs) * time.Millisecond
	return &RateLimiter{limiter: rate.NewLimiter(rate.Every(every), 1)}
}

// Wait blocks until enough time has passed since the last request
func (r *RateLimiter) Wait(ctx context.Context) error {
	return r.limiter.Wait(ctx)
}
