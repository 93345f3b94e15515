package discogs

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
)

// Pacer paces outbound Discogs API calls. Implementations must be safe for
// concurrent use; one pacer is shared across all requests so concurrent
// enrichment loops cannot exceed the provider's rate budget together.
type Pacer interface {
	Wait(ctx context.Context) error
}

// RateLimiter implements Pacer with a token bucket.
type RateLimiter struct {
	limiter *rate.Limiter
}

// NewRateLimiter creates a rate limiter with the given steady per-second
// rate and burst size.
func NewRateLimiter(perSecond float64, burst int) *RateLimiter {
	return &RateLimiter{
		limiter: rate.NewLimiter(rate.Limit(perSecond), burst),
	}
}

// Wait blocks until the limiter allows the call or the context is canceled.
func (r *RateLimiter) Wait(ctx context.Context) error {
	if err := r.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter wait: %w", err)
	}
	return nil
}

// NopPacer is a Pacer that never waits. Tests use it to run the pipeline
// without real-time delays.
type NopPacer struct{}

// Wait implements Pacer.
func (NopPacer) Wait(context.Context) error { return nil }
