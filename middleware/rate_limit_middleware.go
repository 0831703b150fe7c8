package middleware

import (
	"context"

	"golang.org/x/time/rate"
)

// RateLimit throttles calls with a token bucket of r calls per second and
// the given burst. Calls block until a token is available or the context
// is done.
func RateLimit(r float64, burst int) Middleware {
	limiter := rate.NewLimiter(rate.Limit(r), burst)
	return func(next Invoker) Invoker {
		return func(ctx context.Context, function string, args ...any) (any, error) {
			if err := limiter.Wait(ctx); err != nil {
				return nil, err
			}
			return next(ctx, function, args...)
		}
	}
}
