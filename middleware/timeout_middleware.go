package middleware

import (
	"context"
	"time"
)

// Timeout bounds each call with a context deadline. The client arms the
// socket deadline from the context, so a stuck exchange surfaces as a
// connection fault instead of blocking forever.
func Timeout(timeout time.Duration) Middleware {
	return func(next Invoker) Invoker {
		return func(ctx context.Context, function string, args ...any) (any, error) {
			ctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()
			return next(ctx, function, args...)
		}
	}
}
