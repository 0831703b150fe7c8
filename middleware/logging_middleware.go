package middleware

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Logging logs every call with its duration and outcome.
func Logging(logger zerolog.Logger) Middleware {
	return func(next Invoker) Invoker {
		return func(ctx context.Context, function string, args ...any) (any, error) {
			start := time.Now()
			result, err := next(ctx, function, args...)
			evt := logger.Info()
			if err != nil {
				evt = logger.Error().Err(err)
			}
			evt.Str("function", function).
				Int("args", len(args)).
				Dur("duration", time.Since(start)).
				Msg("rpc call")
			return result, err
		}
	}
}
