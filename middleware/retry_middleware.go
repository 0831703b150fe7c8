package middleware

import (
	"context"
	"errors"
	"time"

	"framed-rpc/rpcerror"
)

// Retry re-attempts a call after a connection fault, reconnecting between
// attempts with exponential backoff. Only *rpcerror.ConnectionError is
// retried: server-reported failures and marshaling errors would fail the
// same way again, and a protocol violation leaves the response stream in an
// unknown state.
//
// reconnect is called before each retry; typically client.Connect, since a
// connection fault leaves the client Disconnected.
func Retry(maxRetries int, baseDelay time.Duration, reconnect func() error) Middleware {
	return func(next Invoker) Invoker {
		return func(ctx context.Context, function string, args ...any) (any, error) {
			result, err := next(ctx, function, args...)
			for attempt := 0; attempt < maxRetries; attempt++ {
				var connErr *rpcerror.ConnectionError
				if err == nil || !errors.As(err, &connErr) {
					return result, err
				}

				select {
				case <-time.After(baseDelay * time.Duration(1<<attempt)):
				case <-ctx.Done():
					return nil, ctx.Err()
				}

				if rerr := reconnect(); rerr != nil {
					err = rerr
					continue
				}
				result, err = next(ctx, function, args...)
			}
			return result, err
		}
	}
}
