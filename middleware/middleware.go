// Package middleware provides composable interceptors around the client's
// call operation.
//
// The call engine itself never retries, rate-limits, or times out; those are
// caller policies, layered here. Middlewares wrap an Invoker in the onion
// model: Chain(A, B, C)(invoke) runs A before B before C before the call.
package middleware

import (
	"context"

	"framed-rpc/client"
)

// Invoker has the shape of client.CallContext.
type Invoker func(ctx context.Context, function string, args ...any) (any, error)

// Middleware wraps an Invoker with additional behavior.
type Middleware func(next Invoker) Invoker

// Chain composes middlewares into one. The first middleware is outermost.
func Chain(middlewares ...Middleware) Middleware {
	return func(next Invoker) Invoker {
		for i := len(middlewares) - 1; i >= 0; i-- {
			next = middlewares[i](next)
		}
		return next
	}
}

// Wrap builds an Invoker over c with the given middlewares applied.
func Wrap(c *client.Client, middlewares ...Middleware) Invoker {
	return Chain(middlewares...)(c.CallContext)
}
