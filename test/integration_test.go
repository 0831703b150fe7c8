package test

import (
	"context"
	"errors"
	"testing"
	"time"

	"framed-rpc/client"
	"framed-rpc/loadbalance"
	"framed-rpc/middleware"
	"framed-rpc/registry"
	"framed-rpc/rpcerror"
	"framed-rpc/rpctest"
)

// Full stack: registry discovery → balancer pick → connect → call.
func TestDiscoverAndCall(t *testing.T) {
	srv, err := rpctest.NewServer()
	if err != nil {
		t.Fatal(err)
	}
	defer srv.Close()

	reg := registry.Static("rpc", srv.Addr())
	endpoints, err := reg.Discover("rpc")
	if err != nil {
		t.Fatal(err)
	}
	bal := &loadbalance.RoundRobinBalancer{}
	ep, err := bal.Pick(endpoints)
	if err != nil {
		t.Fatal(err)
	}

	c := client.NewAddr(ep.Addr)
	if err := c.Connect(); err != nil {
		t.Fatal(err)
	}
	defer c.Disconnect()

	result, err := c.Call("add", 10, 5)
	if err != nil {
		t.Fatal(err)
	}
	if result.(float64) != 15 {
		t.Fatalf("add(10, 5) = %v, want 15", result)
	}
}

// The retry middleware turns "connection problem → reconnect → try again"
// into caller policy, exactly the branch a bare caller would write by hand.
func TestRetryMiddlewareReconnects(t *testing.T) {
	srv, err := rpctest.NewServer()
	if err != nil {
		t.Fatal(err)
	}
	defer srv.Close()

	c := client.NewAddr(srv.Addr())
	defer c.Disconnect()

	// Deliberately not connected: the first attempt fails with a
	// ConnectionError, the retry reconnects and succeeds.
	invoke := middleware.Wrap(c,
		middleware.Retry(2, 10*time.Millisecond, c.Connect),
		middleware.RateLimit(1000, 100),
	)

	result, err := invoke(context.Background(), "greet", "World")
	if err != nil {
		t.Fatal(err)
	}
	if result != "Hello, World!" {
		t.Fatalf("greet = %v, want Hello, World!", result)
	}
}

func TestMiddlewareDoesNotRetryServerFailures(t *testing.T) {
	srv, err := rpctest.NewServer()
	if err != nil {
		t.Fatal(err)
	}
	defer srv.Close()

	c := client.NewAddr(srv.Addr())
	if err := c.Connect(); err != nil {
		t.Fatal(err)
	}
	defer c.Disconnect()

	invoke := middleware.Wrap(c, middleware.Retry(3, 10*time.Millisecond, c.Connect))

	_, err = invoke(context.Background(), "divide", 1, 0)
	var execErr *rpcerror.ExecutionError
	if !errors.As(err, &execErr) {
		t.Fatalf("want ExecutionError, got %v", err)
	}
}

// A sequence of mixed successes and failures over one connection, checking
// that per-call failures never poison the next call.
func TestCallSequence(t *testing.T) {
	srv, err := rpctest.NewServer()
	if err != nil {
		t.Fatal(err)
	}
	defer srv.Close()

	c := client.NewAddr(srv.Addr())
	if err := c.Connect(); err != nil {
		t.Fatal(err)
	}
	defer c.Disconnect()

	if _, err := c.Call("nonexistent"); err == nil {
		t.Fatal("expected function-not-found failure")
	}
	if _, err := c.Call("add", "a", "b"); err == nil {
		t.Fatal("expected execution failure")
	}

	result, err := c.Call("sum_array", []int{1, 2, 3, 4, 5, -1})
	if err != nil {
		t.Fatal(err)
	}
	if result.(float64) != 14 {
		t.Fatalf("sum_array = %v, want 14", result)
	}

	result, err = c.Call("process_person", map[string]any{
		"name": "Alice", "age": 30, "is_student": false,
	})
	if err != nil {
		t.Fatal(err)
	}
	if result == "" {
		t.Fatal("process_person returned empty result")
	}
}
