// Package client implements the framed-rpc client stub.
//
// A Client owns exactly one TCP connection to a fixed server endpoint and
// drives the half-duplex request/response exchange: marshal the request,
// frame and send it, read one response frame, unmarshal it, and map the
// outcome onto the rpcerror taxonomy.
//
// The protocol has no request ids, so there is no pipelining and no
// multiplexing — one call is in flight at a time. A Client is not meant to
// be shared between goroutines; an internal mutex serializes the wire
// exchange so accidental concurrent calls are queued instead of corrupting
// the frame stream, but callers should treat the instance as single-owner.
package client

import (
	"context"
	"errors"
	"net"
	"strconv"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"framed-rpc/codec"
	"framed-rpc/message"
	"framed-rpc/protocol"
	"framed-rpc/rpcerror"
)

// Client is a stub for invoking named functions on a framed-rpc server.
// The zero state is Disconnected; Connect must succeed before Call.
type Client struct {
	addr string

	mu        sync.Mutex // guards conn, connected, and the wire exchange
	conn      net.Conn
	connected bool

	codec       codec.Codec
	logger      zerolog.Logger
	dialTimeout time.Duration
	callTimeout time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the structured logger used for connection lifecycle and
// call diagnostics. The default discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithDialTimeout bounds how long Connect waits for the TCP handshake.
// Zero means no limit.
func WithDialTimeout(d time.Duration) Option {
	return func(c *Client) { c.dialTimeout = d }
}

// WithCallTimeout sets a deadline applied to the socket for each call's
// send+receive exchange. The protocol itself defines no timeout; zero keeps
// the observed blocking behavior. A context deadline passed to CallContext
// takes precedence.
func WithCallTimeout(d time.Duration) Option {
	return func(c *Client) { c.callTimeout = d }
}

// New creates a client for the server at (host, port). No connection is
// opened until Connect.
func New(host string, port int, opts ...Option) *Client {
	return NewAddr(net.JoinHostPort(host, strconv.Itoa(port)), opts...)
}

// NewAddr is New for a pre-joined "host:port" address, as returned by
// registry discovery.
func NewAddr(addr string, opts ...Option) *Client {
	c := &Client{
		addr:   addr,
		codec:  &codec.JSONCodec{},
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Addr returns the server endpoint this client targets.
func (c *Client) Addr() string { return c.addr }

// Connected reports whether the client currently holds an open connection.
func (c *Client) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected
}

// Connect opens the TCP connection to the server. It is idempotent: if the
// client is already Connected it returns immediately with no effect. On
// failure the client stays Disconnected and a *rpcerror.ConnectionError
// with Op "connect" is returned.
func (c *Client) Connect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.connected {
		return nil
	}

	dialer := net.Dialer{Timeout: c.dialTimeout}
	conn, err := dialer.Dial("tcp", c.addr)
	if err != nil {
		c.logger.Debug().Str("addr", c.addr).Err(err).Msg("connect failed")
		return &rpcerror.ConnectionError{Op: "connect", Err: err}
	}

	c.conn = conn
	c.connected = true
	c.logger.Debug().Str("addr", c.addr).Msg("connected")
	return nil
}

// Disconnect closes the connection. It is idempotent and never fails: any
// error during shutdown or close is swallowed, and the client is
// unconditionally Disconnected afterward.
func (c *Client) Disconnect() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.disconnectLocked()
}

// Close makes a Client usable with defer in the io.Closer shape. The error
// is always nil.
func (c *Client) Close() error {
	c.Disconnect()
	return nil
}

func (c *Client) disconnectLocked() {
	if !c.connected {
		return
	}
	// Orderly shutdown in both directions, best effort. CloseRead/CloseWrite
	// can fail when the peer already reset the connection; the socket is
	// released either way.
	if tcp, ok := c.conn.(*net.TCPConn); ok {
		tcp.CloseRead()
		tcp.CloseWrite()
	}
	c.conn.Close()
	c.conn = nil
	c.connected = false
	c.logger.Debug().Str("addr", c.addr).Msg("disconnected")
}

// faultLocked implements the uniform I/O fault handling: force the
// connection to Disconnected, then surface a single ConnectionError naming
// the phase. The caller must hold c.mu.
func (c *Client) faultLocked(op string, err error) error {
	c.logger.Warn().Str("op", op).Err(err).Msg("socket fault, disconnecting")
	c.disconnectLocked()
	return &rpcerror.ConnectionError{Op: op, Err: err}
}

// WithConnection runs fn with an open connection, guaranteeing the socket
// is released on every exit path. The connection is closed even when fn
// returns an error or panics.
func (c *Client) WithConnection(fn func(*Client) error) error {
	if err := c.Connect(); err != nil {
		return err
	}
	defer c.Disconnect()
	return fn(c)
}

// Call invokes the named remote function and returns its decoded result.
// A nil result means the function returned nothing (or an explicit null).
//
// Failure modes, all distinct types in package rpcerror:
//   - *ConnectionError: not connected, or a socket fault during the
//     exchange; the client is Disconnected when this is returned.
//   - *MarshalingError: an argument has no JSON representation; raised
//     before any bytes are sent.
//   - *ProtocolError: the response is not valid UTF-8 JSON; connection
//     state is unchanged.
//   - *FunctionNotFoundError, *ExecutionError, *ServerError: the server
//     reported failure; classified from its message text.
//
// Call never retries; retry policy belongs to the caller (see
// middleware.Retry).
func (c *Client) Call(function string, args ...any) (any, error) {
	return c.CallContext(context.Background(), function, args...)
}

// CallContext is Call with a context. A context deadline is applied to the
// underlying socket for the whole exchange, overriding any configured call
// timeout. Cancellation without a deadline is honored only between calls —
// the protocol has no way to abandon an in-flight exchange and keep the
// connection usable.
func (c *Client) CallContext(ctx context.Context, function string, args ...any) (any, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.connected {
		return nil, &rpcerror.ConnectionError{Op: "not connected"}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Marshal before touching the socket so a bad argument costs no I/O.
	req := message.Request{Function: function, Args: args}
	if req.Args == nil {
		req.Args = []any{} // zero-argument calls still send "args":[]
	}
	body, err := c.codec.Encode(&req)
	if err != nil {
		return nil, &rpcerror.MarshalingError{Err: err}
	}

	if err := c.setExchangeDeadline(ctx); err != nil {
		return nil, c.faultLocked("send", err)
	}

	start := time.Now()
	if err := protocol.WriteFrame(c.conn, body); err != nil {
		return nil, c.faultLocked("send", err)
	}

	respBody, err := protocol.ReadFrame(c.conn)
	if err != nil {
		return nil, c.faultLocked("recv", err)
	}
	c.logger.Debug().
		Str("function", function).
		Int("request_bytes", len(body)).
		Int("response_bytes", len(respBody)).
		Dur("elapsed", time.Since(start)).
		Msg("call round trip")

	return c.interpret(respBody)
}

// setExchangeDeadline arms the socket deadline for one send+receive
// exchange. Context deadline wins over the configured call timeout; with
// neither, any previous deadline is cleared.
func (c *Client) setExchangeDeadline(ctx context.Context) error {
	deadline := time.Time{}
	if d, ok := ctx.Deadline(); ok {
		deadline = d
	} else if c.callTimeout > 0 {
		deadline = time.Now().Add(c.callTimeout)
	}
	return c.conn.SetDeadline(deadline)
}

// interpret decodes a response frame body and maps it to (result, error).
func (c *Client) interpret(body []byte) (any, error) {
	if !utf8.Valid(body) {
		return nil, &rpcerror.ProtocolError{Err: errors.New("response body is not valid UTF-8")}
	}

	var resp message.Response
	if err := c.codec.Decode(body, &resp); err != nil {
		return nil, &rpcerror.ProtocolError{Err: err}
	}

	if resp.Status != message.StatusSuccess {
		return nil, rpcerror.ClassifyServerMessage(resp.Message)
	}

	// Absent result means the function returned nothing. A literal JSON
	// null result decodes to nil as well; both are "no value" to the
	// caller, message.Response keeps them distinguishable on the wire.
	if !resp.HasResult() {
		return nil, nil
	}
	var result any
	if err := c.codec.Decode(resp.Result, &result); err != nil {
		return nil, &rpcerror.ProtocolError{Err: err}
	}
	return result, nil
}
