// Package rpcerror defines the failure taxonomy for framed-rpc calls.
//
// Every failure a call can produce is one of six concrete types. Callers
// branch with errors.As:
//
//	var connErr *rpcerror.ConnectionError
//	if errors.As(err, &connErr) {
//	    // connection is now Disconnected; reconnect before retrying
//	}
//
// The taxonomy is flat: connection, marshaling, and protocol errors are
// produced client-side; the remaining three are reported by the server and
// classified from its error message text.
package rpcerror

import (
	"fmt"
	"strings"
)

// ConnectionError reports a socket-level fault. Op names the phase in which
// the fault occurred: "connect", "send", "recv", or "not connected".
// When a ConnectionError is returned the client has already been forced to
// the Disconnected state.
type ConnectionError struct {
	Op  string
	Err error
}

func (e *ConnectionError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("rpc: %s", e.Op)
	}
	return fmt.Sprintf("rpc: socket error during %s: %v", e.Op, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// MarshalingError reports that an argument could not be encoded to JSON.
// It is raised before any bytes are sent, so the call performed no I/O.
type MarshalingError struct {
	Err error
}

func (e *MarshalingError) Error() string {
	return fmt.Sprintf("rpc: JSON encoding failed: %v", e.Err)
}

func (e *MarshalingError) Unwrap() error { return e.Err }

// ProtocolError reports that a response frame was not valid UTF-8 JSON or
// did not match the expected response structure. The connection state is
// left unchanged; the call itself is unrecoverable.
type ProtocolError struct {
	Err error
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("rpc: invalid response: %v", e.Err)
}

func (e *ProtocolError) Unwrap() error { return e.Err }

// FunctionNotFoundError reports that the server does not know the requested
// function name.
type FunctionNotFoundError struct {
	Message string
}

func (e *FunctionNotFoundError) Error() string { return "rpc: " + e.Message }

// ExecutionError reports a fault while the server executed the function
// (wrong argument count, wrong types, runtime failure).
type ExecutionError struct {
	Message string
}

func (e *ExecutionError) Error() string { return "rpc: " + e.Message }

// ServerError is any other error the server reported.
type ServerError struct {
	Message string
}

func (e *ServerError) Error() string { return "rpc: server error: " + e.Message }

// Substrings the server embeds in its error messages. This is the protocol's
// only error-discrimination mechanism: there is no structured code field, so
// the exact matching below must be preserved for interoperability with
// deployed servers, fragile as it is (an unrelated message containing
// "Function not found" would be misclassified).
const (
	functionNotFoundMarker = "Function not found"
	executionErrorMarker   = "Execution error"
)

// ClassifyServerMessage maps a server-reported error message onto the
// taxonomy by substring match. An empty message is treated as the generic
// "Unknown error".
func ClassifyServerMessage(message string) error {
	if message == "" {
		message = "Unknown error"
	}
	switch {
	case strings.Contains(message, functionNotFoundMarker):
		return &FunctionNotFoundError{Message: message}
	case strings.Contains(message, executionErrorMarker):
		return &ExecutionError{Message: message}
	default:
		return &ServerError{Message: message}
	}
}
