package rpcerror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyServerMessage(t *testing.T) {
	tests := []struct {
		message string
		want    any
	}{
		{"Function not found: foo", &FunctionNotFoundError{}},
		{"Execution error: bad arg", &ExecutionError{}},
		{"Execution error: division by zero", &ExecutionError{}},
		{"something else entirely", &ServerError{}},
		{"", &ServerError{}},
		// Substring matching is the protocol's only discriminator, so a
		// marker anywhere in the text wins.
		{"note: Function not found happened", &FunctionNotFoundError{}},
	}

	for _, tt := range tests {
		err := ClassifyServerMessage(tt.message)
		require.Error(t, err, tt.message)
		assert.IsType(t, tt.want, err, "message %q", tt.message)
	}
}

func TestClassifyDefaultsToUnknownError(t *testing.T) {
	err := ClassifyServerMessage("")
	var srvErr *ServerError
	require.ErrorAs(t, err, &srvErr)
	assert.Equal(t, "Unknown error", srvErr.Message)
}

func TestClassifiedMessagePreserved(t *testing.T) {
	err := ClassifyServerMessage("Function not found: frobnicate")
	var notFound *FunctionNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "Function not found: frobnicate", notFound.Message)
}

func TestConnectionErrorUnwrap(t *testing.T) {
	underlying := errors.New("connection refused")
	err := fmt.Errorf("dial: %w", &ConnectionError{Op: "connect", Err: underlying})

	var connErr *ConnectionError
	require.ErrorAs(t, err, &connErr)
	assert.Equal(t, "connect", connErr.Op)
	assert.ErrorIs(t, err, underlying)
}

func TestErrorStrings(t *testing.T) {
	assert.Equal(t, "rpc: not connected", (&ConnectionError{Op: "not connected"}).Error())
	assert.Contains(t, (&ConnectionError{Op: "send", Err: errors.New("broken pipe")}).Error(), "send")
	assert.Contains(t, (&MarshalingError{Err: errors.New("chan int")}).Error(), "JSON encoding failed")
	assert.Contains(t, (&ProtocolError{Err: errors.New("bad json")}).Error(), "invalid response")
}
