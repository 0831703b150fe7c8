package rpctest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"framed-rpc/message"
)

func newDispatcher(t *testing.T) *Server {
	t.Helper()
	srv, err := NewServer()
	require.NoError(t, err)
	t.Cleanup(srv.Close)
	return srv
}

func TestDispatchInvalidJSON(t *testing.T) {
	srv := newDispatcher(t)
	resp := srv.dispatch([]byte(`{"function": nope`))
	assert.Equal(t, message.StatusError, resp.Status)
	assert.Contains(t, resp.Message, "Invalid JSON")
}

func TestDispatchMissingFields(t *testing.T) {
	srv := newDispatcher(t)
	for _, body := range []string{
		`{}`,
		`{"function":"add"}`,
		`{"args":[1,2]}`,
	} {
		resp := srv.dispatch([]byte(body))
		assert.Equal(t, message.StatusError, resp.Status, body)
		assert.Equal(t, "Missing 'function' or 'args' field", resp.Message, body)
	}
}

func TestDispatchUnknownFunction(t *testing.T) {
	srv := newDispatcher(t)
	resp := srv.dispatch([]byte(`{"function":"frobnicate","args":[]}`))
	assert.Equal(t, message.StatusError, resp.Status)
	assert.Equal(t, "Function not found: frobnicate", resp.Message)
}

func TestDispatchExecutionError(t *testing.T) {
	srv := newDispatcher(t)
	resp := srv.dispatch([]byte(`{"function":"divide","args":[10,0]}`))
	assert.Equal(t, message.StatusError, resp.Status)
	assert.Contains(t, resp.Message, "Execution error: ")
	assert.Contains(t, resp.Message, "division by zero")
}

func TestDispatchSuccess(t *testing.T) {
	srv := newDispatcher(t)
	resp := srv.dispatch([]byte(`{"function":"add","args":[10,5]}`))
	require.Equal(t, message.StatusSuccess, resp.Status)
	assert.JSONEq(t, `15`, string(resp.Result))
}

// no_return must omit the result field entirely, not send null.
func TestDispatchVoidOmitsResult(t *testing.T) {
	srv := newDispatcher(t)
	resp := srv.dispatch([]byte(`{"function":"no_return","args":[]}`))
	require.Equal(t, message.StatusSuccess, resp.Status)
	assert.False(t, resp.HasResult())
}

func TestRegisterCustomFunction(t *testing.T) {
	srv := newDispatcher(t)
	srv.Register("twice", func(args []any) (any, error) {
		return args[0].(float64) * 2, nil
	})
	resp := srv.dispatch([]byte(`{"function":"twice","args":[21]}`))
	require.Equal(t, message.StatusSuccess, resp.Status)
	assert.JSONEq(t, `42`, string(resp.Result))
}
