package message

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestWireShape(t *testing.T) {
	req := Request{Function: "add", Args: []any{10, 5}}
	data, err := json.Marshal(&req)
	require.NoError(t, err)
	assert.JSONEq(t, `{"function":"add","args":[10,5]}`, string(data))
}

// Absent and null results serialize differently and must stay
// distinguishable after decoding: absent means "no return value", null is a
// value the function chose to return.
func TestResponseAbsentVersusNullResult(t *testing.T) {
	var absent Response
	require.NoError(t, json.Unmarshal([]byte(`{"status":"success"}`), &absent))
	assert.False(t, absent.HasResult())

	var null Response
	require.NoError(t, json.Unmarshal([]byte(`{"status":"success","result":null}`), &null))
	assert.True(t, null.HasResult())
	assert.Equal(t, json.RawMessage("null"), null.Result)
}

func TestResponseError(t *testing.T) {
	var resp Response
	require.NoError(t, json.Unmarshal([]byte(`{"status":"error","message":"Execution error: bad arg"}`), &resp))
	assert.Equal(t, StatusError, resp.Status)
	assert.Equal(t, "Execution error: bad arg", resp.Message)
	assert.False(t, resp.HasResult())
}
