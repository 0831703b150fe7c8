package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"framed-rpc/message"
)

func TestJSONCodecRequest(t *testing.T) {
	cdc := &JSONCodec{}

	data, err := cdc.Encode(&message.Request{Function: "add", Args: []any{10, 5}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"function":"add","args":[10,5]}`, string(data))

	var req message.Request
	require.NoError(t, cdc.Decode(data, &req))
	assert.Equal(t, "add", req.Function)
	assert.Len(t, req.Args, 2)
}

// Values without a JSON representation must fail at encode time; the call
// engine turns this into a marshaling failure before any network I/O.
func TestJSONCodecUnrepresentableValue(t *testing.T) {
	cdc := &JSONCodec{}
	_, err := cdc.Encode(&message.Request{Function: "f", Args: []any{make(chan int)}})
	assert.Error(t, err)
}
