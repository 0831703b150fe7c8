// Package message defines the JSON envelope exchanged between client and server.
//
// A Request or Response is serialized by the codec layer and wrapped in a
// protocol frame for transmission over TCP.
package message

import "encoding/json"

// Response status values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Request carries one RPC invocation: the remote function name and its
// positional arguments. Arguments may be any JSON-representable value
// (number, bool, null, string, list, string-keyed map).
type Request struct {
	Function string `json:"function"`
	Args     []any  `json:"args"`
}

// Response carries the server's reply to one Request.
//
//   - On success: Status is "success" and Result holds the return value.
//     Result may be omitted entirely, which means the function returned
//     nothing.
//   - On error: Status is anything else and Message holds the server's
//     error text.
type Response struct {
	Status  string          `json:"status"`
	Result  json.RawMessage `json:"result,omitempty"`
	Message string          `json:"message,omitempty"`
}

// HasResult reports whether the response carried a result field at all.
// A JSON null result and an absent result both decode to a nil value at the
// call boundary, but they are distinct on the wire: null yields HasResult
// true with a literal "null" payload, absent yields false.
func (r *Response) HasResult() bool {
	return len(r.Result) > 0
}
