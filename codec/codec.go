// Package codec abstracts the serialization of RPC envelopes.
//
// The wire body of this protocol is always UTF-8 JSON, so JSONCodec is the
// only implementation; the interface exists so the call engine does not
// depend on encoding/json directly.
package codec

// Codec converts between in-memory values and their wire bytes.
type Codec interface {
	Encode(v any) ([]byte, error)
	Decode(data []byte, v any) error
}
