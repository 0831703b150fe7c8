// Package protocol implements the length-prefixed frame format for framed-rpc.
//
// It solves TCP's sticky packet problem with a minimal header: a 4-byte
// big-endian unsigned length followed by exactly that many bytes of UTF-8
// JSON. The receiver reads the length first, then reads exactly that many
// body bytes.
//
// Frame format:
//
//	0         4
//	┌─────────┬───────────────┐
//	│ length  │    body ...    │
//	│ uint32  │ length bytes   │
//	└─────────┴───────────────┘
//
// There is no magic number, version, checksum, or sequence id — the wire
// carries nothing but the length and the JSON body.
package protocol

import (
	"encoding/binary"
	"io"
)

// LengthSize is the size of the length prefix in bytes.
const LengthSize = 4

// WriteFrame writes one complete frame (length prefix + body) to w.
// The prefix and body are written as a single buffered write so a frame is
// never split across two Write calls by this layer. WriteFrame does not
// return until the transport has accepted every byte or an error occurs.
//
// The caller must hold a write lock if multiple goroutines share the same
// writer, otherwise frames will interleave and corrupt the stream.
func WriteFrame(w io.Writer, body []byte) error {
	buf := make([]byte, LengthSize+len(body))
	binary.BigEndian.PutUint32(buf[:LengthSize], uint32(len(body)))
	copy(buf[LengthSize:], body)

	// io.Writer contracts that Write returns an error when n < len(buf),
	// so one call covers the partial-write case.
	_, err := w.Write(buf)
	return err
}

// ReadFrame reads one complete frame from r and returns its body.
// Uses io.ReadFull for both the prefix and the body, so short reads from
// the transport are retried until the exact byte count is satisfied. A peer
// close mid-frame surfaces as io.EOF or io.ErrUnexpectedEOF — never as a
// truncated body.
//
// The declared length is trusted as-is: the protocol defines no maximum
// frame size, so a hostile peer can make the receiver allocate up to 4 GiB.
// This matches the deployed servers; capping the length here would be a
// protocol deviation.
func ReadFrame(r io.Reader) ([]byte, error) {
	prefix := make([]byte, LengthSize)
	if _, err := io.ReadFull(r, prefix); err != nil {
		return nil, err
	}

	bodyLen := binary.BigEndian.Uint32(prefix)
	body := make([]byte, bodyLen)
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, err
	}
	return body, nil
}
