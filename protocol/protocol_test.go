package protocol

import (
	"bytes"
	"io"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFrameLayout(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteFrame(&buf, []byte("hello")))

	// 4-byte big-endian length, then the body verbatim.
	assert.Equal(t, []byte{0x00, 0x00, 0x00, 0x05, 'h', 'e', 'l', 'l', 'o'}, buf.Bytes())
}

func TestRoundTrip(t *testing.T) {
	payloads := [][]byte{
		{},
		[]byte("x"),
		[]byte(`{"function":"add","args":[10,5]}`),
		bytes.Repeat([]byte{0xab}, 1<<20),
	}

	for _, payload := range payloads {
		var buf bytes.Buffer
		require.NoError(t, WriteFrame(&buf, payload))

		got, err := ReadFrame(&buf)
		require.NoError(t, err)
		assert.Equal(t, payload, got)
	}
}

// The transport may deliver arbitrarily small chunks; ReadFrame must loop
// until the exact count is satisfied.
func TestReadFrameOneBytePerRead(t *testing.T) {
	payload := []byte(`{"status":"success","result":15}`)
	var buf bytes.Buffer
	require.NoError(t, WriteFrame(&buf, payload))

	got, err := ReadFrame(iotest.OneByteReader(&buf))
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestReadFrameEmptyBody(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteFrame(&buf, nil))

	got, err := ReadFrame(&buf)
	require.NoError(t, err)
	assert.Empty(t, got)
}

// A peer close mid-frame must surface as an error, never a short body.
func TestReadFrameTruncated(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteFrame(&buf, []byte("hello world")))

	t.Run("inside body", func(t *testing.T) {
		r := bytes.NewReader(buf.Bytes()[:LengthSize+3])
		_, err := ReadFrame(r)
		assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	})

	t.Run("inside length prefix", func(t *testing.T) {
		r := bytes.NewReader(buf.Bytes()[:2])
		_, err := ReadFrame(r)
		assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	})

	t.Run("before any byte", func(t *testing.T) {
		_, err := ReadFrame(bytes.NewReader(nil))
		assert.ErrorIs(t, err, io.EOF)
	})
}
