package framing

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplit(t *testing.T) {
	input := []byte("0123456789")
	require.Equal(t, [][]byte{input}, Split(input, 0))
	require.Equal(t, [][]byte{input}, Split(input, 64))

	chunks := Split(input, 4)
	require.Len(t, chunks, 3)
	require.Equal(t, []byte("89"), chunks[2])
	require.Equal(t, 4, cap(chunks[0]))
}

func TestFrameRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteFrame(16384, []byte("first")))
	require.NoError(t, w.WriteFrame(3, []byte("second-frame")))
	require.NoError(t, w.Flush())
	require.Equal(t, 2*HeaderSize+len("first")+len("second-frame"), buf.Len())

	r := NewReader(&buf)
	h, payload, err := r.Next()
	require.NoError(t, err)
	require.Equal(t, Header{UncompressedLen: 16384, CompressedLen: 5}, h)
	require.Equal(t, "first", string(payload))

	h, payload, err = r.Next()
	require.NoError(t, err)
	require.Equal(t, 3, h.UncompressedLen)
	require.Equal(t, "second-frame", string(payload))

	_, _, err = r.Next()
	require.ErrorIs(t, err, io.EOF)
}

func TestTruncatedFrame(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteFrame(10, []byte("payload")))
	require.NoError(t, w.Flush())

	r := NewReader(bytes.NewReader(buf.Bytes()[:buf.Len()-2]))
	_, _, err := r.Next()
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestCorruptHeaderLengths(t *testing.T) {
	hdr := func(uncompressed, compressed uint32) []byte {
		b := binary.LittleEndian.AppendUint32(nil, uncompressed)
		return binary.LittleEndian.AppendUint32(b, compressed)
	}

	r := NewReader(bytes.NewReader(append(hdr(10, math.MaxUint32), "abc"...)))
	_, _, err := r.Next()
	require.ErrorIs(t, err, ErrFrameTooLarge)

	r = NewReader(bytes.NewReader(append(hdr(math.MaxUint32, 3), "abc"...)))
	_, _, err = r.Next()
	require.ErrorIs(t, err, ErrFrameTooLarge)

	r = NewReader(bytes.NewReader(append(hdr(10, MaxFrameLen), "abc"...)))
	_, _, err = r.Next()
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)
	require.LessOrEqual(t, cap(r.payload), 2*readStep, "payload allocation follows the bytes actually present")
}

func TestLargeFrameReadInSteps(t *testing.T) {
	payload := bytes.Repeat([]byte{0x5a}, 3*readStep+17)
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteFrame(len(payload)*2, payload))
	require.NoError(t, w.Flush())

	h, got, err := NewReader(&buf).Next()
	require.NoError(t, err)
	require.Equal(t, len(payload), h.CompressedLen)
	require.Equal(t, payload, got)
}

func TestWriteFrameTooLarge(t *testing.T) {
	w := NewWriter(io.Discard)
	require.ErrorIs(t, w.WriteFrame(MaxFrameLen+1, []byte("x")), ErrFrameTooLarge)
}
