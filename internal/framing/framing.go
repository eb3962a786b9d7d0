// Package framing implements the chunk container written by the compress command:
// a sequence of frames, each a little-endian uint32 uncompressed length, a
// little-endian uint32 compressed length and the compressed payload.
package framing

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"slices"
)

const (
	// HeaderSize is the per-frame overhead.
	HeaderSize = 8
	// MaxFrameLen bounds both lengths of a frame, written or read.
	MaxFrameLen = 1 << 30

	// payloads are read in steps of this size so a corrupt length fails on
	// the missing bytes before it is allocated in full.
	readStep = 1 << 20
)

// ErrFrameTooLarge is returned for lengths above MaxFrameLen.
var ErrFrameTooLarge = fmt.Errorf("frame length exceeds %d bytes", MaxFrameLen)

// Header describes one frame.
type Header struct {
	UncompressedLen int
	CompressedLen   int
}

// Split cuts input into chunks of at most size bytes. Size <= 0 yields one chunk.
func Split(input []byte, size int) [][]byte {
	if size <= 0 || size >= len(input) {
		return [][]byte{input}
	}
	chunks := make([][]byte, 0, (len(input)+size-1)/size)
	for off := 0; off < len(input); off += size {
		end := min(off+size, len(input))
		chunks = append(chunks, input[off:end:end])
	}
	return chunks
}

// Writer emits frames.
type Writer struct {
	w   *bufio.Writer
	hdr [HeaderSize]byte
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// WriteFrame writes one frame holding payload, the compressed form of uncompressedLen bytes.
func (w *Writer) WriteFrame(uncompressedLen int, payload []byte) error {
	if uncompressedLen > MaxFrameLen || len(payload) > MaxFrameLen {
		return ErrFrameTooLarge
	}
	binary.LittleEndian.PutUint32(w.hdr[0:4], uint32(uncompressedLen))
	binary.LittleEndian.PutUint32(w.hdr[4:8], uint32(len(payload)))
	if _, err := w.w.Write(w.hdr[:]); err != nil {
		return err
	}
	_, err := w.w.Write(payload)
	return err
}

func (w *Writer) Flush() error { return w.w.Flush() }

// Reader consumes frames.
type Reader struct {
	r       *bufio.Reader
	hdr     [HeaderSize]byte
	payload []byte
}

func NewReader(r io.Reader) *Reader {
	return &Reader{r: bufio.NewReaderSize(r, 1<<20)}
}

// Next returns the next frame. The payload is valid until the following call.
// It returns io.EOF after the last frame.
func (r *Reader) Next() (Header, []byte, error) {
	if _, err := io.ReadFull(r.r, r.hdr[:]); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return Header{}, nil, fmt.Errorf("truncated frame header: %w", err)
		}
		return Header{}, nil, err
	}
	h := Header{
		UncompressedLen: int(binary.LittleEndian.Uint32(r.hdr[0:4])),
		CompressedLen:   int(binary.LittleEndian.Uint32(r.hdr[4:8])),
	}
	if h.UncompressedLen > MaxFrameLen || h.CompressedLen > MaxFrameLen {
		return Header{}, nil, fmt.Errorf("%w: header %d => %d", ErrFrameTooLarge, h.UncompressedLen, h.CompressedLen)
	}
	r.payload = r.payload[:0]
	for len(r.payload) < h.CompressedLen {
		off := len(r.payload)
		n := min(h.CompressedLen-off, readStep)
		r.payload = slices.Grow(r.payload, n)[:off+n]
		if _, err := io.ReadFull(r.r, r.payload[off:]); err != nil {
			if errors.Is(err, io.EOF) {
				err = io.ErrUnexpectedEOF
			}
			return Header{}, nil, fmt.Errorf("truncated frame payload: %w", err)
		}
	}
	return h, r.payload, nil
}
