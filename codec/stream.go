package codec

import (
	"bytes"
	"errors"
	"fmt"
	"io"
)

// readExact drains r into dst and fails unless r produces exactly len(dst) bytes.
func readExact(r io.Reader, dst []byte) ([]byte, error) {
	n, err := io.ReadFull(r, dst)
	if err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: have %d, want %d", ErrSizeMismatch, n, len(dst))
		}
		return nil, err
	}
	var one [1]byte
	extra, err := r.Read(one[:])
	if extra > 0 {
		return nil, fmt.Errorf("%w: output exceeds %d bytes", ErrSizeMismatch, len(dst))
	}
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return dst, nil
}

// writeStream runs a streaming writer over src, collecting its output in dst's storage.
func writeStream(dst, src []byte, open func(w io.Writer) (io.WriteCloser, error)) ([]byte, error) {
	buf := bytes.NewBuffer(dst[:0])
	w, err := open(buf)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(src); err != nil {
		w.Close()
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// resettableWriter is a streaming compressor that can be pointed at a new
// destination without reallocating its state.
type resettableWriter interface {
	io.WriteCloser
	Reset(w io.Writer)
}

// resetStream is writeStream for a compressor built once by NewEncoder.
func resetStream(dst, src []byte, w resettableWriter) ([]byte, error) {
	buf := bytes.NewBuffer(dst[:0])
	w.Reset(buf)
	if _, err := w.Write(src); err != nil {
		w.Close()
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
