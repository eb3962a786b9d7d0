package codec

import (
	"errors"
	"fmt"
)

// Operations recorded in a Failure.
const (
	OpSetup      = "setup"
	OpCompress   = "compress"
	OpDecompress = "decompress"
)

var (
	// ErrBufferTooSmall reports output that did not fit the destination buffer.
	ErrBufferTooSmall = errors.New("destination buffer too small")
	// ErrSizeMismatch reports decoded output whose length differs from the expected size.
	ErrSizeMismatch = errors.New("decoded size does not match expected size")
	// ErrIncompressible is returned by block codecs that refuse to emit output.
	ErrIncompressible = errors.New("block codec produced no output")
)

// Failure is an error reported by a compression library for one configuration.
type Failure struct {
	Algorithm string
	Level     int
	Op        string
	Err       error
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%s level %d: %s: %v", f.Algorithm, f.Level, f.Op, f.Err)
}

func (f *Failure) Unwrap() error { return f.Err }

func fail(algorithm string, level int, op string, err error) error {
	if err == nil {
		return nil
	}
	var f *Failure
	if errors.As(err, &f) {
		return err
	}
	return &Failure{Algorithm: algorithm, Level: level, Op: op, Err: err}
}

func checkSize(algorithm string, out []byte, want int) ([]byte, error) {
	if len(out) != want {
		return nil, fail(algorithm, 0, OpDecompress, fmt.Errorf("%w: have %d, want %d", ErrSizeMismatch, len(out), want))
	}
	return out, nil
}
