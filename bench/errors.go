package bench

import (
	"errors"
	"fmt"

	"github.com/delaneyj/compbench/codec"
	"github.com/delaneyj/compbench/registry"
)

var (
	// ErrInputUnavailable wraps failures to load the input. Nothing is benchmarked.
	ErrInputUnavailable = errors.New("input unavailable")
	// ErrEmptyInput rejects zero-length inputs; ratios and throughputs are undefined for them.
	ErrEmptyInput = errors.New("input is empty")
	// ErrRoundTripMismatch marks decompressed output that differs from the input.
	ErrRoundTripMismatch = errors.New("round-trip mismatch")
	// ErrPinUnsupported is returned where CPU pinning is not implemented.
	ErrPinUnsupported = errors.New("cpu pinning is not supported on this platform")
)

// MismatchError reports the first byte where decompressed output diverged.
// Offset is len(input) when the output is a strict prefix or extension of it.
type MismatchError struct {
	Spec     registry.AlgorithmSpec
	Offset   int
	Expected int
	Got      int
}

func (e *MismatchError) Error() string {
	if e.Got < 0 {
		return fmt.Sprintf("%s: %v: output length differs at offset %d", e.Spec.Key(), ErrRoundTripMismatch, e.Offset)
	}
	return fmt.Sprintf("%s: %v at offset %d: expected 0x%02x, got 0x%02x", e.Spec.Key(), ErrRoundTripMismatch, e.Offset, e.Expected, e.Got)
}

func (e *MismatchError) Is(target error) bool { return target == ErrRoundTripMismatch }

// IsMismatch reports whether err is a round-trip verification failure.
func IsMismatch(err error) bool { return errors.Is(err, ErrRoundTripMismatch) }

// IsCodecFailure reports whether err came from a compression library.
func IsCodecFailure(err error) bool {
	var f *codec.Failure
	return errors.As(err, &f)
}

// Err returns the failures of a run joined into one error, or nil.
func (s Summary) Err() error {
	if len(s.Failures) == 0 {
		return nil
	}
	return fmt.Errorf("%d of %d configurations failed (%d round-trip mismatches): %w",
		s.Failed, s.Done+s.Failed, s.Mismatched, errors.Join(s.Failures...))
}

// asFailure attributes a codec error to spec.
func asFailure(spec registry.AlgorithmSpec, op string, err error) error {
	var f *codec.Failure
	if errors.As(err, &f) {
		return &codec.Failure{Algorithm: spec.Algorithm, Level: spec.Level, Op: f.Op, Err: f.Err}
	}
	return &codec.Failure{Algorithm: spec.Algorithm, Level: spec.Level, Op: op, Err: err}
}
