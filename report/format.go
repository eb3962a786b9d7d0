package report

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"

	"github.com/delaneyj/compbench/bench"
)

// Line renders the standard one-line summary of a result.
func Line(r bench.Result) string {
	m := Compute(r)
	return fmt.Sprintf("%s -c %d: %d => %d (%.1f %%), compression: %.1f MB/s, decompression: %.1f MB/s",
		r.Spec.Algorithm, r.Spec.Level, r.OriginalSize, r.CompressedSize,
		m.RatioPercent, m.CompressionMBps, m.DecompressionMBps)
}

// HumanLine renders a column-aligned summary with human-readable sizes.
func HumanLine(r bench.Result) string {
	m := Compute(r)
	return fmt.Sprintf("%-10s lev. %3d:    %8s => %8s (%5.1f%%, %5.2fx),    compr.: %7.1f MB/s, decompr.: %7.1f MB/s",
		r.Spec.Algorithm, r.Spec.Level,
		humanize.Bytes(r.OriginalSize), humanize.Bytes(r.CompressedSize),
		m.RatioPercent, m.InverseRatio, m.CompressionMBps, m.DecompressionMBps)
}

// FailureLine renders the diagnostic printed in place of a failed result's line.
func FailureLine(o bench.Outcome) string {
	if bench.IsMismatch(o.Err) {
		return fmt.Sprintf("%s -c %d: ROUND-TRIP MISMATCH: %v", o.Spec.Algorithm, o.Spec.Level, o.Err)
	}
	return fmt.Sprintf("%s -c %d: FAILED: %v", o.Spec.Algorithm, o.Spec.Level, o.Err)
}

// Formatter writes one line per outcome as the runner emits them.
type Formatter struct {
	w       io.Writer
	human   bool
	goBench bool
	err     error
}

// FormatterOption configures a Formatter.
type FormatterOption func(*Formatter)

// Human switches result lines to HumanLine.
func Human() FormatterOption { return func(f *Formatter) { f.human = true } }

// GoBench switches result lines to go test benchmark format.
func GoBench() FormatterOption { return func(f *Formatter) { f.goBench = true } }

func NewFormatter(w io.Writer, opts ...FormatterOption) *Formatter {
	f := &Formatter{w: w}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Write renders o. Failed configurations always get a FailureLine, whatever
// the output style, so they are never mistaken for measurements.
func (f *Formatter) Write(o bench.Outcome) error {
	var err error
	switch {
	case !o.OK():
		_, err = fmt.Fprintln(f.w, FailureLine(o))
	case f.goBench:
		err = GoBenchLines(f.w, o.Result)
	case f.human:
		_, err = fmt.Fprintln(f.w, HumanLine(o.Result))
	default:
		_, err = fmt.Fprintln(f.w, Line(o.Result))
	}
	if err != nil && f.err == nil {
		f.err = err
	}
	return err
}

// Err returns the first write error.
func (f *Formatter) Err() error { return f.err }
