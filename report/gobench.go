package report

import (
	"fmt"
	"io"
	"testing"

	"github.com/delaneyj/compbench/bench"
)

// GoBenchName is the benchmark name of one phase of a result, shaped so that
// benchstat can group by algorithm and level.
func GoBenchName(phase string, r bench.Result) string {
	return fmt.Sprintf("Benchmark%s/%s/level=%d", phase, r.Spec.Algorithm, r.Spec.Level)
}

// GoBenchLines writes the compression and decompression phases of r in the
// format produced by go test -bench. Both phases report the original size as
// bytes processed, so MB/s matches Metrics.
func GoBenchLines(w io.Writer, r bench.Result) error {
	phases := []struct {
		name string
		res  testing.BenchmarkResult
	}{
		{"Compress", testing.BenchmarkResult{N: 1, T: r.CompressionDuration, Bytes: int64(r.OriginalSize)}},
		{"Decompress", testing.BenchmarkResult{N: 1, T: r.DecompressionDuration, Bytes: int64(r.OriginalSize)}},
	}
	compress, decompress := GoBenchName("Compress", r), GoBenchName("Decompress", r)
	maxLen := max(len(compress), len(decompress))
	for _, p := range phases {
		if _, err := fmt.Fprintf(w, "%-*s\t%s\n", maxLen, GoBenchName(p.name, r), p.res.String()); err != nil {
			return err
		}
	}
	return nil
}
