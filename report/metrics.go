// Package report turns benchmark results into ratio and throughput metrics and
// renders them as text lines, go test benchmark lines or report files.
package report

import (
	"math"
	"time"

	"github.com/delaneyj/compbench/bench"
)

// Metrics is the derived view of a Result.
type Metrics struct {
	// RatioPercent is compressed size as a percentage of the original, one decimal.
	RatioPercent float64
	// InverseRatio is original size over compressed size.
	InverseRatio float64
	// CompressionMBps is original megabytes (10^6) consumed per second of compression.
	CompressionMBps float64
	// DecompressionMBps is original megabytes produced per second of decompression.
	DecompressionMBps float64
}

// Compute derives metrics from r.
func Compute(r bench.Result) Metrics {
	m := Metrics{
		RatioPercent:      RatioPercent(r.CompressedSize, r.OriginalSize),
		CompressionMBps:   Throughput(r.OriginalSize, r.CompressionDuration),
		DecompressionMBps: Throughput(r.OriginalSize, r.DecompressionDuration),
	}
	if r.CompressedSize > 0 {
		m.InverseRatio = float64(r.OriginalSize) / float64(r.CompressedSize)
	}
	return m
}

// RatioPercent returns 100 * compressed / original rounded to one decimal.
func RatioPercent(compressed, original uint64) float64 {
	if original == 0 {
		return 0
	}
	return math.Round(1000*float64(compressed)/float64(original)) / 10
}

// Throughput returns size in megabytes per second of d. A zero duration
// (below clock resolution) yields +Inf.
func Throughput(size uint64, d time.Duration) float64 {
	if d <= 0 {
		return math.Inf(1)
	}
	return float64(size) / 1e6 / d.Seconds()
}

func round(v float64, places int) float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0
	}
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
