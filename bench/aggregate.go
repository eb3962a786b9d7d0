package bench

import (
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/aclements/go-moremath/stats"
)

// Aggregate selects how per-trial samples collapse into one duration.
type Aggregate string

const (
	// AggregateMin keeps the fastest trial, the one least disturbed by noise.
	AggregateMin Aggregate = "min"
	// AggregateMedian keeps the median trial.
	AggregateMedian Aggregate = "median"
)

// ParseAggregate accepts "min", "median" or the empty string (min).
func ParseAggregate(s string) (Aggregate, error) {
	switch Aggregate(s) {
	case "", AggregateMin:
		return AggregateMin, nil
	case AggregateMedian:
		return AggregateMedian, nil
	default:
		return "", fmt.Errorf("unknown aggregate %q (want min or median)", s)
	}
}

func sample(samples []time.Duration) stats.Sample {
	xs := make([]float64, len(samples))
	for i, d := range samples {
		xs[i] = float64(d)
	}
	slices.Sort(xs)
	return stats.Sample{Xs: xs, Sorted: true}
}

// Combine reduces samples with a.
func (a Aggregate) Combine(samples []time.Duration) time.Duration {
	switch len(samples) {
	case 0:
		return 0
	case 1:
		return samples[0]
	}
	s := sample(samples)
	if a == AggregateMedian {
		return time.Duration(math.Round(s.Quantile(0.5)))
	}
	lo, _ := s.Bounds()
	return time.Duration(lo)
}

// Spread is the standard deviation of samples, zero for fewer than two.
func Spread(samples []time.Duration) time.Duration {
	if len(samples) < 2 {
		return 0
	}
	return time.Duration(sample(samples).StdDev())
}
