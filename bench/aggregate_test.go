package bench

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestAggregateCombine(t *testing.T) {
	samples := []time.Duration{40, 10, 30, 20}
	require.Equal(t, time.Duration(10), AggregateMin.Combine(samples))
	require.Equal(t, time.Duration(25), AggregateMedian.Combine(samples))
	require.Equal(t, time.Duration(7), AggregateMedian.Combine([]time.Duration{7}))
	require.Zero(t, AggregateMin.Combine(nil))
	require.Equal(t, []time.Duration{40, 10, 30, 20}, samples, "samples are not reordered")
}

func TestSpread(t *testing.T) {
	require.Zero(t, Spread([]time.Duration{5}))
	require.Zero(t, Spread([]time.Duration{5, 5, 5}))
	require.Greater(t, Spread([]time.Duration{1, 100}), time.Duration(0))
}

func TestParseAggregate(t *testing.T) {
	a, err := ParseAggregate("")
	require.NoError(t, err)
	require.Equal(t, AggregateMin, a)
	_, err = ParseAggregate("mean")
	require.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	cfg := Config{}
	require.NoError(t, cfg.Validate())
	require.Equal(t, 1, cfg.Trials)
	require.Equal(t, AggregateMin, cfg.Aggregate)

	cpu := -2
	bad := Config{Trials: -1, Warmup: -1, ChunkSize: -5, Aggregate: "avg", PinCPU: &cpu}
	err := bad.Validate()
	require.ErrorContains(t, err, "trials")
	require.ErrorContains(t, err, "warmup")
	require.ErrorContains(t, err, "chunk size")
	require.ErrorContains(t, err, "aggregate")
	require.ErrorContains(t, err, "cpu")
}

func TestStateString(t *testing.T) {
	require.Equal(t, "verifying", Verifying.String())
	require.Equal(t, "failed", Failed.String())
	require.Equal(t, "unknown", State(42).String())
}
