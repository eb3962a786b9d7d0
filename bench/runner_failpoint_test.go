//go:build failpoint

package bench_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/delaneyj/compbench/bench"
	"github.com/delaneyj/compbench/codec"
	"github.com/delaneyj/compbench/internal/failpoint"
	"github.com/delaneyj/compbench/registry"
)

func TestRunnerInjectedCompressFailure(t *testing.T) {
	reg, err := registry.FromSelections([]registry.Selection{{Algorithm: "zstd", Levels: []int{1, 3, 9}}})
	require.NoError(t, err)
	input := bytes.Repeat([]byte("failpoint "), 5000)

	baseline, _ := collect(t, bench.NewRunner(), input, reg.Specs()...)

	require.NoError(t, failpoint.Enable("bench/compress/zstd/3", `return("injected")`))
	defer failpoint.Disable("bench/compress/zstd/3")
	outcomes, summary := collect(t, bench.NewRunner(), input, reg.Specs()...)

	require.Equal(t, 1, summary.Failed)
	var failure *codec.Failure
	require.ErrorAs(t, outcomes[1].Err, &failure)
	require.Equal(t, 3, failure.Level)
	require.Equal(t, baseline[0].Result.CompressedSize, outcomes[0].Result.CompressedSize)
	require.Equal(t, baseline[2].Result.CompressedSize, outcomes[2].Result.CompressedSize)
}

func TestRunnerInjectedDecompressFailure(t *testing.T) {
	spec, err := registry.Lookup("snappy", 0)
	require.NoError(t, err)
	require.NoError(t, failpoint.Enable("bench/decompress/snappy/0", `return("decoder offline")`))
	defer failpoint.Disable("bench/decompress/snappy/0")

	outcomes, _ := collect(t, bench.NewRunner(), []byte("some input"), spec)
	require.Equal(t, bench.Decompressing, outcomes[0].FailedIn)
	require.ErrorContains(t, outcomes[0].Err, "decoder offline")
}
