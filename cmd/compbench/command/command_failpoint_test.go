//go:build failpoint

package command_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/delaneyj/compbench/internal/failpoint"
)

func TestBenchmarkManyReportsFailedConfiguration(t *testing.T) {
	path, _ := writeInput(t)
	require.NoError(t, failpoint.Enable("bench/compress/zstd/3", `return("encoder exploded")`))
	defer failpoint.Disable("bench/compress/zstd/3")

	res := runCLI(t, "benchmark-many", path, "-a", "zstd:1:3:5")
	require.Error(t, res.err)
	require.Contains(t, res.err.Error(), "1 of 3 configurations failed")

	out := lines(res.stdout)
	require.Len(t, out, 3)
	require.True(t, strings.HasPrefix(out[0], "zstd -c 1: "), out[0])
	require.True(t, strings.HasPrefix(out[1], "zstd -c 3: FAILED: "), out[1])
	require.Contains(t, out[1], "encoder exploded")
	require.True(t, strings.HasPrefix(out[2], "zstd -c 5: "), out[2])
	require.Contains(t, out[2], "MB/s")
}
