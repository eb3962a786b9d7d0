//go:build failpoint

package failpoint

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInjectReturn(t *testing.T) {
	require.NoError(t, Enable("bench/compress/zstd/3", `return("boom")`))
	defer Disable("bench/compress/zstd/3")

	err := Inject("bench/compress/zstd/3")
	require.EqualError(t, err, "boom")
	require.NoError(t, Inject("bench/compress/zstd/4"))
}

func TestEnableRejectsMalformed(t *testing.T) {
	require.Error(t, Enable("x", "panic"))
	require.Error(t, Enable("x", "sleep(abc)"))
	require.Error(t, Enable("x", "explode()"))
}
