package registry

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/delaneyj/compbench/codec"
)

func TestDefaultIsDeterministic(t *testing.T) {
	a := Default().Specs()
	b := Default().Specs()
	require.Equal(t, len(a), len(b))
	for i := range a {
		require.Equal(t, a[i].Key(), b[i].Key())
	}
	require.Equal(t, "lz4/-9", a[0].Key())
	require.Equal(t, "brotli/8", a[len(a)-1].Key())
}

func TestSpecsReturnsCopy(t *testing.T) {
	r := Default()
	specs := r.Specs()
	specs[0].Level = 1000
	require.Equal(t, -9, r.Specs()[0].Level)
}

func TestCatalogLevels(t *testing.T) {
	zstd, err := Levels("zstd")
	require.NoError(t, err)
	require.Len(t, zstd, 19)
	require.NotContains(t, zstd, 0)
	require.Equal(t, -7, zstd[0])
	require.Equal(t, 12, zstd[len(zstd)-1])

	lz4, err := Levels("lz4")
	require.NoError(t, err)
	require.Len(t, lz4, 18)

	brotli, err := Levels("brotli")
	require.NoError(t, err)
	require.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8}, brotli)

	_, err = Levels("lzav")
	require.ErrorIs(t, err, ErrUnknownAlgorithm)
}

func TestCatalogLevelsAreValid(t *testing.T) {
	for _, spec := range Catalog().Specs() {
		require.True(t, spec.Codec.ValidLevel(spec.Level), spec.Key())
		require.Equal(t, spec.Algorithm, spec.Codec.Name())
	}
	require.ElementsMatch(t, codec.Names(), Algorithms())
}

func TestCatalogRoundTrip(t *testing.T) {
	payload := bytes.Repeat([]byte("registry-round-trip "), 2048)
	for _, spec := range Catalog().Specs() {
		t.Run(spec.Key(), func(t *testing.T) {
			enc, err := spec.Codec.NewEncoder(spec.Level, codec.Options{})
			require.NoError(t, err)
			defer codec.Close(enc)
			dec, err := spec.Codec.NewDecoder(codec.Options{})
			require.NoError(t, err)
			defer codec.Close(dec)

			compressed, err := enc.Compress(make([]byte, 0, enc.CompressBound(len(payload))), payload)
			require.NoError(t, err)
			out, err := dec.Decompress(make([]byte, len(payload)), compressed)
			require.NoError(t, err)
			require.True(t, bytes.Equal(payload, out))
		})
	}
}

func TestSelectOrder(t *testing.T) {
	r, err := Select("snappy", "copy")
	require.NoError(t, err)
	specs := r.Specs()
	require.Len(t, specs, 2)
	require.Equal(t, "snappy", specs[0].Algorithm)
	require.Equal(t, "copy", specs[1].Algorithm)

	_, err = Select("snappy", "gzip2")
	require.ErrorIs(t, err, ErrUnknownAlgorithm)
}

func TestFromSelectionsValidatesLevels(t *testing.T) {
	r, err := FromSelections([]Selection{{Algorithm: "zstd", Levels: []int{3, -1}}})
	require.NoError(t, err)
	require.Equal(t, 2, r.Len())

	_, err = FromSelections([]Selection{{Algorithm: "brotli", Levels: []int{12}}})
	require.ErrorIs(t, err, ErrInvalidLevel)

	_, err = FromSelections(nil)
	require.Error(t, err)
}

func TestSelectionDecoding(t *testing.T) {
	var fromJSON []Selection
	require.NoError(t, json.Unmarshal([]byte(`["lz4", {"algorithm": "zstd", "levels": [1, 3]}]`), &fromJSON))
	require.Equal(t, []Selection{{Algorithm: "lz4"}, {Algorithm: "zstd", Levels: []int{1, 3}}}, fromJSON)

	var fromYAML []Selection
	doc := "- lz4\n- algorithm: zstd\n  levels: [1, 3]\n"
	require.NoError(t, yaml.Unmarshal([]byte(doc), &fromYAML))
	require.Equal(t, fromJSON, fromYAML)
}

func TestParseSelections(t *testing.T) {
	sels, err := ParseSelections([]string{"zstd:-3:1", " lz4 ", ""})
	require.NoError(t, err)
	require.Equal(t, []Selection{{Algorithm: "zstd", Levels: []int{-3, 1}}, {Algorithm: "lz4"}}, sels)

	_, err = ParseSelections([]string{"zstd:fast"})
	require.ErrorIs(t, err, ErrInvalidLevel)
}
