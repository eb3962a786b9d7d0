package codec

import (
	"bytes"
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func roundTrip(t *testing.T, c Codec, level int, opts Options, payload []byte) []byte {
	t.Helper()
	enc, err := c.NewEncoder(level, opts)
	require.NoError(t, err)
	defer Close(enc)
	dec, err := c.NewDecoder(opts)
	require.NoError(t, err)
	defer Close(dec)

	compressed, err := enc.Compress(make([]byte, 0, enc.CompressBound(len(payload))), payload)
	require.NoError(t, err)
	require.NotEmpty(t, compressed)
	if blockCodecs[c.Name()] {
		require.LessOrEqual(t, len(compressed), enc.CompressBound(len(payload)))
	}

	out, err := dec.Decompress(make([]byte, len(payload)), compressed)
	require.NoError(t, err)
	return out
}

// blockCodecs write into the caller's buffer and never grow it, so their bound is exact.
var blockCodecs = map[string]bool{"copy": true, "lz4": true, "snappy": true, "s2": true, "zstd": true}

func TestCompressionRoundTrip(t *testing.T) {
	payloads := map[string][]byte{
		"repeating": bytes.Repeat([]byte("stream-replication"), 512),
		"random":    makePayload(64 << 10),
		"one-byte":  {0x7f},
	}
	levels := map[string][]int{
		"copy":    {0},
		"lz4":     {-9, -1, 0, 1, 9},
		"snappy":  {0},
		"s2":      {0, 1, 2},
		"zstd":    {-7, 1, 3, 12},
		"brotli":  {1, 8},
		"deflate": {1, 9},
		"xz":      {0},
	}
	for _, name := range Names() {
		c, ok := Get(name)
		require.True(t, ok)
		for _, level := range levels[name] {
			require.True(t, c.ValidLevel(level), "%s level %d", name, level)
			for pname, payload := range payloads {
				t.Run(fmt.Sprintf("%s/%d/%s", name, level, pname), func(t *testing.T) {
					out := roundTrip(t, c, level, Options{}, payload)
					if !bytes.Equal(payload, out) {
						t.Fatalf("round trip mismatch for codec %s level %d", name, level)
					}
				})
			}
		}
	}
}

func TestCompressionRoundTripWithDictionary(t *testing.T) {
	dict := bytes.Repeat([]byte("dictionary-prefix:"), 64)
	payload := bytes.Repeat([]byte("dictionary-prefix:payload"), 200)
	for _, name := range []string{"zstd", "deflate"} {
		c, _ := Get(name)
		require.True(t, SupportsDictionary(c))
		out := roundTrip(t, c, 3, Options{Dictionary: dict}, payload)
		require.Equal(t, payload, out)
	}
	snappy, _ := Get("snappy")
	require.False(t, SupportsDictionary(snappy))
}

func TestEncoderDecoderReuse(t *testing.T) {
	first := bytes.Repeat([]byte("reused-encoder-state "), 800)
	second := makePayload(20 << 10)
	dict := bytes.Repeat([]byte("reused-encoder-state "), 32)
	for _, name := range Names() {
		c, _ := Get(name)
		opts := []Options{{}}
		if SupportsDictionary(c) {
			opts = append(opts, Options{Dictionary: dict})
		}
		for _, o := range opts {
			t.Run(fmt.Sprintf("%s/dict=%t", name, len(o.Dictionary) > 0), func(t *testing.T) {
				level := firstLevel(c)
				if c.ValidLevel(3) {
					level = 3
				}
				enc, err := c.NewEncoder(level, o)
				require.NoError(t, err)
				defer Close(enc)
				dec, err := c.NewDecoder(o)
				require.NoError(t, err)
				defer Close(dec)

				compress := func(p []byte) []byte {
					out, err := enc.Compress(make([]byte, 0, enc.CompressBound(len(p))), p)
					require.NoError(t, err)
					return out
				}
				a1 := compress(first)
				b := compress(second)
				a2 := compress(first)
				require.Equal(t, a1, a2, "encoder state leaks between calls")

				_, err = dec.Decompress(make([]byte, 128), []byte{0xde, 0xad, 0xbe, 0xef, 0x00, 0x01, 0x02})
				require.Error(t, err)
				for _, tc := range []struct {
					want, compressed []byte
				}{{first, a1}, {second, b}, {first, a2}} {
					out, err := dec.Decompress(make([]byte, len(tc.want)), tc.compressed)
					require.NoError(t, err)
					require.Equal(t, tc.want, out)
				}
			})
		}
	}
}

func TestDecompressWrongSize(t *testing.T) {
	payload := bytes.Repeat([]byte("abc"), 1000)
	for _, name := range Names() {
		c, _ := Get(name)
		t.Run(name, func(t *testing.T) {
			enc, err := c.NewEncoder(0+firstLevel(c), Options{})
			require.NoError(t, err)
			defer Close(enc)
			compressed, err := enc.Compress(make([]byte, 0, enc.CompressBound(len(payload))), payload)
			require.NoError(t, err)

			dec, err := c.NewDecoder(Options{})
			require.NoError(t, err)
			defer Close(dec)
			_, err = dec.Decompress(make([]byte, len(payload)+7), compressed)
			require.Error(t, err)

			var failure *Failure
			require.True(t, errors.As(err, &failure))
			require.Equal(t, name, failure.Algorithm)
			require.Equal(t, OpDecompress, failure.Op)
		})
	}
}

func TestDecompressCorrupt(t *testing.T) {
	garbage := []byte{0xde, 0xad, 0xbe, 0xef, 0x00, 0x01, 0x02}
	for _, name := range []string{"lz4", "snappy", "s2", "zstd", "brotli", "xz"} {
		c, _ := Get(name)
		dec, err := c.NewDecoder(Options{})
		require.NoError(t, err)
		_, err = dec.Decompress(make([]byte, 128), garbage)
		require.Error(t, err, name)
		Close(dec)
	}
}

func TestCompressBufferTooSmall(t *testing.T) {
	c, _ := Get("lz4")
	enc, err := c.NewEncoder(1, Options{})
	require.NoError(t, err)
	_, err = enc.Compress(make([]byte, 0, 4), makePayload(1024))
	require.ErrorIs(t, err, ErrBufferTooSmall)
}

func TestZstdEncoderLevel(t *testing.T) {
	c, _ := Get("zstd")
	require.True(t, c.ValidLevel(-7))
	require.True(t, c.ValidLevel(22))
	require.False(t, c.ValidLevel(23))
	require.Equal(t, zstdEncoderLevel(-3), zstdEncoderLevel(1))
	require.Less(t, int(zstdEncoderLevel(1)), int(zstdEncoderLevel(12)))
}

func TestByExtension(t *testing.T) {
	for _, name := range Names() {
		c, _ := Get(name)
		found, ok := ByExtension(c.Extension())
		require.True(t, ok)
		require.Equal(t, name, found.Name())
	}
	_, ok := ByExtension("txt")
	require.False(t, ok)
}

func firstLevel(c Codec) int {
	for level := -10; level <= 10; level++ {
		if c.ValidLevel(level) {
			return level
		}
	}
	return 0
}

func makePayload(size int) []byte {
	buf := make([]byte, size)
	rand.New(rand.NewSource(42)).Read(buf)
	return buf
}
