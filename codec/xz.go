package codec

import (
	"bytes"
	"fmt"
	"io"

	"github.com/ulikunitz/xz"
)

// XZ is the xz container with LZMA2. Levels 0..9 select the dictionary
// capacity of the matching xz preset.
type XZ struct{}

func init() { register(XZ{}) }

func (XZ) Name() string              { return "xz" }
func (XZ) Extension() string         { return "xz" }
func (XZ) ValidLevel(level int) bool { return level >= 0 && level < len(xzDictCaps) }

var xzDictCaps = [...]int{
	256 << 10, 1 << 20, 2 << 20, 4 << 20, 4 << 20,
	8 << 20, 8 << 20, 16 << 20, 32 << 20, 64 << 20,
}

func (XZ) NewEncoder(level int, _ Options) (Encoder, error) {
	cfg := xz.WriterConfig{DictCap: xzDictCaps[level]}
	if err := cfg.Verify(); err != nil {
		return nil, fail("xz", level, OpSetup, fmt.Errorf("xz config: %w", err))
	}
	return xzEncoder{level: level, cfg: cfg}, nil
}

func (XZ) NewDecoder(_ Options) (Decoder, error) { return xzDecoder{}, nil }

// xzCompressBound mirrors lzma_stream_buffer_bound: uncompressed LZMA2 chunks
// plus block and stream headers.
func xzCompressBound(n int) int {
	return n + (n/(64<<10)+1)*3 + 64
}

type xzEncoder struct {
	level int
	cfg   xz.WriterConfig
}

func (e xzEncoder) CompressBound(n int) int { return xzCompressBound(n) }

// Compress builds a fresh writer per call; xz.Writer has no Reset.
func (e xzEncoder) Compress(dst, src []byte) ([]byte, error) {
	out, err := writeStream(dst, src, func(w io.Writer) (io.WriteCloser, error) {
		return e.cfg.NewWriter(w)
	})
	if err != nil {
		return nil, fail("xz", e.level, OpCompress, err)
	}
	return out, nil
}

type xzDecoder struct{}

func (xzDecoder) Decompress(dst, src []byte) ([]byte, error) {
	r, err := xz.NewReader(bytes.NewReader(src))
	if err != nil {
		return nil, fail("xz", 0, OpDecompress, err)
	}
	out, err := readExact(r, dst)
	if err != nil {
		return nil, fail("xz", 0, OpDecompress, err)
	}
	return out, nil
}
