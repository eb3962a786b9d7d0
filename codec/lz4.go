package codec

import (
	"github.com/pierrec/lz4/v4"
)

// LZ4 is the LZ4 block format. Negative levels select the fast compressor
// (pierrec/lz4 does not expose an acceleration factor, so they share one code path);
// levels 1..9 select the high-compression compressor.
type LZ4 struct{}

func init() { register(LZ4{}) }

func (LZ4) Name() string      { return "lz4" }
func (LZ4) Extension() string { return "lz4" }

func (LZ4) ValidLevel(level int) bool { return level >= -65537 && level <= 9 }

var lz4HCLevels = [...]lz4.CompressionLevel{
	lz4.Level1, lz4.Level2, lz4.Level3, lz4.Level4, lz4.Level5,
	lz4.Level6, lz4.Level7, lz4.Level8, lz4.Level9,
}

func (LZ4) NewEncoder(level int, _ Options) (Encoder, error) {
	if level > 0 {
		return &lz4Encoder{level: level, hc: &lz4.CompressorHC{Level: lz4HCLevels[level-1]}}, nil
	}
	return &lz4Encoder{level: level, fast: &lz4.Compressor{}}, nil
}

func (LZ4) NewDecoder(_ Options) (Decoder, error) { return lz4Decoder{}, nil }

type lz4Encoder struct {
	level int
	fast  *lz4.Compressor
	hc    *lz4.CompressorHC
}

func (e *lz4Encoder) CompressBound(n int) int { return lz4.CompressBlockBound(n) }

func (e *lz4Encoder) Compress(dst, src []byte) ([]byte, error) {
	dst = dst[:cap(dst)]
	if len(dst) < lz4.CompressBlockBound(len(src)) {
		return nil, fail("lz4", e.level, OpCompress, ErrBufferTooSmall)
	}
	var (
		n   int
		err error
	)
	if e.hc != nil {
		n, err = e.hc.CompressBlock(src, dst)
	} else {
		n, err = e.fast.CompressBlock(src, dst)
	}
	if err != nil {
		return nil, fail("lz4", e.level, OpCompress, err)
	}
	if n == 0 && len(src) > 0 {
		return nil, fail("lz4", e.level, OpCompress, ErrIncompressible)
	}
	return dst[:n], nil
}

type lz4Decoder struct{}

func (lz4Decoder) Decompress(dst, src []byte) ([]byte, error) {
	n, err := lz4.UncompressBlock(src, dst)
	if err != nil {
		return nil, fail("lz4", 0, OpDecompress, err)
	}
	return checkSize("lz4", dst[:n], len(dst))
}
