package codec

import (
	"bytes"
	"io"

	"github.com/andybalholm/brotli"
)

// Brotli is the brotli stream format at quality 0..11.
type Brotli struct{}

func init() { register(Brotli{}) }

func (Brotli) Name() string              { return "brotli" }
func (Brotli) Extension() string         { return "br" }
func (Brotli) ValidLevel(level int) bool { return level >= brotli.BestSpeed && level <= brotli.BestCompression }

func (Brotli) NewEncoder(level int, _ Options) (Encoder, error) {
	return &brotliEncoder{level: level, w: brotli.NewWriterLevel(io.Discard, level)}, nil
}

func (Brotli) NewDecoder(_ Options) (Decoder, error) {
	src := bytes.NewReader(nil)
	return &brotliDecoder{src: src, r: brotli.NewReader(src)}, nil
}

// brotliCompressBound mirrors BrotliEncoderMaxCompressedSize.
func brotliCompressBound(n int) int {
	if n == 0 {
		return 2
	}
	largeBlocks := n >> 14
	overhead := 2 + 4*largeBlocks + 3 + 1
	return n + overhead
}

type brotliEncoder struct {
	level int
	w     *brotli.Writer
}

func (e *brotliEncoder) CompressBound(n int) int { return brotliCompressBound(n) }

func (e *brotliEncoder) Compress(dst, src []byte) ([]byte, error) {
	out, err := resetStream(dst, src, e.w)
	if err != nil {
		return nil, fail("brotli", e.level, OpCompress, err)
	}
	return out, nil
}

type brotliDecoder struct {
	src *bytes.Reader
	r   *brotli.Reader
}

func (d *brotliDecoder) Decompress(dst, src []byte) ([]byte, error) {
	d.src.Reset(src)
	if err := d.r.Reset(d.src); err != nil {
		return nil, fail("brotli", 0, OpDecompress, err)
	}
	out, err := readExact(d.r, dst)
	if err != nil {
		return nil, fail("brotli", 0, OpDecompress, err)
	}
	return out, nil
}
