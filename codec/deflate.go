package codec

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/flate"
)

// Deflate is raw DEFLATE (RFC 1951) via klauspost/compress/flate.
type Deflate struct{}

func init() { register(Deflate{}) }

func (Deflate) Name() string      { return "deflate" }
func (Deflate) Extension() string { return "deflate" }
func (Deflate) ValidLevel(level int) bool {
	return level >= flate.BestSpeed && level <= flate.BestCompression
}
func (Deflate) SupportsDictionary() bool { return true }

func (Deflate) NewEncoder(level int, opts Options) (Encoder, error) {
	var (
		w   *flate.Writer
		err error
	)
	if len(opts.Dictionary) > 0 {
		w, err = flate.NewWriterDict(io.Discard, level, opts.Dictionary)
	} else {
		w, err = flate.NewWriter(io.Discard, level)
	}
	if err != nil {
		return nil, fail("deflate", level, OpSetup, err)
	}
	return &deflateEncoder{level: level, w: w}, nil
}

func (Deflate) NewDecoder(opts Options) (Decoder, error) {
	src := bytes.NewReader(nil)
	var r io.ReadCloser
	if len(opts.Dictionary) > 0 {
		r = flate.NewReaderDict(src, opts.Dictionary)
	} else {
		r = flate.NewReader(src)
	}
	return &deflateDecoder{dict: opts.Dictionary, src: src, r: r}, nil
}

// deflateCompressBound covers the worst case of stored blocks plus the final block.
func deflateCompressBound(n int) int {
	return n + 5*(n/16383+1) + 16
}

type deflateEncoder struct {
	level int
	w     *flate.Writer
}

func (e *deflateEncoder) CompressBound(n int) int { return deflateCompressBound(n) }

// Compress relies on flate.Writer.Reset restoring the dictionary it was built with.
func (e *deflateEncoder) Compress(dst, src []byte) ([]byte, error) {
	out, err := resetStream(dst, src, e.w)
	if err != nil {
		return nil, fail("deflate", e.level, OpCompress, err)
	}
	return out, nil
}

type deflateDecoder struct {
	dict []byte
	src  *bytes.Reader
	r    io.ReadCloser
}

func (d *deflateDecoder) Decompress(dst, src []byte) ([]byte, error) {
	d.src.Reset(src)
	if err := d.r.(flate.Resetter).Reset(d.src, d.dict); err != nil {
		return nil, fail("deflate", 0, OpDecompress, err)
	}
	out, err := readExact(d.r, dst)
	if err != nil {
		return nil, fail("deflate", 0, OpDecompress, err)
	}
	return out, nil
}
