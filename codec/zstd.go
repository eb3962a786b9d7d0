package codec

import (
	"fmt"

	"github.com/klauspost/compress/zstd"
)

// zstdDictID tags raw dictionaries. Encoder and decoder must agree on it.
const zstdDictID = 0x63627a64

// Zstd is Zstandard via klauspost/compress. The library implements four encoder
// strategies; zstd levels are mapped onto them the way the reference library's
// level table groups them.
type Zstd struct{}

func init() { register(Zstd{}) }

func (Zstd) Name() string              { return "zstd" }
func (Zstd) Extension() string         { return "zstd" }
func (Zstd) ValidLevel(level int) bool { return level >= -131072 && level <= 22 }
func (Zstd) SupportsDictionary() bool  { return true }

func zstdEncoderLevel(level int) zstd.EncoderLevel {
	if level <= 0 {
		return zstd.SpeedFastest
	}
	return zstd.EncoderLevelFromZstd(level)
}

// zstdCompressBound mirrors ZSTD_COMPRESSBOUND.
func zstdCompressBound(n int) int {
	bound := n + n>>8
	if n < 128<<10 {
		bound += (128<<10 - n) >> 11
	}
	return bound
}

func (Zstd) NewEncoder(level int, opts Options) (Encoder, error) {
	options := []zstd.EOption{
		zstd.WithEncoderLevel(zstdEncoderLevel(level)),
		zstd.WithEncoderConcurrency(1),
	}
	if len(opts.Dictionary) > 0 {
		options = append(options, zstd.WithEncoderDictRaw(zstdDictID, opts.Dictionary))
	}
	encoder, err := zstd.NewWriter(nil, options...)
	if err != nil {
		return nil, fail("zstd", level, OpSetup, fmt.Errorf("create zstd writer: %w", err))
	}
	return &zstdEncoder{level: level, encoder: encoder}, nil
}

func (Zstd) NewDecoder(opts Options) (Decoder, error) {
	options := []zstd.DOption{zstd.WithDecoderConcurrency(1)}
	if len(opts.Dictionary) > 0 {
		options = append(options, zstd.WithDecoderDictRaw(zstdDictID, opts.Dictionary))
	}
	decoder, err := zstd.NewReader(nil, options...)
	if err != nil {
		return nil, fail("zstd", 0, OpSetup, fmt.Errorf("create zstd reader: %w", err))
	}
	return &zstdDecoder{decoder: decoder}, nil
}

type zstdEncoder struct {
	level   int
	encoder *zstd.Encoder
}

func (e *zstdEncoder) CompressBound(n int) int { return zstdCompressBound(n) }

func (e *zstdEncoder) Compress(dst, src []byte) ([]byte, error) {
	return e.encoder.EncodeAll(src, dst[:0]), nil
}

func (e *zstdEncoder) Close() error { return e.encoder.Close() }

type zstdDecoder struct {
	decoder *zstd.Decoder
}

func (d *zstdDecoder) Decompress(dst, src []byte) ([]byte, error) {
	out, err := d.decoder.DecodeAll(src, dst[:0])
	if err != nil {
		return nil, fail("zstd", 0, OpDecompress, fmt.Errorf("zstd read: %w", err))
	}
	return checkSize("zstd", out, len(dst))
}

func (d *zstdDecoder) Close() error {
	d.decoder.Close()
	return nil
}
