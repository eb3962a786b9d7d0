package codec

import (
	"errors"

	"github.com/golang/snappy"
)

// Snappy is the raw (unframed) snappy block format.
type Snappy struct{}

func init() { register(Snappy{}) }

func (Snappy) Name() string              { return "snappy" }
func (Snappy) Extension() string         { return "sz" }
func (Snappy) ValidLevel(level int) bool { return level == 0 }

func (Snappy) NewEncoder(level int, _ Options) (Encoder, error) { return snappyCoder{}, nil }
func (Snappy) NewDecoder(_ Options) (Decoder, error)            { return snappyCoder{}, nil }

type snappyCoder struct{}

func (snappyCoder) CompressBound(n int) int { return snappy.MaxEncodedLen(n) }

func (snappyCoder) Compress(dst, src []byte) ([]byte, error) {
	bound := snappy.MaxEncodedLen(len(src))
	if bound < 0 {
		return nil, fail("snappy", 0, OpCompress, errors.New("input too large"))
	}
	if cap(dst) < bound {
		return nil, fail("snappy", 0, OpCompress, ErrBufferTooSmall)
	}
	return snappy.Encode(dst[:cap(dst)], src), nil
}

func (snappyCoder) Decompress(dst, src []byte) ([]byte, error) {
	out, err := snappy.Decode(dst, src)
	if err != nil {
		return nil, fail("snappy", 0, OpDecompress, err)
	}
	return checkSize("snappy", out, len(dst))
}
