package codec

import (
	"errors"

	"github.com/klauspost/compress/s2"
)

// S2 is klauspost's snappy extension. Level 0 is the default encoder,
// 1 the "better" encoder and 2 the "best" encoder.
type S2 struct{}

func init() { register(S2{}) }

func (S2) Name() string              { return "s2" }
func (S2) Extension() string         { return "s2" }
func (S2) ValidLevel(level int) bool { return level >= 0 && level <= 2 }

func (S2) NewEncoder(level int, _ Options) (Encoder, error) {
	enc := &s2Encoder{level: level}
	switch level {
	case 1:
		enc.encode = s2.EncodeBetter
	case 2:
		enc.encode = s2.EncodeBest
	default:
		enc.encode = s2.Encode
	}
	return enc, nil
}

func (S2) NewDecoder(_ Options) (Decoder, error) { return s2Decoder{}, nil }

type s2Encoder struct {
	level  int
	encode func(dst, src []byte) []byte
}

func (e *s2Encoder) CompressBound(n int) int { return s2.MaxEncodedLen(n) }

func (e *s2Encoder) Compress(dst, src []byte) ([]byte, error) {
	bound := s2.MaxEncodedLen(len(src))
	if bound < 0 {
		return nil, fail("s2", e.level, OpCompress, errors.New("input too large"))
	}
	if cap(dst) < bound {
		return nil, fail("s2", e.level, OpCompress, ErrBufferTooSmall)
	}
	return e.encode(dst[:cap(dst)], src), nil
}

type s2Decoder struct{}

func (s2Decoder) Decompress(dst, src []byte) ([]byte, error) {
	out, err := s2.Decode(dst, src)
	if err != nil {
		return nil, fail("s2", 0, OpDecompress, err)
	}
	return checkSize("s2", out, len(dst))
}
