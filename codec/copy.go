package codec

// Copy is the identity codec. It gives the memory-bandwidth ceiling the real
// codecs are compared against.
type Copy struct{}

func init() { register(Copy{}) }

func (Copy) Name() string              { return "copy" }
func (Copy) Extension() string         { return "bak" }
func (Copy) ValidLevel(level int) bool { return level == 0 }

func (Copy) NewEncoder(level int, _ Options) (Encoder, error) { return copyCoder{}, nil }
func (Copy) NewDecoder(_ Options) (Decoder, error)            { return copyCoder{}, nil }

type copyCoder struct{}

func (copyCoder) CompressBound(n int) int { return n }

func (copyCoder) Compress(dst, src []byte) ([]byte, error) {
	return append(dst[:0], src...), nil
}

func (copyCoder) Decompress(dst, src []byte) ([]byte, error) {
	if len(src) != len(dst) {
		return checkSize("copy", src, len(dst))
	}
	copy(dst, src)
	return dst, nil
}
