// Package codec wraps third-party compression libraries behind one block-oriented
// capability so they can be driven through the same timing protocol.
package codec

import (
	"fmt"
	"io"
	"sort"
)

// Codec is a compression algorithm. Level validation happens once, when a
// configuration is registered; encoders trust the level they are built with.
type Codec interface {
	// Name is the algorithm name used on the command line and in reports.
	Name() string
	// Extension is the file suffix written by the compress command.
	Extension() string
	// ValidLevel reports whether level is accepted by NewEncoder.
	ValidLevel(level int) bool
	// NewEncoder prepares an encoder for level. Setup cost is paid here, not in Compress.
	NewEncoder(level int, opts Options) (Encoder, error)
	// NewDecoder prepares a decoder.
	NewDecoder(opts Options) (Decoder, error)
}

// Encoder compresses whole buffers at a fixed level.
type Encoder interface {
	// CompressBound returns the largest output Compress can produce for n input bytes.
	CompressBound(n int) int
	// Compress writes the compressed form of src into dst[:0] and returns it.
	// Callers size dst with CompressBound so no allocation happens on the hot path.
	Compress(dst, src []byte) ([]byte, error)
}

// Decoder restores buffers produced by the matching Encoder.
type Decoder interface {
	// Decompress fills dst, whose length is the expected original size, and returns it.
	// Output that does not fill dst exactly is reported as a Failure.
	Decompress(dst, src []byte) ([]byte, error)
}

// Options are codec-agnostic settings shared by encoders and decoders.
type Options struct {
	// Dictionary primes codecs that support a raw dictionary. Others ignore it.
	Dictionary []byte
}

// DictionarySupport is implemented by codecs that use Options.Dictionary.
type DictionarySupport interface {
	SupportsDictionary() bool
}

// SupportsDictionary reports whether c uses Options.Dictionary.
func SupportsDictionary(c Codec) bool {
	d, ok := c.(DictionarySupport)
	return ok && d.SupportsDictionary()
}

// Close releases resources held by an encoder or decoder, if any.
func Close(v any) error {
	if c, ok := v.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

var codecs = map[string]Codec{}

func register(c Codec) {
	if _, dup := codecs[c.Name()]; dup {
		panic(fmt.Sprintf("codec %q registered twice", c.Name()))
	}
	codecs[c.Name()] = c
}

// Get returns the codec registered under name.
func Get(name string) (Codec, bool) {
	c, ok := codecs[name]
	return c, ok
}

// ByExtension finds the codec that writes files with the given extension (without dot).
func ByExtension(ext string) (Codec, bool) {
	for _, c := range codecs {
		if c.Extension() == ext {
			return c, true
		}
	}
	return nil, false
}

// Names lists registered codecs alphabetically.
func Names() []string {
	names := make([]string, 0, len(codecs))
	for name := range codecs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
