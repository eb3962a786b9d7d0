package codec

import (
	"bytes"
	"fmt"
	"testing"
)

func BenchmarkCompress(b *testing.B) {
	payload := bytes.Repeat(makePayload(4<<10), 256) // 1 MiB, compressible
	for _, name := range Names() {
		c, _ := Get(name)
		level := firstLevel(c)
		b.Run(fmt.Sprintf("%s/level=%d", name, level), func(b *testing.B) {
			runCompressBench(b, c, level, payload)
		})
	}
}

func runCompressBench(b *testing.B, c Codec, level int, payload []byte) {
	enc, err := c.NewEncoder(level, Options{})
	if err != nil {
		b.Fatalf("encoder: %v", err)
	}
	defer Close(enc)
	dec, err := c.NewDecoder(Options{})
	if err != nil {
		b.Fatalf("decoder: %v", err)
	}
	defer Close(dec)

	dst := make([]byte, 0, enc.CompressBound(len(payload)))
	out := make([]byte, len(payload))
	compressed, err := enc.Compress(dst, payload)
	if err != nil {
		b.Fatalf("warmup compress: %v", err)
	}
	if _, err := dec.Decompress(out, compressed); err != nil {
		b.Fatalf("warmup decompress: %v", err)
	}
	b.SetBytes(int64(len(payload)))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		compressed, err := enc.Compress(dst, payload)
		if err != nil {
			b.Fatalf("compress failed: %v", err)
		}
		if _, err := dec.Decompress(out, compressed); err != nil {
			b.Fatalf("decompress failed: %v", err)
		}
	}
}
