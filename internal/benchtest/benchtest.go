// Package benchtest provides a scripted codec and a manual clock so runner and
// report behaviour can be tested with exact sizes and durations.
package benchtest

import (
	"sync"
	"time"

	"github.com/delaneyj/compbench/codec"
	"github.com/delaneyj/compbench/registry"
)

// Clock is a manual bench.Clock. Codecs advance it to simulate work.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

func NewClock() *Clock {
	return &Clock{now: time.Unix(1_700_000_000, 0)}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Codec is a scripted codec. Compress emits CompressedLen bytes per call (the
// input length when zero) and advances Clock by CompressTook; Decompress
// restores the last input and advances Clock by DecompressTook.
type Codec struct {
	Label          string
	Clock          *Clock
	CompressedLen  int
	CompressTook   time.Duration
	DecompressTook time.Duration

	// CompressErr and DecompressErr make the respective call fail.
	CompressErr   error
	DecompressErr error
	// CorruptAt flips one byte of the decompressed output when >= 0.
	CorruptAt int
	// Truncate drops the last decompressed byte.
	Truncate bool
	// StaleAfter, when >= 0, is the number of Decompress calls that write
	// their output; later calls return dst without touching it.
	StaleAfter int

	last    [][]byte
	decodes int
}

// New returns a codec that round-trips correctly and takes no time.
func New(label string, clock *Clock) *Codec {
	return &Codec{Label: label, Clock: clock, CorruptAt: -1, StaleAfter: -1}
}

// Spec wraps c as a benchmark configuration.
func (c *Codec) Spec(level int) registry.AlgorithmSpec {
	return registry.AlgorithmSpec{Algorithm: c.Label, Level: level, Codec: c}
}

func (c *Codec) Name() string              { return c.Label }
func (c *Codec) Extension() string         { return c.Label }
func (c *Codec) ValidLevel(level int) bool { return true }

func (c *Codec) NewEncoder(level int, _ codec.Options) (codec.Encoder, error) {
	return (*encoder)(c), nil
}

func (c *Codec) NewDecoder(_ codec.Options) (codec.Decoder, error) {
	return (*decoder)(c), nil
}

type encoder Codec

func (e *encoder) CompressBound(n int) int { return max(n, e.CompressedLen) }

func (e *encoder) Compress(dst, src []byte) ([]byte, error) {
	if e.Clock != nil {
		e.Clock.Advance(e.CompressTook)
	}
	if e.CompressErr != nil {
		return nil, e.CompressErr
	}
	e.last = append(e.last, src)
	n := len(src)
	if e.CompressedLen > 0 {
		n = e.CompressedLen
	}
	// The payload is an index into last so Decompress can find its chunk.
	out := dst[:n]
	clear(out)
	out[0] = byte(len(e.last) - 1)
	return out, nil
}

type decoder Codec

func (d *decoder) Decompress(dst, src []byte) ([]byte, error) {
	if d.Clock != nil {
		d.Clock.Advance(d.DecompressTook)
	}
	if d.DecompressErr != nil {
		return nil, d.DecompressErr
	}
	idx := int(src[0])
	if d.StaleAfter < 0 || d.decodes < d.StaleAfter {
		copy(dst, d.last[idx])
	}
	d.decodes++
	if idx == len(d.last)-1 {
		d.last = d.last[:0]
	}
	out := dst
	if d.CorruptAt >= 0 && d.CorruptAt < len(out) && idx == 0 {
		out[d.CorruptAt] ^= 0xff
	}
	if d.Truncate {
		out = out[:len(out)-1]
	}
	return out, nil
}
