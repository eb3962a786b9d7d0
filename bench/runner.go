// Package bench drives codecs through the timing protocol: configurations run
// strictly one after another, each pass times only the codec calls, and every
// pass is verified byte for byte against the input.
package bench

import (
	"bytes"
	"context"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"github.com/valyala/bytebufferpool"

	"github.com/delaneyj/compbench/codec"
	"github.com/delaneyj/compbench/internal/failpoint"
	"github.com/delaneyj/compbench/internal/framing"
	"github.com/delaneyj/compbench/registry"
)

// Runner benchmarks configurations against one input.
type Runner struct {
	trials    int
	warmup    int
	aggregate Aggregate
	chunkSize int
	dict      []byte
	clock     Clock
	logger    zerolog.Logger
	pinCPU    int
}

// Option configures a Runner.
type Option func(*Runner)

// WithTrials sets the number of timed passes per configuration (minimum one).
func WithTrials(n int) Option {
	return func(r *Runner) { r.trials = max(n, 1) }
}

// WithWarmup sets the number of untimed passes run before the trials.
func WithWarmup(n int) Option {
	return func(r *Runner) { r.warmup = max(n, 0) }
}

// WithAggregate selects how trial samples are reduced.
func WithAggregate(a Aggregate) Option {
	return func(r *Runner) {
		if a != "" {
			r.aggregate = a
		}
	}
}

// WithChunkSize compresses the input as independent chunks of n bytes.
func WithChunkSize(n int) Option {
	return func(r *Runner) { r.chunkSize = max(n, 0) }
}

// WithDictionary primes codecs that support a raw dictionary.
func WithDictionary(dict []byte) Option {
	return func(r *Runner) { r.dict = dict }
}

// WithClock replaces the system clock.
func WithClock(c Clock) Option {
	return func(r *Runner) { r.clock = c }
}

// WithLogger sets the progress logger.
func WithLogger(l zerolog.Logger) Option {
	return func(r *Runner) { r.logger = l }
}

// WithPinCPU pins the benchmark thread to cpu for the duration of Run.
func WithPinCPU(cpu int) Option {
	return func(r *Runner) { r.pinCPU = cpu }
}

// NewRunner returns a runner doing one untimed-setup, one-trial pass per configuration.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		trials:    1,
		aggregate: AggregateMin,
		clock:     SystemClock,
		logger:    zerolog.Nop(),
		pinCPU:    -1,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run benchmarks specs in order against input, calling emit after each
// configuration finishes. Failures are isolated to their configuration and
// collected in the Summary; the returned error is reserved for conditions that
// stop the whole run (empty input, cancelled context).
func (r *Runner) Run(ctx context.Context, input []byte, specs []registry.AlgorithmSpec, emit func(Outcome)) (Summary, error) {
	var summary Summary
	if len(input) == 0 {
		return summary, ErrEmptyInput
	}
	if r.pinCPU >= 0 {
		release, err := pinToCPU(r.pinCPU)
		if err != nil {
			r.logger.Warn().Err(err).Int("cpu", r.pinCPU).Msg("running unpinned")
		} else {
			defer release()
			r.logger.Debug().Int("cpu", r.pinCPU).Msg("pinned benchmark thread")
		}
	}

	chunks := framing.Split(input, r.chunkSize)
	r.logger.Info().
		Int("configurations", len(specs)).
		Int("input_bytes", len(input)).
		Int("chunks", len(chunks)).
		Int("trials", r.trials).
		Int("warmup", r.warmup).
		Msg("starting benchmark")

	for _, spec := range specs {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		outcome := r.RunSpec(spec, input, chunks)
		summary.record(outcome)
		if outcome.OK() {
			r.logger.Debug().Str("spec", spec.Key()).
				Dur("compression", outcome.Result.CompressionDuration).
				Dur("decompression", outcome.Result.DecompressionDuration).
				Uint64("compressed_bytes", outcome.Result.CompressedSize).
				Msg("configuration done")
		} else {
			r.logger.Error().Str("spec", spec.Key()).Stringer("state", outcome.FailedIn).Err(outcome.Err).Msg("configuration failed")
		}
		if emit != nil {
			emit(outcome)
		}
	}
	r.logger.Info().Int("done", summary.Done).Int("failed", summary.Failed).Msg("benchmark finished")
	return summary, nil
}

// RunSpec benchmarks a single configuration. chunks must partition input in
// order; pass nil to use the runner's chunk size.
func (r *Runner) RunSpec(spec registry.AlgorithmSpec, input []byte, chunks [][]byte) Outcome {
	if chunks == nil {
		chunks = framing.Split(input, r.chunkSize)
	}
	o := Outcome{Spec: spec, State: Pending}

	t, err := newTrial(spec, chunks, codec.Options{Dictionary: r.dict})
	if err != nil {
		return o.fail(Pending, err)
	}
	defer t.close()

	compressSamples := make([]time.Duration, 0, r.trials)
	decompressSamples := make([]time.Duration, 0, r.trials)
	var compressedSize int
	for pass := 0; pass < r.warmup+r.trials; pass++ {
		cdur, ddur, state, err := t.run(r.clock)
		if err != nil {
			return o.fail(state, err)
		}
		if err := t.verify(input); err != nil {
			return o.fail(Verifying, err)
		}
		if pass < r.warmup {
			continue
		}
		compressSamples = append(compressSamples, cdur)
		decompressSamples = append(decompressSamples, ddur)
		compressedSize = t.compressedSize()
	}

	o.State = Done
	o.Result = Result{
		Spec:                  spec,
		OriginalSize:          uint64(len(input)),
		CompressedSize:        uint64(compressedSize),
		CompressionDuration:   r.aggregate.Combine(compressSamples),
		DecompressionDuration: r.aggregate.Combine(decompressSamples),
		Trials:                r.trials,
		Chunks:                len(chunks),
		Aggregate:             r.aggregate,
		CompressionSamples:    compressSamples,
		DecompressionSamples:  decompressSamples,
	}
	return o
}

func (o Outcome) fail(state State, err error) Outcome {
	o.State = Failed
	o.FailedIn = state
	o.Err = err
	return o
}

// trial holds everything a pass needs, prepared before any clock starts.
type trial struct {
	spec         registry.AlgorithmSpec
	enc          codec.Encoder
	dec          codec.Decoder
	chunks       [][]byte
	cdst         [][]byte
	ddst         [][]byte
	compressed   [][]byte
	decompressed [][]byte
	cbuf, dbuf   *bytebufferpool.ByteBuffer
}

func newTrial(spec registry.AlgorithmSpec, chunks [][]byte, opts codec.Options) (*trial, error) {
	enc, err := spec.Codec.NewEncoder(spec.Level, opts)
	if err != nil {
		return nil, asFailure(spec, codec.OpSetup, err)
	}
	dec, err := spec.Codec.NewDecoder(opts)
	if err != nil {
		codec.Close(enc)
		return nil, asFailure(spec, codec.OpSetup, err)
	}
	t := &trial{
		spec:         spec,
		enc:          enc,
		dec:          dec,
		chunks:       chunks,
		cdst:         make([][]byte, len(chunks)),
		ddst:         make([][]byte, len(chunks)),
		compressed:   make([][]byte, len(chunks)),
		decompressed: make([][]byte, len(chunks)),
	}

	var cTotal, dTotal int
	for _, c := range chunks {
		cTotal += enc.CompressBound(len(c))
		dTotal += len(c)
	}
	t.cbuf = minSizedBuffer(cTotal)
	t.dbuf = minSizedBuffer(dTotal)
	var coff, doff int
	for i, c := range chunks {
		bound := enc.CompressBound(len(c))
		t.cdst[i] = t.cbuf.B[coff : coff : coff+bound]
		t.ddst[i] = t.dbuf.B[doff : doff+len(c) : doff+len(c)]
		coff += bound
		doff += len(c)
	}
	return t, nil
}

func (t *trial) close() {
	codec.Close(t.enc)
	codec.Close(t.dec)
	releaseBuffers(t.cbuf, t.dbuf)
}

// run performs one compress pass and one decompress pass. Only the codec
// calls sit between the clock readings.
func (t *trial) run(clock Clock) (time.Duration, time.Duration, State, error) {
	key := t.spec.Key()
	if err := failpoint.Inject("bench/compress/" + key); err != nil {
		return 0, 0, Compressing, asFailure(t.spec, codec.OpCompress, err)
	}
	runtime.GC()
	start := clock.Now()
	for i, c := range t.chunks {
		out, err := t.enc.Compress(t.cdst[i], c)
		if err != nil {
			return 0, 0, Compressing, asFailure(t.spec, codec.OpCompress, err)
		}
		t.compressed[i] = out
	}
	cdur := clock.Now().Sub(start)
	for i, c := range t.chunks {
		if len(t.compressed[i]) == 0 && len(c) > 0 {
			return 0, 0, Compressing, asFailure(t.spec, codec.OpCompress, codec.ErrIncompressible)
		}
	}

	if err := failpoint.Inject("bench/decompress/" + key); err != nil {
		return 0, 0, Decompressing, asFailure(t.spec, codec.OpDecompress, err)
	}
	t.poison()
	runtime.GC()
	start = clock.Now()
	for i := range t.chunks {
		out, err := t.dec.Decompress(t.ddst[i], t.compressed[i])
		if err != nil {
			return 0, 0, Decompressing, asFailure(t.spec, codec.OpDecompress, err)
		}
		t.decompressed[i] = out
	}
	ddur := clock.Now().Sub(start)
	return max(cdur, 0), max(ddur, 0), Done, nil
}

// poison fills every decompression destination with the complement of its
// chunk, so a decoder that leaves any byte of dst unwritten fails verify
// instead of passing on a previous pass's output.
func (t *trial) poison() {
	for i, c := range t.chunks {
		d := t.ddst[i][:len(c)]
		for j, b := range c {
			d[j] = ^b
		}
	}
}

// verify compares the decompressed chunks against the input byte for byte.
func (t *trial) verify(input []byte) error {
	off := 0
	for i, want := range t.chunks {
		got := t.decompressed[i]
		if !bytes.Equal(got, want) {
			return t.mismatch(off, want, got)
		}
		off += len(want)
	}
	if off != len(input) {
		return &MismatchError{Spec: t.spec, Offset: off, Got: -1}
	}
	return nil
}

func (t *trial) mismatch(base int, want, got []byte) error {
	n := min(len(want), len(got))
	for i := 0; i < n; i++ {
		if want[i] != got[i] {
			return &MismatchError{Spec: t.spec, Offset: base + i, Expected: int(want[i]), Got: int(got[i])}
		}
	}
	return &MismatchError{Spec: t.spec, Offset: base + n, Got: -1}
}

func (t *trial) compressedSize() int {
	total := 0
	for _, c := range t.compressed {
		total += len(c)
	}
	return total
}
