package bench

import (
	"errors"
	"fmt"
)

// Config is the file form of the runner options.
type Config struct {
	// Trials is the number of timed passes per configuration. Zero means one.
	Trials int `json:"trials,omitempty" yaml:"trials,omitempty"`

	// Warmup is the number of untimed passes run before the trials.
	Warmup int `json:"warmup,omitempty" yaml:"warmup,omitempty"`

	// Aggregate collapses trial samples: "min" (default) or "median".
	Aggregate Aggregate `json:"aggregate,omitempty" yaml:"aggregate,omitempty"`

	// ChunkSize splits the input into independently compressed chunks. Zero
	// compresses the whole input as one buffer.
	ChunkSize int `json:"chunkSize,omitempty" yaml:"chunkSize,omitempty"`

	// PinCPU pins the benchmark thread to one CPU when set.
	PinCPU *int `json:"pinCPU,omitempty" yaml:"pinCPU,omitempty"`
}

// Validate checks ranges and normalizes defaults.
func (c *Config) Validate() error {
	var errs []error
	if c.Trials < 0 {
		errs = append(errs, fmt.Errorf("trials must not be negative, got %d", c.Trials))
	}
	if c.Trials == 0 {
		c.Trials = 1
	}
	if c.Warmup < 0 {
		errs = append(errs, fmt.Errorf("warmup must not be negative, got %d", c.Warmup))
	}
	if c.ChunkSize < 0 {
		errs = append(errs, fmt.Errorf("chunk size must not be negative, got %d", c.ChunkSize))
	}
	agg, err := ParseAggregate(string(c.Aggregate))
	if err != nil {
		errs = append(errs, err)
	}
	c.Aggregate = agg
	if c.PinCPU != nil && *c.PinCPU < 0 {
		errs = append(errs, fmt.Errorf("cpu must not be negative, got %d", *c.PinCPU))
	}
	return errors.Join(errs...)
}

// Options converts the configuration into runner options.
func (c Config) Options() []Option {
	opts := []Option{
		WithTrials(c.Trials),
		WithWarmup(c.Warmup),
		WithAggregate(c.Aggregate),
		WithChunkSize(c.ChunkSize),
	}
	if c.PinCPU != nil {
		opts = append(opts, WithPinCPU(*c.PinCPU))
	}
	return opts
}
