// Package registry holds the fixed catalog of (algorithm, level) configurations
// that the benchmark runner iterates over.
package registry

import (
	"errors"
	"fmt"
	"slices"

	"github.com/delaneyj/compbench/codec"
)

var (
	// ErrUnknownAlgorithm is returned for names that are not in the catalog.
	ErrUnknownAlgorithm = errors.New("unknown algorithm")
	// ErrInvalidLevel is returned for levels the codec does not accept.
	ErrInvalidLevel = errors.New("invalid compression level")
)

// AlgorithmSpec is one benchmark configuration.
type AlgorithmSpec struct {
	Algorithm string
	Level     int
	Codec     codec.Codec
}

// Key identifies the configuration in logs, failpoints and reports.
func (s AlgorithmSpec) Key() string {
	return fmt.Sprintf("%s/%d", s.Algorithm, s.Level)
}

func (s AlgorithmSpec) String() string {
	return fmt.Sprintf("%s -c %d", s.Algorithm, s.Level)
}

// entry is one catalog row: an algorithm and the levels benchmarked by default.
type entry struct {
	name   string
	levels []int
}

func span(lo, hi int) []int {
	levels := make([]int, 0, hi-lo+1)
	for l := lo; l <= hi; l++ {
		levels = append(levels, l)
	}
	return levels
}

var catalog = []entry{
	{"copy", []int{0}},
	{"lz4", append(span(-9, -1), span(1, 9)...)},
	{"snappy", []int{0}},
	{"s2", span(0, 2)},
	{"zstd", append(span(-7, -1), span(1, 12)...)},
	{"brotli", span(1, 8)},
	{"deflate", span(1, 9)},
	{"xz", []int{0}},
}

// DefaultAlgorithms are benchmarked when no selection is given.
var DefaultAlgorithms = []string{"lz4", "snappy", "s2", "zstd", "brotli"}

// Registry is an ordered, immutable list of specs.
type Registry struct {
	specs []AlgorithmSpec
}

// Algorithms lists every catalog algorithm in catalog order.
func Algorithms() []string {
	names := make([]string, len(catalog))
	for i, e := range catalog {
		names[i] = e.name
	}
	return names
}

// Levels returns the catalog levels for algorithm.
func Levels(algorithm string) ([]int, error) {
	for _, e := range catalog {
		if e.name == algorithm {
			return slices.Clone(e.levels), nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, algorithm)
}

// Catalog returns every catalog configuration.
func Catalog() *Registry {
	r, err := Select(Algorithms()...)
	if err != nil {
		panic(err)
	}
	return r
}

// Default returns the configurations for DefaultAlgorithms.
func Default() *Registry {
	r, err := Select(DefaultAlgorithms...)
	if err != nil {
		panic(err)
	}
	return r
}

// Select returns the catalog levels of the named algorithms, in the order given.
func Select(algorithms ...string) (*Registry, error) {
	selections := make([]Selection, len(algorithms))
	for i, name := range algorithms {
		selections[i] = Selection{Algorithm: name}
	}
	return FromSelections(selections)
}

// FromSelections builds a registry from explicit selections. A selection
// without levels takes the catalog levels of its algorithm.
func FromSelections(selections []Selection) (*Registry, error) {
	r := &Registry{}
	for _, sel := range selections {
		levels := sel.Levels
		if len(levels) == 0 {
			var err error
			if levels, err = Levels(sel.Algorithm); err != nil {
				return nil, err
			}
		}
		for _, level := range levels {
			spec, err := Lookup(sel.Algorithm, level)
			if err != nil {
				return nil, err
			}
			r.specs = append(r.specs, spec)
		}
	}
	if len(r.specs) == 0 {
		return nil, errors.New("no algorithms selected")
	}
	return r, nil
}

// Lookup validates a single configuration.
func Lookup(algorithm string, level int) (AlgorithmSpec, error) {
	c, ok := codec.Get(algorithm)
	if !ok {
		return AlgorithmSpec{}, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, algorithm)
	}
	if !c.ValidLevel(level) {
		return AlgorithmSpec{}, fmt.Errorf("%w: %s does not accept level %d", ErrInvalidLevel, algorithm, level)
	}
	return AlgorithmSpec{Algorithm: algorithm, Level: level, Codec: c}, nil
}

// Specs returns a copy of the configurations in registry order.
func (r *Registry) Specs() []AlgorithmSpec {
	return slices.Clone(r.specs)
}

// Len is the number of configurations.
func (r *Registry) Len() int { return len(r.specs) }
