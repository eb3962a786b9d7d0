package bench

import (
	"time"

	"github.com/delaneyj/compbench/registry"
)

// State is the position of one configuration in its benchmark pass. Outcomes
// are only emitted once a configuration settles, so Outcome.State is Done or
// Failed; the phase a failure happened in (Pending for setup) is kept in
// Outcome.FailedIn.
type State int

const (
	Pending State = iota
	Compressing
	Decompressing
	Verifying
	Done
	Failed
)

var stateNames = [...]string{"pending", "compressing", "decompressing", "verifying", "done", "failed"}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

// Result holds the measurements for one configuration. With one trial the
// durations are the elapsed time of a single compress or decompress pass over
// the input; with more trials they are the runner's aggregate (minimum by
// default) of the per-trial samples.
type Result struct {
	Spec                  registry.AlgorithmSpec
	OriginalSize          uint64
	CompressedSize        uint64
	CompressionDuration   time.Duration
	DecompressionDuration time.Duration
	Trials                int
	Chunks                int
	Aggregate             Aggregate
	CompressionSamples    []time.Duration
	DecompressionSamples  []time.Duration
}

// Outcome is what the runner reports for a configuration: a Result when the
// state is Done, the error and the phase it failed in otherwise.
type Outcome struct {
	Spec     registry.AlgorithmSpec
	State    State
	FailedIn State
	Result   Result
	Err      error
}

// OK reports whether the configuration produced a result.
func (o Outcome) OK() bool { return o.State == Done }

// Summary counts outcomes of a run.
type Summary struct {
	Done       int
	Failed     int
	Mismatched int
	Failures   []error
}

func (s *Summary) record(o Outcome) {
	if o.OK() {
		s.Done++
		return
	}
	s.Failed++
	if IsMismatch(o.Err) {
		s.Mismatched++
	}
	s.Failures = append(s.Failures, o.Err)
}
