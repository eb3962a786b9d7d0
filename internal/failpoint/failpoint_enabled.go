//go:build failpoint

// Package failpoint injects failures into the benchmark runner. Failpoints are
// compiled in only with the failpoint build tag; otherwise every call is a no-op.
package failpoint

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Enabled reports whether failpoints are compiled in.
const Enabled = true

var (
	mu         sync.RWMutex
	failpoints = make(map[string]action)
)

type action struct {
	err   error
	sleep time.Duration
}

// Enable arms a failpoint. Supported actions:
//   - return("message") - Inject returns an error with message
//   - sleep(milliseconds) - Inject blocks for the given duration
func Enable(name, spec string) error {
	a, err := parseAction(spec)
	if err != nil {
		return fmt.Errorf("failpoint %s: %w", name, err)
	}
	mu.Lock()
	defer mu.Unlock()
	failpoints[name] = a
	return nil
}

// Disable disarms a failpoint.
func Disable(name string) error {
	mu.Lock()
	defer mu.Unlock()
	delete(failpoints, name)
	return nil
}

// Inject runs the action armed for name, if any.
func Inject(name string) error {
	mu.RLock()
	a, ok := failpoints[name]
	mu.RUnlock()
	if !ok {
		return nil
	}
	if a.sleep > 0 {
		time.Sleep(a.sleep)
	}
	return a.err
}

func parseAction(spec string) (action, error) {
	open := strings.IndexByte(spec, '(')
	if open < 0 || !strings.HasSuffix(spec, ")") {
		return action{}, fmt.Errorf("malformed action %q", spec)
	}
	verb, arg := spec[:open], spec[open+1:len(spec)-1]
	switch verb {
	case "return":
		msg, err := strconv.Unquote(arg)
		if err != nil {
			msg = arg
		}
		return action{err: errors.New(msg)}, nil
	case "sleep":
		ms, err := strconv.Atoi(arg)
		if err != nil {
			return action{}, fmt.Errorf("sleep duration %q: %w", arg, err)
		}
		return action{sleep: time.Duration(ms) * time.Millisecond}, nil
	default:
		return action{}, fmt.Errorf("unknown action %q", verb)
	}
}
