//go:build !failpoint

// Package failpoint injects failures into the benchmark runner. Failpoints are
// compiled in only with the failpoint build tag; otherwise every call is a no-op.
package failpoint

// Enabled reports whether failpoints are compiled in.
const Enabled = false

// Enable is a no-op when the failpoint build tag is not set.
func Enable(name, action string) error { return nil }

// Disable is a no-op when the failpoint build tag is not set.
func Disable(name string) error { return nil }

// Inject is a no-op when the failpoint build tag is not set.
func Inject(name string) error { return nil }
