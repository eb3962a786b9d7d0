package bench

import "time"

// Clock supplies timestamps for the timed sections. The system clock's readings
// carry Go's monotonic component, so Sub is immune to wall-clock steps.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock is the default Clock.
var SystemClock Clock = systemClock{}
