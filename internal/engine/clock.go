package engine

import "time"

// Clock provides the current wall-clock time.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the real wall clock.
var SystemClock Clock = systemClock{}

type systemClock struct{}

func (systemClock) Now() time.Time {
	// strip the monotonic reading: durations must follow the wall clock across suspension
	return time.Now().Round(0)
}

func NewClock() Clock {
	return SystemClock
}
