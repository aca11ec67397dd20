package engine

import (
	"showtimer/internal/models"
)

type Direction int

const (
	CountUp Direction = iota
	CountDown
)

func (d Direction) Mode() models.Mode {
	if d == CountUp {
		return models.ModeCountup
	}
	return models.ModeCountdown
}

// Source derives a live duration from a run state's reference instant and the
// current wall-clock time. Nothing is accumulated between observations.
type Source struct {
	clock     Clock
	direction Direction
}

func NewSource(clock Clock, direction Direction) *Source {
	return &Source{clock: clock, direction: direction}
}

// Observe returns the duration for state. A stopped state reports the configured baseline.
func (s *Source) Observe(state models.RunState, configured models.Duration) models.Duration {
	switch state.Type {
	case models.StateRunning:
		ref, ok := state.Reference()
		if !ok {
			return configured
		}
		nowMs := s.clock.Now().UnixMilli()
		refMs := ref.UnixMilli()
		if s.direction == CountUp {
			return models.Seconds(floorDiv(nowMs-refMs, 1000))
		}
		return models.Seconds(floorDiv(refMs-nowMs, 1000))
	case models.StatePaused:
		frozen, ok := state.Frozen()
		if !ok {
			return configured
		}
		return models.Seconds(frozen)
	default:
		return configured
	}
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
