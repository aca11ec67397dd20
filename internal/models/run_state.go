package models

import (
	"fmt"
	"time"

	"github.com/gookit/validate"
)

type RunStateType string

const (
	StateStopped RunStateType = "stopped"
	StateRunning RunStateType = "running"
	StatePaused  RunStateType = "paused"
)

// RunState is stopped, running with a reference instant, or paused with a frozen duration.
// ReferenceInstant is unix milliseconds: the start time of a count-up timer or the
// finish time of a count-down timer.
type RunState struct {
	Type             RunStateType `json:"type" cbor:"type"`
	ReferenceInstant *int64       `json:"referenceInstant,omitempty" cbor:"referenceInstant,omitempty"`
	FrozenDuration   *int64       `json:"frozenDuration,omitempty" cbor:"frozenDuration,omitempty"`
}

type runStateShape struct {
	Type string `validate:"required|in:stopped,running,paused"`
}

func Stopped() RunState {
	return RunState{Type: StateStopped}
}

func Running(reference time.Time) RunState {
	ms := reference.UnixMilli()
	return RunState{Type: StateRunning, ReferenceInstant: &ms}
}

func Paused(frozen int64) RunState {
	return RunState{Type: StatePaused, FrozenDuration: &frozen}
}

func (s RunState) IsStopped() bool { return s.Type == StateStopped }
func (s RunState) IsRunning() bool { return s.Type == StateRunning }
func (s RunState) IsPaused() bool  { return s.Type == StatePaused }

// Reference returns the reference instant of a running state.
func (s RunState) Reference() (time.Time, bool) {
	if s.Type != StateRunning || s.ReferenceInstant == nil {
		return time.Time{}, false
	}
	return time.UnixMilli(*s.ReferenceInstant), true
}

// Frozen returns the captured duration of a paused state.
func (s RunState) Frozen() (int64, bool) {
	if s.Type != StatePaused || s.FrozenDuration == nil {
		return 0, false
	}
	return *s.FrozenDuration, true
}

// Validate checks that the payload matches the tag: running carries only a
// reference instant, paused only a frozen duration, stopped neither.
func (s RunState) Validate() error {
	shape := &runStateShape{Type: string(s.Type)}
	v := validate.Struct(shape)
	if !v.Validate() {
		return fmt.Errorf("%w: %s", ErrInvalidState, v.Errors.One())
	}

	switch s.Type {
	case StateStopped:
		if s.ReferenceInstant != nil || s.FrozenDuration != nil {
			return fmt.Errorf("%w: stopped state carries a payload", ErrInvalidState)
		}
	case StateRunning:
		if s.ReferenceInstant == nil || s.FrozenDuration != nil {
			return fmt.Errorf("%w: running state needs exactly a reference instant", ErrInvalidState)
		}
	case StatePaused:
		if s.FrozenDuration == nil || s.ReferenceInstant != nil {
			return fmt.Errorf("%w: paused state needs exactly a frozen duration", ErrInvalidState)
		}
	}
	return nil
}

func (s RunState) Clone() RunState {
	out := RunState{Type: s.Type}
	if s.ReferenceInstant != nil {
		v := *s.ReferenceInstant
		out.ReferenceInstant = &v
	}
	if s.FrozenDuration != nil {
		v := *s.FrozenDuration
		out.FrozenDuration = &v
	}
	return out
}
