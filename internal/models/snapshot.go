package models

import (
	"fmt"
)

// Variant names one of the three timers. The names double as snapshot keys.
type Variant string

const (
	// VariantTimer counts up from its start instant.
	VariantTimer Variant = "timer"
	// VariantDuration counts down to its finish instant.
	VariantDuration Variant = "duration"
	// VariantClock compares the time of day against target times.
	VariantClock Variant = "clock"
)

var Variants = []Variant{VariantTimer, VariantDuration, VariantClock}

func ParseVariant(name string) (Variant, error) {
	for _, v := range Variants {
		if string(v) == name {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownVariant, name)
}

// ValueVariant is the codec mode used for the variant's thresholds.
func (v Variant) ValueVariant() ValueVariant {
	if v == VariantClock {
		return ValueTime
	}
	return ValueDuration
}

// Stages lists the thresholds a user may edit for the variant.
func (v Variant) Stages() []Stage {
	if v == VariantDuration {
		return []Stage{StageOkay, StageWarning, StageAlert}
	}
	return []Stage{StageWarning, StageAlert}
}

func (v Variant) HasStage(s Stage) bool {
	for _, st := range v.Stages() {
		if st == s {
			return true
		}
	}
	return false
}

type TimerSection struct {
	Warning StageValue `json:"warning" cbor:"warning"`
	Alert   StageValue `json:"alert" cbor:"alert"`
	State   RunState   `json:"state" cbor:"state"`
}

type DurationSection struct {
	Okay    StageValue `json:"okay" cbor:"okay"`
	Warning StageValue `json:"warning" cbor:"warning"`
	Alert   StageValue `json:"alert" cbor:"alert"`
	State   RunState   `json:"state" cbor:"state"`
}

type ClockSection struct {
	Warning StageValue `json:"warning" cbor:"warning"`
	Alert   StageValue `json:"alert" cbor:"alert"`
}

// Snapshot is the durable state of all three variants.
type Snapshot struct {
	Timer    TimerSection    `json:"timer" cbor:"timer"`
	Duration DurationSection `json:"duration" cbor:"duration"`
	Clock    ClockSection    `json:"clock" cbor:"clock"`
}

// PartialSnapshot replaces only the sections that are set.
type PartialSnapshot struct {
	Timer    *TimerSection
	Duration *DurationSection
	Clock    *ClockSection
}

// DefaultSnapshot is used on first launch and whenever the stored snapshot is unusable.
func DefaultSnapshot() Snapshot {
	return Snapshot{
		Timer: TimerSection{
			Warning: StageValue{0, 0, 4},
			Alert:   StageValue{0, 0, 5},
			State:   Stopped(),
		},
		Duration: DurationSection{
			Okay:    StageValue{0, 0, 5},
			Warning: StageValue{0, 0, 1},
			Alert:   StageValue{0},
			State:   Stopped(),
		},
		Clock: ClockSection{
			Warning: StageValue{},
			Alert:   StageValue{},
		},
	}
}

// Merge returns s with the sections of p applied.
func (s Snapshot) Merge(p PartialSnapshot) Snapshot {
	out := s.Clone()
	if p.Timer != nil {
		out.Timer = p.Timer.Clone()
	}
	if p.Duration != nil {
		out.Duration = p.Duration.Clone()
	}
	if p.Clock != nil {
		out.Clock = p.Clock.Clone()
	}
	return out
}

func (s Snapshot) Clone() Snapshot {
	return Snapshot{
		Timer:    s.Timer.Clone(),
		Duration: s.Duration.Clone(),
		Clock:    s.Clock.Clone(),
	}
}

func (t TimerSection) Clone() TimerSection {
	return TimerSection{Warning: t.Warning.Clone(), Alert: t.Alert.Clone(), State: t.State.Clone()}
}

func (d DurationSection) Clone() DurationSection {
	return DurationSection{
		Okay:    d.Okay.Clone(),
		Warning: d.Warning.Clone(),
		Alert:   d.Alert.Clone(),
		State:   d.State.Clone(),
	}
}

func (c ClockSection) Clone() ClockSection {
	return ClockSection{Warning: c.Warning.Clone(), Alert: c.Alert.Clone()}
}

// Validate checks the snapshot schema: every value fits HHMMSS and every run state is well formed.
func (s Snapshot) Validate() error {
	values := map[string]StageValue{
		"timer.warning":    s.Timer.Warning,
		"timer.alert":      s.Timer.Alert,
		"duration.okay":    s.Duration.Okay,
		"duration.warning": s.Duration.Warning,
		"duration.alert":   s.Duration.Alert,
		"clock.warning":    s.Clock.Warning,
		"clock.alert":      s.Clock.Alert,
	}
	for field, value := range values {
		if !value.Valid() {
			return fmt.Errorf("%w: %s", ErrInvalidValue, field)
		}
	}

	if s.Timer.Alert.IsEmpty() {
		return fmt.Errorf("%w: timer.alert is empty", ErrInvalidValue)
	}
	if s.Duration.Alert.IsEmpty() {
		return fmt.Errorf("%w: duration.alert is empty", ErrInvalidValue)
	}

	if err := s.Timer.State.Validate(); err != nil {
		return fmt.Errorf("timer.state: %w", err)
	}
	if err := s.Duration.State.Validate(); err != nil {
		return fmt.Errorf("duration.state: %w", err)
	}
	return nil
}

// SnapshotKeys mirrors the stored layout with pointer fields, so a key that is
// absent or null can be told apart from an empty value.
type SnapshotKeys struct {
	Timer    *SectionKeys `json:"timer" cbor:"timer"`
	Duration *SectionKeys `json:"duration" cbor:"duration"`
	Clock    *SectionKeys `json:"clock" cbor:"clock"`
}

type SectionKeys struct {
	Okay    *[]int    `json:"okay" cbor:"okay"`
	Warning *[]int    `json:"warning" cbor:"warning"`
	Alert   *[]int    `json:"alert" cbor:"alert"`
	State   *RunState `json:"state" cbor:"state"`
}

// Validate reports the first required key that is missing or null.
func (k SnapshotKeys) Validate() error {
	if k.Timer == nil {
		return fmt.Errorf("%w: timer", ErrMissingKey)
	}
	if k.Duration == nil {
		return fmt.Errorf("%w: duration", ErrMissingKey)
	}
	if k.Clock == nil {
		return fmt.Errorf("%w: clock", ErrMissingKey)
	}

	required := []struct {
		field   string
		present bool
	}{
		{"timer.warning", k.Timer.Warning != nil},
		{"timer.alert", k.Timer.Alert != nil},
		{"timer.state", k.Timer.State != nil},
		{"duration.okay", k.Duration.Okay != nil},
		{"duration.warning", k.Duration.Warning != nil},
		{"duration.alert", k.Duration.Alert != nil},
		{"duration.state", k.Duration.State != nil},
		{"clock.warning", k.Clock.Warning != nil},
		{"clock.alert", k.Clock.Alert != nil},
	}
	for _, r := range required {
		if !r.present {
			return fmt.Errorf("%w: %s", ErrMissingKey, r.field)
		}
	}
	return nil
}
