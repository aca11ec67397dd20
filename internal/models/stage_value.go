package models

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
	json "github.com/goccy/go-json"
)

// MaxStageValueDigits bounds a StageValue to HHMMSS.
const MaxStageValueDigits = 6

// StageValue is a keypad-entered HHMMSS value, least-significant digit first.
// An empty value means "unset".
type StageValue []int

type KeypadActionType string

const (
	ActionNumber     KeypadActionType = "number"
	ActionBackspace  KeypadActionType = "backspace"
	ActionDoubleZero KeypadActionType = "double-zero"
	ActionClear      KeypadActionType = "clear"
)

type KeypadAction struct {
	Type  KeypadActionType `json:"type"`
	Value int              `json:"value,omitempty"`
}

func Number(d int) KeypadAction {
	return KeypadAction{Type: ActionNumber, Value: d}
}

func (a KeypadAction) Validate() error {
	switch a.Type {
	case ActionBackspace, ActionDoubleZero, ActionClear:
		return nil
	case ActionNumber:
		if a.Value < 0 || a.Value > 9 {
			return fmt.Errorf("%w: digit %d out of range", ErrInvalidAction, a.Value)
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown type %q", ErrInvalidAction, a.Type)
	}
}

// ValueVariant selects codec behaviour: "time" values are clock targets,
// "duration" values are lengths of time.
type ValueVariant string

const (
	ValueTime     ValueVariant = "time"
	ValueDuration ValueVariant = "duration"
)

// ApplyAction returns the value produced by applying a keypad action to prev.
// prev is never modified. Invalid actions leave the value unchanged.
func ApplyAction(prev StageValue, action KeypadAction, variant ValueVariant) StageValue {
	switch action.Type {
	case ActionClear:
		return StageValue{}
	case ActionBackspace:
		if len(prev) == 0 {
			return StageValue{}
		}
		return prev[1:].Clone()
	case ActionNumber:
		if action.Value < 0 || action.Value > 9 {
			return prev.Clone()
		}
		return pushDigit(prev, action.Value, variant)
	case ActionDoubleZero:
		return pushDigit(pushDigit(prev, 0, variant), 0, variant)
	default:
		return prev.Clone()
	}
}

func pushDigit(prev StageValue, d int, variant ValueVariant) StageValue {
	// a lone placeholder zero is replaced, not shifted
	if variant == ValueDuration && len(prev) == 1 && prev[0] == 0 {
		return StageValue{d}
	}

	next := make(StageValue, 0, len(prev)+1)
	next = append(next, d)
	next = append(next, prev...)
	if len(next) > MaxStageValueDigits {
		next = next[:MaxStageValueDigits]
	}
	return next
}

func (v StageValue) Clone() StageValue {
	out := make(StageValue, len(v))
	copy(out, v)
	return out
}

func (v StageValue) IsEmpty() bool {
	return len(v) == 0
}

// Valid reports whether v fits the HHMMSS encoding.
func (v StageValue) Valid() bool {
	if len(v) > MaxStageValueDigits {
		return false
	}
	for _, d := range v {
		if d < 0 || d > 9 {
			return false
		}
	}
	return true
}

// Units splits v into hours, minutes and seconds. Missing high digits read as zero.
func (v StageValue) Units() (hours, minutes, seconds int, ok bool) {
	if len(v) == 0 || !v.Valid() {
		return 0, 0, 0, false
	}
	var padded [MaxStageValueDigits]int
	copy(padded[:], v)
	seconds = padded[1]*10 + padded[0]
	minutes = padded[3]*10 + padded[2]
	hours = padded[5]*10 + padded[4]
	return hours, minutes, seconds, true
}

// ToDurationSeconds decodes v. Empty or out-of-range values decode to a null duration.
func ToDurationSeconds(v StageValue) Duration {
	hours, minutes, seconds, ok := v.Units()
	if !ok {
		return NullDuration
	}
	return Seconds(int64(hours*3600 + minutes*60 + seconds))
}

// NormalizeAlert keeps an alert threshold representable: an emptied value becomes a single zero.
func NormalizeAlert(v StageValue) StageValue {
	if len(v) == 0 {
		return StageValue{0}
	}
	return v
}

func (v StageValue) MarshalJSON() ([]byte, error) {
	if v == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]int(v))
}

func (v StageValue) MarshalCBOR() ([]byte, error) {
	if v == nil {
		return cbor.Marshal([]int{})
	}
	return cbor.Marshal([]int(v))
}
