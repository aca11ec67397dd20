package models

import (
	"fmt"
	"time"

	json "github.com/goccy/go-json"
)

// Stage is a severity tier, ordered okay < warning < alert.
type Stage int

const (
	StageOkay Stage = iota
	StageWarning
	StageAlert
)

var stageNames = map[Stage]string{
	StageOkay:    "okay",
	StageWarning: "warning",
	StageAlert:   "alert",
}

func (s Stage) String() string {
	if name, ok := stageNames[s]; ok {
		return name
	}
	return fmt.Sprintf("stage(%d)", int(s))
}

func ParseStage(name string) (Stage, error) {
	for s, n := range stageNames {
		if n == name {
			return s, nil
		}
	}
	return StageOkay, fmt.Errorf("%w: %q", ErrUnknownStage, name)
}

func (s Stage) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Stage) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	parsed, err := ParseStage(name)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Mode selects the direction in which durations approach a threshold.
type Mode int

const (
	ModeCountdown Mode = iota
	ModeCountup
)

// Thresholds are the decoded warning and alert boundaries. A null boundary never triggers.
type Thresholds struct {
	Warning Duration
	Alert   Duration
}

func ThresholdsFrom(warning, alert StageValue) Thresholds {
	return Thresholds{
		Warning: ToDurationSeconds(warning),
		Alert:   ToDurationSeconds(alert),
	}
}

// Classify maps d onto a stage. Boundary values fall into the more severe stage.
func Classify(d Duration, t Thresholds, mode Mode) Stage {
	if !d.Valid {
		return StageOkay
	}
	if reached(d.Value, t.Alert, mode) {
		return StageAlert
	}
	if reached(d.Value, t.Warning, mode) {
		return StageWarning
	}
	return StageOkay
}

func reached(v int64, threshold Duration, mode Mode) bool {
	if !threshold.Valid {
		return false
	}
	if mode == ModeCountup {
		return v >= threshold.Value
	}
	return v <= threshold.Value
}

// ClockThresholds are wall-clock targets entered as HH:MM:SS.
type ClockThresholds struct {
	Warning StageValue
	Alert   StageValue
}

// ClassifyClock compares the time of day of now against today's targets.
// Targets that do not resolve to a time of day never trigger.
func ClassifyClock(now time.Time, t ClockThresholds) Stage {
	current := SecondOfDay(now)
	if clockReached(current, t.Alert) {
		return StageAlert
	}
	if clockReached(current, t.Warning) {
		return StageWarning
	}
	return StageOkay
}

func clockReached(current int64, target StageValue) bool {
	hours, minutes, seconds, ok := target.Units()
	if !ok || hours > 23 || minutes > 59 || seconds > 59 {
		return false
	}
	return current >= int64(hours*3600+minutes*60+seconds)
}

// SecondOfDay is the number of seconds elapsed since local midnight.
func SecondOfDay(t time.Time) int64 {
	h, m, s := t.Clock()
	return int64(h*3600 + m*60 + s)
}
