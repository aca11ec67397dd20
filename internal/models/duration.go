package models

import (
	"strconv"

	json "github.com/goccy/go-json"
)

// MaxDisplaySeconds is 9 days 23:59:59. A running timer reaching it is stopped.
const MaxDisplaySeconds int64 = 863999

// Duration is a whole number of seconds, or null when nothing is configured.
// Count-down durations go negative after expiry.
type Duration struct {
	Value int64
	Valid bool
}

var NullDuration = Duration{}

func Seconds(n int64) Duration {
	return Duration{Value: n, Valid: true}
}

// ExceedsCap reports whether |d| has reached MaxDisplaySeconds.
func (d Duration) ExceedsCap() bool {
	if !d.Valid {
		return false
	}
	v := d.Value
	if v < 0 {
		v = -v
	}
	return v >= MaxDisplaySeconds
}

// Positive reports whether d holds a value greater than zero.
func (d Duration) Positive() bool {
	return d.Valid && d.Value > 0
}

func (d Duration) String() string {
	if !d.Valid {
		return "null"
	}
	return strconv.FormatInt(d.Value, 10)
}

func (d Duration) MarshalJSON() ([]byte, error) {
	if !d.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatInt(d.Value, 10)), nil
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*d = NullDuration
		return nil
	}
	var v int64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*d = Seconds(v)
	return nil
}
