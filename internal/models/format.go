package models

import (
	"fmt"
	"strings"
)

// FormatDuration renders d as [-][D:][HH:][MM:]SS, omitting leading zero units.
func FormatDuration(d Duration) string {
	if !d.Valid {
		return ""
	}

	v := d.Value
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}

	days := v / 86400
	hours := (v % 86400) / 3600
	minutes := (v % 3600) / 60
	seconds := v % 60

	var b strings.Builder
	b.WriteString(sign)
	if days > 0 {
		fmt.Fprintf(&b, "%d:", days)
	}
	if days > 0 || hours > 0 {
		fmt.Fprintf(&b, "%02d:", hours)
	}
	if days > 0 || hours > 0 || minutes > 0 {
		fmt.Fprintf(&b, "%02d:", minutes)
	}
	fmt.Fprintf(&b, "%02d", seconds)
	return b.String()
}

// DisplayDigits returns the digits of the formatted duration, most significant first.
func DisplayDigits(d Duration) []int {
	formatted := FormatDuration(d)
	digits := make([]int, 0, len(formatted))
	for _, r := range formatted {
		if r >= '0' && r <= '9' {
			digits = append(digits, int(r-'0'))
		}
	}
	return digits
}

// FormatStageValue renders an entered value as HH:MM:SS. Unset values render empty.
func FormatStageValue(v StageValue) string {
	hours, minutes, seconds, ok := v.Units()
	if !ok {
		return ""
	}
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}
