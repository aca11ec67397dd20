package main

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"showtimer/internal/models"
	"showtimer/internal/services"
)

func TestPrintView(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	printView(&buf, services.TimerView{
		Variant:   models.VariantDuration,
		Formatted: "-01:05",
		Stage:     models.StageAlert,
		State:     models.StateRunning,
		Values: map[string]models.StageValue{
			"okay":    {0, 0, 5},
			"warning": {0, 0, 1},
			"alert":   {},
		},
	})

	out := buf.String()
	assert.Contains(t, out, "duration")
	assert.Contains(t, out, "running")
	assert.Contains(t, out, "-01:05")
	assert.Contains(t, out, "ALERT")
	assert.Contains(t, out, "00:05:00")
	assert.Contains(t, out, "unset")
}

func TestPrintView_ClockIsLive(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	printView(&buf, services.TimerView{Variant: models.VariantClock, Values: map[string]models.StageValue{}})

	assert.Contains(t, buf.String(), "live")
	assert.Contains(t, buf.String(), "--")
	assert.Contains(t, buf.String(), "OKAY")
}

func TestNewCommand_Subcommands(t *testing.T) {
	cmd := NewCommand()
	names := []string{}
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	assert.Contains(t, names, "serve")
	assert.Contains(t, names, "inspect")
}
