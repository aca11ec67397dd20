package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"showtimer/internal/di"
	"showtimer/internal/models"
	"showtimer/internal/services"
)

func NewInspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect",
		Short: "Print every timer as restored from the snapshot file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkConfig(); err != nil {
				return err
			}
			inspector, err := di.InitInspector(flags)
			if err != nil {
				return err
			}
			views, err := inspector.Views()
			if err != nil {
				return fmt.Errorf("failed to read timers: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s\n\n", bold("Snapshot:"), inspector.Path())
			for _, view := range views {
				printView(out, view)
			}
			return nil
		},
	}
}

func printView(out io.Writer, view services.TimerView) {
	formatted := view.Formatted
	if formatted == "" {
		formatted = "--"
	}
	state := string(view.State)
	if state == "" {
		state = "live"
	}

	fmt.Fprintf(out, "%s %-8s %-10s %s\n", bold("%-9s", view.Variant), state, formatted, stageString(view.Stage))
	for _, stage := range view.Variant.Stages() {
		value := models.FormatStageValue(view.Values[stage.String()])
		if value == "" {
			value = "unset"
		}
		fmt.Fprintf(out, "          %-8s %s\n", stage, value)
	}
	fmt.Fprintln(out)
}

func stageString(stage models.Stage) string {
	name := strings.ToUpper(stage.String())
	switch stage {
	case models.StageAlert:
		return color.New(color.Bold, color.FgRed).Sprint(name)
	case models.StageWarning:
		return color.New(color.Bold, color.FgYellow).Sprint(name)
	default:
		return color.GreenString(name)
	}
}

func bold(format string, a ...interface{}) string {
	return color.New(color.Bold).Sprintf(format, a...)
}
