package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"showtimer/internal/structures"
)

var flags = &structures.CliFlags{
	ConfigPath: "config/config.yaml",
}

func main() {
	cmd := NewCommand()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "showtimer",
		Short: "showtimer keeps stage timers for live shows",
		Long: `showtimer keeps a count-up timer, a count-down timer and a wall-clock target,
classifies each into okay, warning and alert stages and persists their state
so a restart resumes exactly where it left off.`,
		SilenceUsage: true,
	}

	globalFlags := cmd.PersistentFlags()
	globalFlags.StringVarP(&flags.ConfigPath, "config", "c", flags.ConfigPath, "config file path")
	globalFlags.BoolVarP(&flags.DebugMode, "debug", "d", false, "log to stderr as well as the log files")

	cmd.AddCommand(
		NewServeCommand(),
		NewInspectCommand(),
	)

	return cmd
}

func checkConfig() error {
	if _, err := os.Stat(flags.ConfigPath); err != nil {
		return fmt.Errorf("config file %s: %w", flags.ConfigPath, err)
	}
	return nil
}
