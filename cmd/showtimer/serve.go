package main

import (
	"github.com/spf13/cobra"

	"showtimer/internal/di"
)

func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the timer engine and its HTTP control surface",
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := checkConfig(); err != nil {
				return err
			}
			_, err := di.InitApp(flags)
			return err
		},
	}
}
