package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newServeCommand(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the movies rental api server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := opts.loadConfig()
			if err != nil {
				return fmt.Errorf("failed to setup app configuration: %w", err)
			}
			app, err := NewApp(config)
			if err != nil {
				return fmt.Errorf("application failed to initialized: %w", err)
			}
			if err = app.Run(); err != nil {
				return fmt.Errorf("application exited. check logs for more details: %w", err)
			}
			return nil
		},
	}
}
