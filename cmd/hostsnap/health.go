package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newHealthCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the snapshot API answers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, logger, err := opts.client(cmd)
			if err != nil {
				return err
			}
			start := time.Now()
			if err := client.Health(cmd.Context()); err != nil {
				return fmt.Errorf("health check %s: %w", client.BaseURL(), err)
			}
			latency := time.Since(start).Round(time.Millisecond)
			logger.Debug("health check passed", "latency", latency)
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s %s is up (%s)\n", green("✓"), client.BaseURL(), latency)
			return err
		},
	}
}
