package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/five82/hostsnap/internal/app"
	"github.com/five82/hostsnap/internal/logging"
	"github.com/five82/hostsnap/internal/logtail"
)

func newLogsCmd(opts *rootOptions) *cobra.Command {
	var (
		lines    int
		minLevel string
	)

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Print the end of the TUI log file",
		Long: `The terminal UI writes its log to log_file instead of the screen. logs prints
the last records of that file.

Examples:
  hostsnap logs
  hostsnap logs -n 50 --level warn`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			level, err := logging.ParseLevel(minLevel)
			if err != nil {
				return err
			}
			cfg, err := app.LoadConfig(opts.appOptions())
			if err != nil {
				return err
			}
			records, err := logtail.Read(cfg.LogFile, lines, level)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(records) == 0 {
				_, err := fmt.Fprintf(out, "No log entries in %s.\n", cfg.LogFile)
				return err
			}
			for _, line := range records {
				if _, err := fmt.Fprintln(out, logtail.Colorize(line)); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&lines, "lines", "n", 200, "Number of lines to print (0 for all)")
	cmd.Flags().StringVar(&minLevel, "level", "debug", "Lowest level to print")
	return cmd
}
