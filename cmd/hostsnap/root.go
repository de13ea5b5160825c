package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/five82/hostsnap/internal/app"
	"github.com/five82/hostsnap/internal/logging"
	"github.com/five82/hostsnap/internal/snapshot"
	"github.com/five82/hostsnap/internal/version"
)

// rootOptions holds the persistent flags shared by every command.
type rootOptions struct {
	configPath string
	apiBase    string
	logLevel   string
	level      slog.Level
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "hostsnap",
		Short: "Browse, compare and upload host configuration snapshots",
		Long: `hostsnap talks to a snapshot API that stores JSON snapshots of hosts.

Without a subcommand it starts the terminal UI. The subcommands print the
same data for scripts and quick checks.`,
		Version: version.String(),
		// Errors are printed by main; usage is noise for API failures.
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level, err := logging.ParseLevel(opts.logLevel)
			if err != nil {
				return err
			}
			opts.level = level
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd, opts)
		},
	}
	root.SetVersionTemplate(`{{printf "hostsnap version %s\n" .Version}}`)

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default ~/.config/hostsnap/config.toml)")
	flags.StringVar(&opts.apiBase, "api", "", "snapshot API host:port or URL (overrides api_base)")
	flags.StringVar(&opts.logLevel, "log-level", "info", "log level: debug, info, warn or error")

	root.AddCommand(
		newTUICmd(opts),
		newHostsCmd(opts),
		newTimestampsCmd(opts),
		newShowCmd(opts),
		newDiffCmd(opts),
		newUploadCmd(opts),
		newLogsCmd(opts),
		newHealthCmd(opts),
		newVersionCmd(),
	)
	return root
}

func (o *rootOptions) appOptions() app.Options {
	return app.Options{
		ConfigPath: o.configPath,
		APIBase:    o.apiBase,
		LogLevel:   o.level,
	}
}

// client builds the API client for a one-shot command. Logs go to stderr.
func (o *rootOptions) client(cmd *cobra.Command) (*snapshot.Client, *slog.Logger, error) {
	cfg, err := app.LoadConfig(o.appOptions())
	if err != nil {
		return nil, nil, err
	}
	logger, _, err := logging.Setup(logging.Options{
		Mode:   logging.ModeCLI,
		Level:  o.level,
		Output: cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, nil, err
	}
	client, err := snapshot.NewClient(cfg.APIBase, cfg.RequestTimeout)
	if err != nil {
		return nil, nil, fmt.Errorf("init snapshot client: %w", err)
	}
	logger = logger.With("component", "cli", "command", cmd.Name())
	logger.Debug("api client ready", "api", client.BaseURL())
	return client, logger, nil
}

func newTUICmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Start the terminal UI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd, opts)
		},
	}
}

func runTUI(cmd *cobra.Command, opts *rootOptions) error {
	return app.Run(cmd.Context(), opts.appOptions())
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the hostsnap version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "hostsnap version %s\n", version.String())
			return err
		},
	}
}
