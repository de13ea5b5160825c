package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/five82/hostsnap/internal/config"
	"github.com/five82/hostsnap/internal/logging"
	"github.com/five82/hostsnap/internal/prefs"
	"github.com/five82/hostsnap/internal/snapshot"
	"github.com/five82/hostsnap/internal/state"
	"github.com/five82/hostsnap/internal/ui"
)

// Options configure the hostsnap application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/hostsnap/prefs.toml
	APIBase    string // overrides api_base from the config file
	LogLevel   slog.Level
}

// LoadConfig reads the config file and applies the overrides in opts.
func LoadConfig(opts Options) (config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	if base := strings.TrimSpace(opts.APIBase); base != "" {
		cfg.APIBase = base
	}
	return cfg, nil
}

// Run boots the hostsnap TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := LoadConfig(opts)
	if err != nil {
		return err
	}

	logger, closeLog, err := logging.Setup(logging.Options{
		Mode:    logging.ModeTUI,
		Level:   opts.LogLevel,
		LogFile: cfg.LogFile,
	})
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer func() { _ = closeLog() }()

	userPrefs := prefs.Load(opts.PrefsPath)

	client, err := snapshot.NewClient(cfg.APIBase, cfg.RequestTimeout)
	if err != nil {
		return fmt.Errorf("init snapshot client: %w", err)
	}
	logger.Info("starting", "api", client.BaseURL(), "log_file", cfg.LogFile)

	store := &state.Store{}

	// Initial refresh so the host list is there when the UI starts
	refresh(ctx, store, client, logger.With("component", "poller"))

	StartPoller(ctx, store, client, cfg.PollInterval, logger)

	uiOpts := ui.Options{
		Context:        ctx,
		Client:         client,
		Store:          store,
		Logger:         logger,
		PollTick:       ui.DefaultUIInterval,
		RequestTimeout: cfg.RequestTimeout,
		ThemeName:      userPrefs.Theme,
		Format:         snapshot.ParseFormat(userPrefs.ContentFormat),
		PrefsPath:      opts.PrefsPath,
		APIBase:        client.BaseURL(),
	}
	return ui.Run(uiOpts)
}
