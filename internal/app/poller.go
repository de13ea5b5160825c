package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/five82/hostsnap/internal/state"
)

const (
	defaultPollInterval = 10 * time.Second
	maxBackoff          = 30 * time.Second
)

// HostLister is the part of the gateway the poller needs.
type HostLister interface {
	ListHosts(ctx context.Context) ([]string, error)
}

// StartPoller launches a background goroutine that refreshes the host list.
// It waits interval between successful polls and backs off exponentially
// while the API is failing. It returns immediately.
func StartPoller(ctx context.Context, store *state.Store, client HostLister, interval time.Duration, logger *slog.Logger) {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "poller")
	go func() {
		timer := time.NewTimer(interval)
		defer timer.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-timer.C:
			}
			refresh(ctx, store, client, logger)
			timer.Reset(calculateBackoff(store.Failures(), interval))
		}
	}()
}

// calculateBackoff doubles base for each consecutive failure, capped at
// maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	if failures >= 31 {
		return maxBackoff
	}
	d := base << failures
	if d <= 0 || d > maxBackoff {
		return maxBackoff
	}
	return d
}

func refresh(ctx context.Context, store *state.Store, client HostLister, logger *slog.Logger) {
	hosts, err := client.ListHosts(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		store.Update(nil, err)
		logger.Warn("host poll failed", "error", err, "failures", store.Failures())
		return
	}
	store.Update(hosts, nil)
	logger.Debug("host poll", "hosts", len(hosts))
}
