package audit

import (
	"context"
	"log/slog"
	"time"
)

// RetentionConfig controls StartRetention.
type RetentionConfig struct {
	MaxAge        time.Duration // entries older than this are purged
	CheckInterval time.Duration // default 24h
}

// StartRetention purges old entries from store immediately and then every
// CheckInterval, until ctx is cancelled. Failures are logged and retried on
// the next tick.
func StartRetention(ctx context.Context, store Store, cfg RetentionConfig) {
	if cfg.MaxAge <= 0 {
		return
	}
	if cfg.CheckInterval <= 0 {
		cfg.CheckInterval = 24 * time.Hour
	}

	slog.Info("audit retention started",
		"max_age", cfg.MaxAge.String(),
		"interval", cfg.CheckInterval.String(),
	)

	purge := func() {
		start := time.Now()
		n, err := store.Purge(ctx, start.Add(-cfg.MaxAge))
		if err != nil {
			slog.Error("audit purge failed", "error", err)
			return
		}
		slog.Info("audit purge completed",
			"entries_purged", n,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}

	purge()

	ticker := time.NewTicker(cfg.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("audit retention stopped")
			return
		case <-ticker.C:
			purge()
		}
	}
}
