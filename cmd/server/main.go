package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/JonMunkholm/cop30utils/internal/audit"
	"github.com/JonMunkholm/cop30utils/internal/config"
	"github.com/JonMunkholm/cop30utils/internal/core"
	_ "github.com/JonMunkholm/cop30utils/internal/core/tools" // Register all tools
	"github.com/JonMunkholm/cop30utils/internal/gender"
	"github.com/JonMunkholm/cop30utils/internal/logging"
	"github.com/JonMunkholm/cop30utils/internal/sheet"
	"github.com/JonMunkholm/cop30utils/internal/web"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	// Load and validate configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logging based on config
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"jobs_max_concurrent", cfg.Jobs.MaxConcurrent,
		"rate_limit_enabled", cfg.Rate.Enabled,
		"gender_enabled", cfg.Gender.Enabled,
		"audit_database", cfg.Audit.Enabled(),
	)

	ctx := context.Background()

	store, err := openAuditStore(ctx, &cfg.Audit)
	if err != nil {
		slog.Error("failed to open run log", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	detector, closeDetector, err := newDetector(&cfg.Gender)
	if err != nil {
		slog.Error("failed to set up gender detection", "error", err)
		os.Exit(1)
	}
	defer closeDetector()

	service := core.NewService(core.ServiceConfig{
		Limiter:                 core.NewJobLimiter(cfg.Jobs.MaxConcurrent, cfg.Jobs.MaxWaitTime),
		Recorder:                store,
		Codec:                   sheet.Codec{SheetName: cfg.Duplicates.SheetName},
		Detector:                detector,
		DefaultDuplicateColumns: cfg.Duplicates.DefaultColumns,
		JobTimeout:              cfg.Jobs.Timeout,
		MaxGenderLines:          cfg.Gender.MaxLines,
		MaxZipNames:             cfg.PhotoZip.MaxNames,
	})

	// Log registered tools
	slog.Info("tools registered",
		"count", core.ToolCount(),
		"groups", len(core.Groups()),
	)
	for _, group := range core.Groups() {
		slog.Debug("tool group", "group", group, "tools", len(core.ByGroup(group)))
	}

	// Create server with config
	server := web.NewServer(service, cfg)

	// Create cancellable context for background jobs
	jobCtx, cancelJobs := context.WithCancel(context.Background())
	defer cancelJobs()

	go audit.StartRetention(jobCtx, store, audit.RetentionConfig{
		MaxAge:        cfg.Audit.Retention(),
		CheckInterval: cfg.Audit.CheckInterval,
	})

	// Graceful shutdown
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		// Stop background jobs
		cancelJobs()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		// Wait for running tool jobs (with timeout)
		if st := service.JobStatus(); st.Active > 0 {
			slog.Info("waiting for jobs to complete", "active", st.Active)
			if err := service.WaitForJobs(shutdownCtx); err != nil {
				slog.Warn("jobs did not complete in time", "error", err)
			} else {
				slog.Info("all jobs completed")
			}
		}

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	// Start server (uses addr from config internally)
	if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
	<-stopped
	slog.Info("server stopped")
}

// openAuditStore connects to PostgreSQL when a database URL is configured and
// otherwise keeps recent runs in memory.
func openAuditStore(ctx context.Context, cfg *config.AuditConfig) (audit.Store, error) {
	if !cfg.Enabled() {
		slog.Info("no database configured, run log kept in memory", "entries", cfg.MemoryEntries)
		return audit.NewLogRecorder(cfg.MemoryEntries), nil
	}

	// Parse and configure connection pool
	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	poolConfig.MaxConns = int32(cfg.MaxConns)
	poolConfig.MinConns = int32(cfg.MinConns)
	poolConfig.MaxConnLifetime = cfg.MaxConnLifetime
	poolConfig.MaxConnIdleTime = cfg.MaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	// Log which database we connected to
	if u, err := url.Parse(cfg.DatabaseURL); err == nil {
		slog.Info("connected to database", "name", strings.TrimPrefix(u.Path, "/"))
	} else {
		slog.Info("connected to database")
	}

	rec, err := audit.NewPostgresRecorder(ctx, pool)
	if err != nil {
		pool.Close()
		return nil, err
	}
	return rec, nil
}

// newDetector builds the gender detector, or returns nil when the tool is
// disabled. The returned func releases the cache file.
func newDetector(cfg *config.GenderConfig) (*gender.Detector, func(), error) {
	if !cfg.Enabled {
		slog.Info("gender detection disabled")
		return nil, func() {}, nil
	}

	var resolver gender.Resolver = gender.NewGenderizeClient(cfg.APIURL, cfg.APIKey, cfg.Timeout)
	closeFn := func() {}

	if cfg.CachePath != "" {
		cache, err := gender.OpenCache(cfg.CachePath, resolver)
		if err != nil {
			return nil, nil, err
		}
		slog.Info("gender cache opened", "path", cfg.CachePath, "names", cache.Len())
		resolver = cache
		closeFn = func() {
			if err := cache.Close(); err != nil {
				slog.Warn("closing gender cache", "error", err)
			}
		}
	}

	return gender.NewDetector(resolver, cfg.Delay), closeFn, nil
}
