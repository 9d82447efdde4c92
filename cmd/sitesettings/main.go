package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ericfisherdev/sitesettings/internal/adapter/driven/ratelimit"
	"github.com/ericfisherdev/sitesettings/internal/adapter/driven/sitefile"
	sqliteadapter "github.com/ericfisherdev/sitesettings/internal/adapter/driven/sqlite"
	httphandler "github.com/ericfisherdev/sitesettings/internal/adapter/driving/http"
	"github.com/ericfisherdev/sitesettings/internal/application"
	"github.com/ericfisherdev/sitesettings/internal/config"
	"github.com/ericfisherdev/sitesettings/internal/domain/port/driven"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load configuration (fail fast on invalid env vars).
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	slog.Info("config loaded",
		"listen_addr", cfg.ListenAddr,
		"db_path", cfg.DBPath,
		"site_file", cfg.SiteFile,
		"watch", cfg.Watch,
		"log_level", cfg.LogLevel.String(),
		"write_rate", cfg.WriteRate,
		"write_burst", cfg.WriteBurst,
	)

	// 2. Setup signal-based context (SIGINT, SIGTERM).
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Open database (dual reader/writer with WAL mode).
	db, err := sqliteadapter.NewDB(ctx, cfg.DBPath)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()
	slog.Info("database opened", "path", db.Path())

	// 4. Run migrations on writer connection.
	if err := sqliteadapter.RunMigrations(db.Writer); err != nil {
		return err
	}
	slog.Info("migrations complete")

	// 5. Wire adapters. The source stays a nil interface when no site file
	// is configured so the provider falls back to the built-in defaults.
	overrideStore := sqliteadapter.NewOverrideRepo(db)

	var source driven.SettingsSource
	if cfg.HasSiteFile() {
		loader, err := sitefile.NewLoader(cfg.SiteFile)
		if err != nil {
			return err
		}
		source = loader
		slog.Info("site file configured", "path", loader.Path())
	} else {
		slog.Info("no site file configured, serving built-in defaults")
	}

	// 6. Build the first snapshot. A broken site file or override aborts startup.
	sanitizer := application.NewSanitizer()
	provider := application.NewSettingsProvider(source, overrideStore, sanitizer, logger)
	if err := provider.Reload(ctx); err != nil {
		return err
	}

	// 7. Optionally reload whenever the site file changes on disk.
	if cfg.Watch {
		watcher, err := sitefile.NewWatcher(cfg.SiteFile, cfg.WatchDebounce, logger, func() {
			reloadCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			// Reload logs its own failures and keeps the previous snapshot.
			_ = provider.Reload(reloadCtx)
		})
		if err != nil {
			return err
		}
		watcher.Start()
		defer watcher.Stop()
		slog.Info("watching site file", "path", cfg.SiteFile, "debounce", cfg.WatchDebounce)
	}

	overrideSvc := application.NewOverrideService(overrideStore, provider, sanitizer, logger)

	// 8. Throttle write endpoints per client.
	writeLimiter := ratelimit.NewTokenBucketStore(cfg.WriteRate, cfg.WriteBurst, 10*time.Minute)
	defer writeLimiter.Stop()

	// 9. Create HTTP handler and register API routes.
	apiHandler := httphandler.NewHandler(provider, overrideSvc, writeLimiter, logger)
	handler := httphandler.NewServeMux(apiHandler, logger)

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("http server starting", "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	slog.Info("sitesettings started", "listen_addr", cfg.ListenAddr)

	// 10. Wait for shutdown signal or a listener failure.
	select {
	case <-ctx.Done():
		slog.Info("shutting down")
	case err := <-serveErr:
		if err != nil {
			return err
		}
	}

	// 11. Graceful shutdown with 10s timeout for in-flight requests.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("http server shutdown error", "error", err)
	}

	slog.Info("shutdown complete")
	return nil
}
