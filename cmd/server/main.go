// Recstudy - News Recommendation Expert Study
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recstudy

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/tomtom215/recstudy/internal/api"
	"github.com/tomtom215/recstudy/internal/articles"
	"github.com/tomtom215/recstudy/internal/config"
	"github.com/tomtom215/recstudy/internal/feedback"
	"github.com/tomtom215/recstudy/internal/logging"
	"github.com/tomtom215/recstudy/internal/metrics"
	"github.com/tomtom215/recstudy/internal/recommend"
	"github.com/tomtom215/recstudy/internal/session"
	"github.com/tomtom215/recstudy/internal/storage"
	"github.com/tomtom215/recstudy/internal/supervisor"
	"github.com/tomtom215/recstudy/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// gcInterval is how often badger value log GC runs.
const gcInterval = 10 * time.Minute

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
		Service:   "recstudy",
	})
	metrics.SetAppInfo(version, runtime.Version())

	logging.Info().
		Str("version", version).
		Str("environment", cfg.Server.Environment).
		Str("feedback_backend", cfg.Storage.Backend).
		Bool("predetermined_flow", cfg.Study.PredeterminedFlow).
		Msg("Starting recstudy")

	// The study cannot run without its article tables.
	store, err := articles.Load(cfg.Data.ReferencePath, cfg.Data.CatalogPath)
	if err != nil {
		logging.Fatal().Err(err).
			Str("reference", cfg.Data.ReferencePath).
			Str("catalog", cfg.Data.CatalogPath).
			Msg("Failed to load article tables")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stores, err := storage.Open(ctx, cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open storage")
	}
	defer func() {
		closeCtx, closeCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer closeCancel()
		if err := stores.Close(closeCtx); err != nil {
			logging.Error().Err(err).Msg("Error closing storage")
		}
	}()

	sessions, err := session.NewManager(stores.Sessions, &session.Config{
		CookieName:     cfg.Session.CookieName,
		SecretKey:      cfg.Session.SecretKey,
		MaxAge:         cfg.Session.MaxAge,
		CookiePath:     "/",
		CookieSecure:   cfg.Session.CookieSecure,
		CookieHTTPOnly: true,
		CookieSameSite: cfg.Session.SameSiteMode(),
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create session manager")
	}

	exporter := feedback.NewExporter(stores.Feedback, cfg.Export.Path, cfg.Export.MinInterval)

	handler, err := api.NewHandler(api.Dependencies{
		Config:   cfg,
		Articles: store,
		Engine:   recommend.NewEngine(store, logging.WithComponent("recommend")),
		Sessions: sessions,
		Feedback: stores.Feedback,
		Exporter: exporter,
		Version:  version,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create API handler")
	}

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           api.NewRouter(handler, cfg).SetupChi(),
		ReadTimeout:       cfg.Server.Timeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       2 * cfg.Server.Timeout,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	tree.AddStorageService(services.NewBadgerGCService(stores.DB, gcInterval))
	if cfg.Export.Interval > 0 {
		tree.AddStorageService(services.NewExportService(exporter, cfg.Export.Interval))
	} else {
		logging.Info().Msg("Periodic feedback export disabled (export.interval = 0)")
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
		if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Application stopped gracefully")
}
