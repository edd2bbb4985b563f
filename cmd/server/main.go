// Package main is the entry point for the tickerdeck dashboard service.
// It wires the simulated market state engine (price series, portfolio,
// order entry, widget layout, news feed) to the scheduler that drives it
// and the HTTP server that exposes it.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tickerdeck/internal/catalog"
	"tickerdeck/internal/config"
	"tickerdeck/internal/dashboard"
	"tickerdeck/internal/events"
	"tickerdeck/internal/scheduler"
	"tickerdeck/internal/server"
	"tickerdeck/pkg/logger"
)

func main() {
	// Load configuration first to get log level.
	cfg, err := config.Load()
	if err != nil {
		fallbackLog := logger.New(logger.Config{
			Level:  "info",
			Pretty: true,
		})
		fallbackLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})
	logger.SetGlobalLogger(log)

	log.Info().Msg("Starting tickerdeck")

	// The asset catalog is read-only reference data. A custom catalog file
	// is optional; without one the built-in defaults are used.
	cat := catalog.Default()
	if cfg.CatalogPath != "" {
		cat, err = catalog.LoadFile(cfg.CatalogPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.CatalogPath).Msg("Failed to load asset catalog")
		}
		log.Info().Str("path", cfg.CatalogPath).Int("assets", len(cat.Assets())).Msg("Loaded asset catalog")
	}

	bus := events.NewBus(log)

	session := dashboard.NewSession(dashboard.Config{
		Catalog:         cat,
		Bus:             bus,
		Log:             log,
		SeriesPoints:    cfg.SeriesPoints,
		SeriesBasePrice: cfg.SeriesBasePrice,
	})
	log.Info().
		Uint64("revision", session.Revision()).
		Msg("Dashboard session initialized")

	// Timers are explicit: nothing mutates state until the scheduler starts,
	// and stopping it freezes the simulation.
	sched := scheduler.New(log)
	if err := dashboard.RegisterJobs(sched, session, cfg.SeriesRefresh, cfg.RevalueInterval); err != nil {
		log.Fatal().Err(err).Msg("Failed to register scheduler jobs")
	}
	sched.Start()

	srv := server.New(server.Config{
		Log:     log,
		Port:    cfg.Port,
		DevMode: cfg.DevMode,
		Session: session,
		Bus:     bus,
	})

	go func() {
		if err := srv.Start(); err != nil {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	log.Info().Int("port", cfg.Port).Msg("Server started successfully")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down...")

	sched.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
