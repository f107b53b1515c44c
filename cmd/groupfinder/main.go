package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/shivam1584818/fb-group-finder-backend/internal/api"
	"github.com/shivam1584818/fb-group-finder-backend/internal/config"
	"github.com/shivam1584818/fb-group-finder-backend/internal/extractor"
	"github.com/shivam1584818/fb-group-finder-backend/internal/logger"
	"github.com/shivam1584818/fb-group-finder-backend/internal/renderer"
	"github.com/shivam1584818/fb-group-finder-backend/internal/rslimiter"
	"github.com/shivam1584818/fb-group-finder-backend/internal/scanner"
)

const shutdownTimeout = 15 * time.Second

func main() {
	flags := ParseFlags()

	gCfg, err := config.LoadGlobalConfig(flags.GlobalConfigFile)
	if err != nil {
		log.Fatalf("[FATAL] Main: Could not load global config using path '%s': %v", flags.GlobalConfigFile, err)
	}

	appLogger, err := logger.New(gCfg.LogConfig)
	if err != nil {
		log.Fatalf("[FATAL] Main: Could not initialize logger: %v", err)
	}
	defer func() { _ = appLogger.Close() }()

	zLogger := *appLogger.GetZerolog()

	if err := config.ValidateConfig(gCfg); err != nil {
		zLogger.Fatal().Err(err).Msg("Configuration validation failed")
	}
	zLogger.Info().
		Str("renderer_mode", gCfg.RendererConfig.Mode).
		Int("max_concurrency", gCfg.ScanConfig.MaxConcurrency).
		Int("scan_limit", gCfg.ScanConfig.ScanLimit).
		Bool("login_enabled", gCfg.LoginConfig.Enabled()).
		Msg("Configuration loaded")

	if err := run(gCfg, zLogger); err != nil {
		zLogger.Error().Err(err).Msg("Service stopped with error")
		_ = appLogger.Close()
		os.Exit(1)
	}
}

func run(gCfg *config.GlobalConfig, zLogger zerolog.Logger) error {
	gateway, err := renderer.NewGateway(gCfg.RendererConfig, gCfg.LoginConfig, zLogger)
	if err != nil {
		return err
	}
	if err := gateway.Start(); err != nil {
		return err
	}
	defer gateway.Stop()

	limiter := rslimiter.NewResourceLimiter(gCfg.ResourceLimiterConfig, zLogger)
	limiter.Start()
	defer limiter.Stop()

	groupScanner := scanner.NewScanner(gCfg.ScanConfig, gateway, extractor.New(gCfg.ExtractorConfig), zLogger)
	router := api.SetupRouter(gCfg.ServerConfig, groupScanner, limiter, zLogger)
	srv := api.NewHTTPServer(gCfg.ServerConfig, router)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		zLogger.Info().Str("addr", srv.Addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
		zLogger.Info().Msg("Shutdown signal received, stopping HTTP server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zLogger.Warn().Err(err).Msg("HTTP server did not shut down cleanly")
	}
	zLogger.Info().Msg("Service stopped")
	return nil
}
