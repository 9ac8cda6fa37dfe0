package main

import (
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/stillpoint/junction/internal/config"
	"github.com/stillpoint/junction/internal/lifecycle"
	"github.com/stillpoint/junction/internal/server"
	"github.com/stillpoint/junction/internal/transport"
	"github.com/stillpoint/junction/pkg/logging"
	"github.com/stillpoint/junction/pkg/router"
)

func main() {
	bootLogger := logging.New(&logging.Config{Level: logging.LevelInfo, Format: logging.FormatText})

	cfg, err := config.Load(config.BaseConfigFile)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			bootLogger.Error("failed to load configuration", "error", err)
			os.Exit(1)
		}
		// no config file, run on defaults
		cfg = &config.Config{}
	}
	if err := cfg.Finalize(); err != nil {
		bootLogger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logCfg := cfg.Logging
	if cfg.Server.Debug {
		logCfg.Level = logging.LevelDebug
	}
	logger := logging.New(&logCfg)

	lc := lifecycle.New()

	table := router.NewTable()
	if err := registerRoutes(table, logger, lc); err != nil {
		logger.Error("route registration failed", "error", err)
		os.Exit(1)
	}

	dispatcher := router.NewDispatcher(table, logger, cfg.Server.Debug)
	handler := transport.New(dispatcher, logger, cfg.Server.MaxBodySizeBytes())

	srv := server.New(&cfg.Server, handler, logger)
	if err := srv.Start(lc); err != nil {
		logger.Error("server start failed", "error", err)
		os.Exit(1)
	}

	lc.WaitForStartup()
	logger.Info("serving",
		"addr", cfg.Server.Addr(),
		"routes", table.Len(),
		"debug", cfg.Server.Debug,
	)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	if err := lc.Shutdown(cfg.Server.ShutdownTimeoutDuration()); err != nil {
		logger.Error("shutdown error", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
