package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/krutagidon/krutagidon-server-go/internal/catalog"
	"github.com/krutagidon/krutagidon-server-go/internal/config"
	"github.com/krutagidon/krutagidon-server-go/internal/game"
	"github.com/krutagidon/krutagidon-server-go/internal/notify"
	"github.com/krutagidon/krutagidon-server-go/internal/server"
	"github.com/krutagidon/krutagidon-server-go/internal/store"
)

var (
	configPath = flag.String("config", "config/config.yaml", "path to configuration file")
	version    = "dev" // set via ldflags during build
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := initLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting Krutagidon server",
		zap.String("version", version),
		zap.String("config", *configPath),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	memory := store.NewMemory()
	var gameStore game.Store = memory
	switch cfg.Database.Driver {
	case "sqlite":
		sqliteStore, err := store.NewSQLite(ctx, cfg.Database.Path, logger)
		if err != nil {
			logger.Fatal("failed to open sqlite store", zap.Error(err))
		}
		defer sqliteStore.Close()
		gameStore = sqliteStore
	case "postgres":
		pgStore, err := store.NewPostgres(ctx, cfg.Database.DSN, logger)
		if err != nil {
			logger.Fatal("failed to connect to postgres", zap.Error(err))
		}
		defer pgStore.Close()
		gameStore = pgStore
	}
	logger.Info("game store initialized", zap.String("driver", cfg.Database.Driver))

	hub := notify.NewHub(logger)
	logger.Info("notification hub initialized")

	seed := cfg.Game.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	engine := game.NewEngine(gameStore, memory, hub, catalog.New(), logger, rng, game.Options{
		StrictEffects: cfg.Game.StrictEffects,
		PendingTTL:    cfg.Game.PendingTTL,
	})
	logger.Info("game engine initialized",
		zap.Bool("strict_effects", cfg.Game.StrictEffects),
		zap.Duration("pending_ttl", cfg.Game.PendingTTL),
	)

	httpServer := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: server.New(engine, hub, logger),
	}

	go func() {
		logger.Info("starting HTTP server", zap.String("address", cfg.Server.Address))
		if serveErr := httpServer.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			logger.Error("HTTP server error", zap.Error(serveErr))
		}
	}()

	logger.Info("Krutagidon server initialized",
		zap.String("version", version),
		zap.String("address", cfg.Server.Address),
	)

	sig := <-sigChan
	logger.Info("received shutdown signal", zap.String("signal", sig.String()))

	logger.Info("shutting down gracefully...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn("HTTP server shutdown incomplete", zap.Error(err))
	}

	logger.Info("Krutagidon server stopped")
}

// initLogger initializes the zap logger based on configuration
func initLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	switch cfg.Level {
	case "debug":
		level = zapcore.DebugLevel
	case "info":
		level = zapcore.InfoLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	default:
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
