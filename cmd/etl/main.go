package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/athletics-rankings-etl/internal/adapter/filecache"
	httpadapter "github.com/couchcryptid/athletics-rankings-etl/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/athletics-rankings-etl/internal/adapter/kafka"
	"github.com/couchcryptid/athletics-rankings-etl/internal/adapter/memory"
	"github.com/couchcryptid/athletics-rankings-etl/internal/adapter/source"
	"github.com/couchcryptid/athletics-rankings-etl/internal/adapter/sqlite"
	"github.com/couchcryptid/athletics-rankings-etl/internal/catalog"
	"github.com/couchcryptid/athletics-rankings-etl/internal/config"
	"github.com/couchcryptid/athletics-rankings-etl/internal/domain"
	"github.com/couchcryptid/athletics-rankings-etl/internal/observability"
	"github.com/couchcryptid/athletics-rankings-etl/internal/pipeline"
	"github.com/jonboulle/clockwork"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	cat, err := catalog.Load(cfg.EventCatalogFile)
	if err != nil {
		logger.Error("failed to load event catalog", "error", err)
		os.Exit(1)
	}

	store, closeStore, err := openStore(cfg)
	if err != nil {
		logger.Error("failed to open result cache", "backend", cfg.CacheBackend, "error", err)
		os.Exit(1)
	}
	logger.Info("result cache ready", "backend", cfg.CacheBackend, "ttl", cfg.CacheTTL)

	client := source.NewClient(cfg.SourceBaseURL, cfg.SourceUserAgent, cfg.SourceTimeout, logger)
	transformer := pipeline.NewTransformer(logger, metrics)
	cache := pipeline.NewResultCache(store, cfg.CacheTTL, clockwork.NewRealClock())

	// Kafka sink is feature-flagged via KAFKA_BROKERS.
	var (
		loaders []pipeline.Loader
		writer  *kafkaadapter.Writer
	)
	if cfg.KafkaEnabled() {
		writer = kafkaadapter.NewWriter(cfg, logger, metrics)
		loaders = append(loaders, writer)
		logger.Info("kafka sink enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaSinkTopic)
	} else {
		logger.Info("kafka sink disabled")
	}

	p := pipeline.New(cat, client, transformer, cache, logger, metrics, loaders...)

	srv := httpadapter.NewServer(cfg.HTTPAddr, p, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start scheduled refresh.
	if cfg.RefreshSchedule != "" {
		go func() {
			if err := p.Run(ctx, cfg.RefreshSchedule); err != nil {
				logger.Error("refresh scheduler error", "error", err)
			}
		}()
	}

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}
	if err := closeStore(); err != nil {
		logger.Error("result cache close error", "error", err)
	}

	logger.Info("shutdown complete")
}

// openStore builds the configured durable store behind an in-memory LRU front.
// The memory backend is used on its own.
func openStore(cfg *config.Config) (domain.ResultStore, func() error, error) {
	noop := func() error { return nil }

	switch cfg.CacheBackend {
	case config.CacheBackendMemory:
		return memory.NewStore(cfg.CacheMemorySize), noop, nil
	case config.CacheBackendSQLite:
		s, err := sqlite.New(cfg.CacheDSN)
		if err != nil {
			return nil, nil, err
		}
		return memory.NewCachedStore(s, cfg.CacheMemorySize), s.Close, nil
	case config.CacheBackendFile:
		s, err := filecache.New(cfg.CacheDir)
		if err != nil {
			return nil, nil, err
		}
		return memory.NewCachedStore(s, cfg.CacheMemorySize), noop, nil
	default:
		return nil, nil, fmt.Errorf("unknown cache backend %q", cfg.CacheBackend)
	}
}
