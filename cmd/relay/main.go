package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	appconfig "github.com/narayanss/donordesk/internal/config"
	"github.com/narayanss/donordesk/internal/conversation"
	"github.com/narayanss/donordesk/internal/observability/metrics"
	"github.com/narayanss/donordesk/internal/relay"
	"github.com/narayanss/donordesk/pkg/logging"
)

func main() {
	_ = godotenv.Load()
	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting donordesk relay",
		"env", cfg.Env,
		"addr", cfg.RelayListenAddr,
	)

	engine, err := conversation.NewGeminiEngine(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel, cfg.EngineMaxTokens)
	if err != nil {
		logger.Error("failed to create conversational engine", "error", err)
		os.Exit(1)
	}
	defer func() { _ = engine.Close() }()

	var history conversation.HistoryStore
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		defer func() { _ = client.Close() }()
		history = conversation.NewRedisHistoryStore(client, cfg.SessionTTL, nil)
		logger.Info("using redis history store", "addr", cfg.RedisAddr)
	} else {
		history = conversation.NewMemoryHistoryStore(cfg.SessionMaxSenders)
		logger.Info("using in-memory history store", "max_senders", cfg.SessionMaxSenders)
	}

	relayMetrics := metrics.NewRelayMetrics(prometheus.DefaultRegisterer)
	server := relay.NewServer(engine, history, relay.NewReplyCache(cfg.DedupCapacity), logger, relayMetrics, nil)

	srv := &http.Server{
		Addr:        cfg.RelayListenAddr,
		Handler:     server.Routes(),
		IdleTimeout: 60 * time.Second,
	}

	go func() {
		logger.Info("relay listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("relay server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down relay...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("relay forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("relay stopped")
}
