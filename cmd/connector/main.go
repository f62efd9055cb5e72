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
	"github.com/prometheus/client_golang/prometheus/promhttp"

	appconfig "github.com/narayanss/donordesk/internal/config"
	"github.com/narayanss/donordesk/internal/observability/metrics"
	"github.com/narayanss/donordesk/internal/webhook"
	"github.com/narayanss/donordesk/pkg/logging"
)

func main() {
	_ = godotenv.Load()
	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting donordesk connector",
		"env", cfg.Env,
		"port", cfg.Port,
		"relay_addr", cfg.RelayAddr,
	)

	relayClient := webhook.NewRelayClient(cfg.RelayAddr, cfg.ReplyTimeout, cfg.HandshakeTimeout)
	webhookMetrics := metrics.NewWebhookMetrics(prometheus.DefaultRegisterer)
	handler := webhook.NewHandler(relayClient, logger, webhookMetrics)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler.Routes(promhttp.Handler()),
		// The relay bridge can legitimately take the full reply timeout.
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.ReplyTimeout + 10*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("connector listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("connector server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down connector...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("connector forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("connector stopped")
}
