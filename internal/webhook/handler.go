// Package webhook is the HTTP connector between the messaging provider and
// the relay. Each webhook request is bridged over one short-lived relay
// session; failures surface to the sender as a friendly TwiML fallback, never
// as an HTTP error.
package webhook

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/narayanss/donordesk/internal/observability/metrics"
	"github.com/narayanss/donordesk/internal/twiml"
	"github.com/narayanss/donordesk/pkg/logging"
)

const (
	validationReply  = "Error: Could not process your message."
	unavailableReply = "I'm sorry, our service is temporarily unavailable. Please try again later."
)

// Handler serves the provider webhook.
type Handler struct {
	relay   *RelayClient
	logger  *logging.Logger
	metrics *metrics.WebhookMetrics
}

// NewHandler creates a webhook handler.
func NewHandler(relay *RelayClient, logger *logging.Logger, m *metrics.WebhookMetrics) *Handler {
	if relay == nil {
		panic("webhook: relay client cannot be nil")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		relay:   relay,
		logger:  logger,
		metrics: m,
	}
}

// Routes returns the connector's router.
func (h *Handler) Routes(metricsHandler http.Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Post("/webhook", h.Webhook)
	r.Get("/health", h.HealthCheck)
	if metricsHandler != nil {
		r.Handle("/metrics", metricsHandler)
	}
	return r
}

// Webhook handles POST /webhook requests from the messaging provider.
func (h *Handler) Webhook(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if err := r.ParseForm(); err != nil {
		h.logger.Error("failed to parse webhook form", "error", err)
		h.metrics.ObserveRequest("invalid")
		writeTwiML(w, validationReply)
		return
	}

	from := r.FormValue("From")
	body := r.FormValue("Body")
	if from == "" || body == "" {
		h.logger.Warn("webhook missing required fields", "sender", from)
		h.metrics.ObserveRequest("invalid")
		writeTwiML(w, validationReply)
		return
	}

	h.logger.Info("webhook received message", "sender", from)

	reply, err := h.relay.Send(r.Context(), from, body)
	h.metrics.ObserveReplyLatency(time.Since(start).Seconds())
	if err != nil {
		reason := "transport"
		if errors.Is(err, ErrReplyTimeout) {
			reason = "timeout"
		}
		h.logger.Error("relay bridge failed", "sender", from, "reason", reason, "error", err)
		h.metrics.ObserveRequest("fallback")
		h.metrics.ObserveFallback(reason)
		writeTwiML(w, unavailableReply)
		return
	}

	h.metrics.ObserveRequest("ok")
	w.Header().Set("Content-Type", "application/xml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(reply))
}

// HealthCheck returns a simple health check response.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func writeTwiML(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "application/xml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(twiml.Message(body)))
}
