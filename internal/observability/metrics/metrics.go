package metrics

import "github.com/prometheus/client_golang/prometheus"

// WebhookMetrics exposes counters/histograms for the connector's webhook flow.
type WebhookMetrics struct {
	requestsTotal  *prometheus.CounterVec
	fallbacksTotal *prometheus.CounterVec
	replyLatency   prometheus.Histogram
}

func NewWebhookMetrics(reg prometheus.Registerer) *WebhookMetrics {
	m := &WebhookMetrics{
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "donordesk",
			Subsystem: "webhook",
			Name:      "requests_total",
			Help:      "Total inbound webhook requests",
		}, []string{"status"}),
		fallbacksTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "donordesk",
			Subsystem: "webhook",
			Name:      "fallbacks_total",
			Help:      "Fallback replies returned instead of a relay reply",
		}, []string{"reason"}),
		replyLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "donordesk",
			Subsystem: "webhook",
			Name:      "reply_latency_seconds",
			Help:      "Latency of relay round trips",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.requestsTotal, m.fallbacksTotal, m.replyLatency)
	return m
}

func (m *WebhookMetrics) ObserveRequest(status string) {
	if m == nil {
		return
	}
	m.requestsTotal.WithLabelValues(status).Inc()
}

func (m *WebhookMetrics) ObserveFallback(reason string) {
	if m == nil {
		return
	}
	m.fallbacksTotal.WithLabelValues(reason).Inc()
}

func (m *WebhookMetrics) ObserveReplyLatency(seconds float64) {
	if m == nil {
		return
	}
	m.replyLatency.Observe(seconds)
}

// RelayMetrics exposes counters/histograms for relay session handling.
type RelayMetrics struct {
	sessionsTotal *prometheus.CounterVec
	dedupHits     prometheus.Counter
	engineLatency prometheus.Histogram
	engineErrors  prometheus.Counter
}

func NewRelayMetrics(reg prometheus.Registerer) *RelayMetrics {
	m := &RelayMetrics{
		sessionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "donordesk",
			Subsystem: "relay",
			Name:      "sessions_total",
			Help:      "Total relay sessions by outcome",
		}, []string{"outcome"}),
		dedupHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "donordesk",
			Subsystem: "relay",
			Name:      "dedup_hits_total",
			Help:      "Replies served from the dedup cache",
		}),
		engineLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "donordesk",
			Subsystem: "relay",
			Name:      "engine_latency_seconds",
			Help:      "Latency of conversational engine calls",
			Buckets:   prometheus.DefBuckets,
		}),
		engineErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "donordesk",
			Subsystem: "relay",
			Name:      "engine_errors_total",
			Help:      "Conversational engine failures",
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.sessionsTotal, m.dedupHits, m.engineLatency, m.engineErrors)
	return m
}

func (m *RelayMetrics) ObserveSession(outcome string) {
	if m == nil {
		return
	}
	m.sessionsTotal.WithLabelValues(outcome).Inc()
}

func (m *RelayMetrics) ObserveDedupHit() {
	if m == nil {
		return
	}
	m.dedupHits.Inc()
}

func (m *RelayMetrics) ObserveEngineLatency(seconds float64) {
	if m == nil {
		return
	}
	m.engineLatency.Observe(seconds)
}

func (m *RelayMetrics) ObserveEngineError() {
	if m == nil {
		return
	}
	m.engineErrors.Inc()
}
