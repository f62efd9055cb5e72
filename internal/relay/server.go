// Package relay is the long-running transport server. Each inbound WebSocket
// session carries structured requests from the connector; the relay
// classifies the message, resolves the donor, invokes the conversational
// engine with bounded history, and writes back one TwiML reply per request.
package relay

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/net/websocket"

	"github.com/narayanss/donordesk/internal/conversation"
	"github.com/narayanss/donordesk/internal/donors"
	"github.com/narayanss/donordesk/internal/extract"
	"github.com/narayanss/donordesk/internal/observability/metrics"
	"github.com/narayanss/donordesk/internal/twiml"
	"github.com/narayanss/donordesk/pkg/logging"
)

// EngineFallbackReply is returned when the conversational engine fails.
// Failed exchanges are neither recorded in history nor cached.
const EngineFallbackReply = "Namaste! I apologize for the technical difficulty. Could you please repeat your question or maybe call our helpdesk at +91 88888-55555? I'd be happy to assist you further."

const (
	malformedReply     = "Error: Invalid JSON format."
	missingFieldsReply = "Error: Phone number and message are required."
)

// Request is the structured payload the connector sends per inbound message.
type Request struct {
	From string `json:"From"`
	Body string `json:"Body"`
}

// Server handles relay sessions.
type Server struct {
	engine  conversation.Engine
	history conversation.HistoryStore
	cache   *ReplyCache
	logger  *logging.Logger
	metrics *metrics.RelayMetrics
	tracer  trace.Tracer
	now     func() time.Time
}

// NewServer creates a relay server.
func NewServer(engine conversation.Engine, history conversation.HistoryStore, cache *ReplyCache, logger *logging.Logger, m *metrics.RelayMetrics, tracer trace.Tracer) *Server {
	if engine == nil {
		panic("relay: engine cannot be nil")
	}
	if history == nil {
		panic("relay: history store cannot be nil")
	}
	if cache == nil {
		cache = NewReplyCache(0)
	}
	if logger == nil {
		logger = logging.Default()
	}
	if tracer == nil {
		tracer = otel.Tracer("donordesk.internal.relay")
	}
	return &Server{
		engine:  engine,
		history: history,
		cache:   cache,
		logger:  logger,
		metrics: m,
		tracer:  tracer,
		now:     time.Now,
	}
}

// Routes returns the relay's HTTP handler: the WebSocket endpoint at / plus
// a health check.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})
	mux.Handle("/", s.websocketHandler())
	return mux
}

func (s *Server) websocketHandler() http.Handler {
	return websocket.Server{
		// The connector is not a browser and sends no Origin header.
		Handshake: func(*websocket.Config, *http.Request) error { return nil },
		Handler:   websocket.Handler(s.serveSession),
	}
}

// serveSession runs one transport session: requests in, one reply per
// request out, until the peer closes the connection.
func (s *Server) serveSession(conn *websocket.Conn) {
	defer func() { _ = conn.Close() }()

	sessionID := uuid.NewString()
	ctx := context.Background()
	if r := conn.Request(); r != nil {
		ctx = r.Context()
	}
	log := s.logger.With("session_id", sessionID)
	log.Debug("relay session opened")

	for {
		var raw string
		if err := websocket.Message.Receive(conn, &raw); err != nil {
			log.Debug("relay session closed", "error", err)
			return
		}

		reply := s.handleMessage(ctx, log, raw)
		if err := websocket.Message.Send(conn, reply); err != nil {
			log.Warn("failed to send relay reply", "error", err)
			return
		}
	}
}

func (s *Server) handleMessage(ctx context.Context, log *logging.Logger, raw string) string {
	ctx, span := s.tracer.Start(ctx, "relay.handle_message")
	defer span.End()

	var req Request
	if err := json.Unmarshal([]byte(raw), &req); err != nil {
		log.Error("malformed relay payload", "error", err)
		span.RecordError(err)
		s.metrics.ObserveSession("malformed")
		return twiml.Message(malformedReply)
	}
	if req.From == "" || req.Body == "" {
		log.Error("relay payload missing required fields", "sender", req.From)
		s.metrics.ObserveSession("invalid")
		return twiml.Message(missingFieldsReply)
	}
	span.SetAttributes(attribute.String("donordesk.sender", req.From))

	key := Key(req.From, req.Body)
	if reply, ok := s.cache.Get(key); ok {
		log.Info("reply served from dedup cache", "sender", req.From)
		s.metrics.ObserveDedupHit()
		s.metrics.ObserveSession("cached")
		return reply
	}

	answer, err := s.respond(ctx, log, req)
	if err != nil {
		log.Error("engine failure", "sender", req.From, "error", err)
		span.RecordError(err)
		s.metrics.ObserveEngineError()
		s.metrics.ObserveSession("engine_error")
		return twiml.Message(EngineFallbackReply)
	}

	formatted := twiml.Message(answer)
	s.cache.Put(key, formatted)
	s.metrics.ObserveSession("ok")
	return formatted
}

// respond runs the full pipeline for a fresh message: extraction, identity
// resolution, history lookup, engine call, history append.
func (s *Server) respond(ctx context.Context, log *logging.Logger, req Request) (string, error) {
	info := extract.Extract(req.Body)
	intent := extract.Classify(req.Body)

	donorID, resolved := donors.Resolve(info, req.From)
	donorContext := donors.Context(donorID)
	log.Info("processing message",
		"sender", req.From,
		"intent", string(intent),
		"donor_id", donorID,
		"resolved", resolved,
	)

	history, err := s.history.History(ctx, req.From)
	if err != nil {
		// Degrade to a fresh conversation rather than failing the session.
		log.Warn("failed to load history", "sender", req.From, "error", err)
		history = nil
	}

	var prompt string
	if len(history) == 0 {
		prompt = conversation.FirstContactPrompt(donorContext, s.now())
	} else {
		prompt = conversation.ContinuationPrompt(donorContext, s.now())
	}

	start := time.Now()
	answer, err := s.engine.Reply(ctx, conversation.ReplyRequest{
		Query:        req.Body,
		SystemPrompt: prompt,
		History:      conversation.Window(history),
	})
	s.metrics.ObserveEngineLatency(time.Since(start).Seconds())
	if err != nil {
		return "", err
	}

	if err := s.history.AppendExchange(ctx, req.From,
		conversation.Turn{Role: conversation.RoleUser, Content: req.Body},
		conversation.Turn{Role: conversation.RoleAssistant, Content: answer},
	); err != nil {
		log.Error("failed to record exchange", "sender", req.From, "error", err)
	}
	return answer, nil
}
