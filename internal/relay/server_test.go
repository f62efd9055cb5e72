package relay

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	gws "github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/narayanss/donordesk/internal/conversation"
	"github.com/narayanss/donordesk/internal/twiml"
)

type stubEngine struct {
	mu      sync.Mutex
	calls   int
	lastReq conversation.ReplyRequest
	reply   string
	err     error
}

func (e *stubEngine) Reply(_ context.Context, req conversation.ReplyRequest) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.calls++
	e.lastReq = req
	if e.err != nil {
		return "", e.err
	}
	return e.reply, nil
}

func (e *stubEngine) callCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.calls
}

func (e *stubEngine) last() conversation.ReplyRequest {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastReq
}

func newTestRelay(t *testing.T, engine conversation.Engine, store conversation.HistoryStore) (*httptest.Server, *ReplyCache) {
	t.Helper()
	if store == nil {
		store = conversation.NewMemoryHistoryStore(100)
	}
	cache := NewReplyCache(100)
	srv := NewServer(engine, store, cache, nil, nil, nil)
	ts := httptest.NewServer(srv.Routes())
	t.Cleanup(ts.Close)
	return ts, cache
}

func dialRelay(t *testing.T, ts *httptest.Server) *gws.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http")
	conn, _, err := gws.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func roundTrip(t *testing.T, conn *gws.Conn, payload string) string {
	t.Helper()
	require.NoError(t, conn.WriteMessage(gws.TextMessage, []byte(payload)))
	_, reply, err := conn.ReadMessage()
	require.NoError(t, err)
	return string(reply)
}

func requestJSON(t *testing.T, from, body string) string {
	t.Helper()
	data, err := json.Marshal(Request{From: from, Body: body})
	require.NoError(t, err)
	return string(data)
}

func TestRelayRepliesWithFormattedAnswer(t *testing.T) {
	engine := &stubEngine{reply: "Namaste Arvin ji! Your donation is confirmed."}
	store := conversation.NewMemoryHistoryStore(100)
	ts, _ := newTestRelay(t, engine, store)
	conn := dialRelay(t, ts)

	reply := roundTrip(t, conn, requestJSON(t, "whatsapp:+919780086800", "Has my UTR123456 gone through?"))

	assert.Equal(t, twiml.Message("Namaste Arvin ji! Your donation is confirmed."), reply)
	assert.Equal(t, 1, engine.callCount())

	// The engine got the resolved donor's context in the system prompt.
	assert.Contains(t, engine.last().SystemPrompt, "Arvin Kumar")
	assert.Contains(t, engine.last().SystemPrompt, "UTR123456")

	// The exchange was recorded.
	turns, err := store.History(context.Background(), "whatsapp:+919780086800")
	require.NoError(t, err)
	require.Len(t, turns, 2)
	assert.Equal(t, conversation.RoleUser, turns[0].Role)
	assert.Equal(t, "Namaste Arvin ji! Your donation is confirmed.", turns[1].Content)
}

func TestRelayDedupShortCircuit(t *testing.T) {
	engine := &stubEngine{reply: "first reply"}
	ts, _ := newTestRelay(t, engine, nil)

	payload := requestJSON(t, "whatsapp:+919876543210", "I want to donate today")

	first := roundTrip(t, dialRelay(t, ts), payload)
	second := roundTrip(t, dialRelay(t, ts), payload)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, engine.callCount(), "duplicate message must not re-invoke the engine")
}

func TestRelayMalformedPayload(t *testing.T) {
	engine := &stubEngine{reply: "unused"}
	ts, _ := newTestRelay(t, engine, nil)
	conn := dialRelay(t, ts)

	reply := roundTrip(t, conn, "this is not json")
	assert.Equal(t, twiml.Message("Error: Invalid JSON format."), reply)
	assert.Zero(t, engine.callCount())
}

func TestRelayMissingFieldsKeepsSessionOpen(t *testing.T) {
	engine := &stubEngine{reply: "hello there"}
	ts, _ := newTestRelay(t, engine, nil)
	conn := dialRelay(t, ts)

	reply := roundTrip(t, conn, `{"From":"","Body":"hi"}`)
	assert.Equal(t, twiml.Message("Error: Phone number and message are required."), reply)

	reply = roundTrip(t, conn, requestJSON(t, "whatsapp:+919876543210", "hi"))
	assert.Equal(t, twiml.Message("hello there"), reply)
}

func TestRelayEngineFailureNotRecorded(t *testing.T) {
	engine := &stubEngine{err: errors.New("model unavailable")}
	store := conversation.NewMemoryHistoryStore(100)
	ts, cache := newTestRelay(t, engine, store)

	payload := requestJSON(t, "whatsapp:+919876543210", "hello")
	reply := roundTrip(t, dialRelay(t, ts), payload)
	assert.Equal(t, twiml.Message(EngineFallbackReply), reply)

	// Failed exchanges are neither cached nor recorded.
	assert.Zero(t, cache.Len())
	turns, err := store.History(context.Background(), "whatsapp:+919876543210")
	require.NoError(t, err)
	assert.Empty(t, turns)

	// A retry goes back to the engine instead of the cache.
	roundTrip(t, dialRelay(t, ts), payload)
	assert.Equal(t, 2, engine.callCount())
}

func TestRelayForwardsWindowedHistory(t *testing.T) {
	engine := &stubEngine{reply: "noted"}
	store := conversation.NewMemoryHistoryStore(100)
	sender := "whatsapp:+919876543210"
	for i := 0; i < 6; i++ {
		require.NoError(t, store.AppendExchange(context.Background(), sender,
			conversation.Turn{Role: conversation.RoleUser, Content: fmt.Sprintf("q%d", i)},
			conversation.Turn{Role: conversation.RoleAssistant, Content: fmt.Sprintf("a%d", i)}))
	}
	ts, _ := newTestRelay(t, engine, store)

	roundTrip(t, dialRelay(t, ts), requestJSON(t, sender, "one more question"))

	forwarded := engine.last().History
	require.Len(t, forwarded, conversation.HistoryWindow)
	assert.Equal(t, "q1", forwarded[0].Content)
	assert.Equal(t, "a5", forwarded[len(forwarded)-1].Content)
	// Continuation prompt, not the first-contact dossier.
	assert.NotContains(t, engine.last().SystemPrompt, "123 Charity Lane")
}

func TestRelayHealthEndpoint(t *testing.T) {
	ts, _ := newTestRelay(t, &stubEngine{reply: "x"}, nil)

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
