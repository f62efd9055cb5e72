package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/gorilla/websocket"
)

// ErrReplyTimeout is returned when the relay does not reply within the
// deadline.
var ErrReplyTimeout = errors.New("webhook: timed out waiting for relay reply")

// RelayClient opens one short-lived WebSocket session per inbound message:
// it sends a single structured request and waits for exactly one reply.
// It is stateless across calls.
type RelayClient struct {
	addr         string
	replyTimeout time.Duration
	dialer       *websocket.Dialer
}

// NewRelayClient creates a client for the relay at addr (a ws:// URL).
func NewRelayClient(addr string, replyTimeout, handshakeTimeout time.Duration) *RelayClient {
	if addr == "" {
		panic("webhook: relay address cannot be empty")
	}
	if replyTimeout <= 0 {
		replyTimeout = 30 * time.Second
	}
	if handshakeTimeout <= 0 {
		handshakeTimeout = 5 * time.Second
	}
	return &RelayClient{
		addr:         addr,
		replyTimeout: replyTimeout,
		dialer: &websocket.Dialer{
			HandshakeTimeout: handshakeTimeout,
		},
	}
}

// Send forwards one message to the relay and returns the correlated reply.
// The session is torn down on every exit path.
func (c *RelayClient) Send(ctx context.Context, senderID, body string) (string, error) {
	conn, _, err := c.dialer.DialContext(ctx, c.addr, nil)
	if err != nil {
		return "", fmt.Errorf("webhook: failed to dial relay: %w", err)
	}
	defer func() { _ = conn.Close() }()

	payload, err := json.Marshal(map[string]string{
		"From": senderID,
		"Body": body,
	})
	if err != nil {
		return "", fmt.Errorf("webhook: failed to encode relay request: %w", err)
	}

	deadline := time.Now().Add(c.replyTimeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}
	_ = conn.SetWriteDeadline(deadline)
	_ = conn.SetReadDeadline(deadline)

	if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
		return "", fmt.Errorf("webhook: failed to send relay request: %w", err)
	}

	_, reply, err := conn.ReadMessage()
	if err != nil {
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			return "", ErrReplyTimeout
		}
		return "", fmt.Errorf("webhook: relay session ended without a reply: %w", err)
	}
	return string(reply), nil
}
