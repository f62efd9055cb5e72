// Package conversation holds the conversational engine abstraction, the
// Gemini-backed implementation, per-sender history stores, and the prompt
// builder for the foundation's reception assistant.
package conversation

import "context"

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is a single message in a conversation.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// HistoryWindow is the number of trailing turns (5 exchanges) forwarded to
// the engine. The stores may retain more.
const HistoryWindow = 10

// Window returns the most recent HistoryWindow turns of history.
func Window(history []Turn) []Turn {
	if len(history) <= HistoryWindow {
		return history
	}
	return history[len(history)-HistoryWindow:]
}

// HistoryStore keeps per-sender conversation history.
type HistoryStore interface {
	// History returns the stored turns for a sender, oldest first. A sender
	// with no history yields an empty slice, not an error.
	History(ctx context.Context, senderID string) ([]Turn, error)
	// AppendExchange records one completed exchange (user turn then
	// assistant turn) for a sender.
	AppendExchange(ctx context.Context, senderID string, user, assistant Turn) error
}

// ReplyRequest carries everything the engine needs for one reply.
type ReplyRequest struct {
	Query        string
	SystemPrompt string
	History      []Turn
}

// Engine produces a reply to a donor message.
type Engine interface {
	Reply(ctx context.Context, req ReplyRequest) (string, error)
}
