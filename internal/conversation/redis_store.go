package conversation

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// RedisHistoryStore keeps history in Redis with a TTL, so idle conversations
// age out instead of accumulating for the life of the process.
type RedisHistoryStore struct {
	client *redis.Client
	ttl    time.Duration
	tracer trace.Tracer
}

// NewRedisHistoryStore creates a Redis-backed history store.
func NewRedisHistoryStore(client *redis.Client, ttl time.Duration, tracer trace.Tracer) *RedisHistoryStore {
	if client == nil {
		panic("conversation: redis client cannot be nil")
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	if tracer == nil {
		tracer = otel.Tracer("donordesk.internal.conversation.history")
	}
	return &RedisHistoryStore{
		client: client,
		ttl:    ttl,
		tracer: tracer,
	}
}

func historyKey(senderID string) string {
	return fmt.Sprintf("history:%s", senderID)
}

func (s *RedisHistoryStore) History(ctx context.Context, senderID string) ([]Turn, error) {
	ctx, span := s.tracer.Start(ctx, "conversation.load_history")
	defer span.End()

	data, err := s.client.Get(ctx, historyKey(senderID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("conversation: failed to load history: %w", err)
	}

	var turns []Turn
	if err := json.Unmarshal(data, &turns); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("conversation: failed to decode history: %w", err)
	}
	return turns, nil
}

func (s *RedisHistoryStore) AppendExchange(ctx context.Context, senderID string, user, assistant Turn) error {
	ctx, span := s.tracer.Start(ctx, "conversation.append_exchange")
	defer span.End()

	turns, err := s.History(ctx, senderID)
	if err != nil {
		return err
	}
	turns = append(turns, user, assistant)

	data, err := json.Marshal(turns)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("conversation: failed to marshal history: %w", err)
	}
	if err := s.client.Set(ctx, historyKey(senderID), data, s.ttl).Err(); err != nil {
		span.RecordError(err)
		return fmt.Errorf("conversation: failed to persist history: %w", err)
	}
	return nil
}
