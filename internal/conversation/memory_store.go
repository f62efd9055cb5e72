package conversation

import (
	"container/list"
	"context"
	"sync"
)

// MemoryHistoryStore keeps history in process memory. The number of tracked
// senders is capped; when the cap is exceeded the least-recently-used sender
// is evicted wholesale.
type MemoryHistoryStore struct {
	mu         sync.Mutex
	maxSenders int
	entries    map[string]*list.Element
	order      *list.List // front = most recently used
}

type memoryEntry struct {
	senderID string
	turns    []Turn
}

// NewMemoryHistoryStore creates a store tracking at most maxSenders senders.
func NewMemoryHistoryStore(maxSenders int) *MemoryHistoryStore {
	if maxSenders <= 0 {
		maxSenders = 1000
	}
	return &MemoryHistoryStore{
		maxSenders: maxSenders,
		entries:    make(map[string]*list.Element),
		order:      list.New(),
	}
}

func (s *MemoryHistoryStore) History(_ context.Context, senderID string) ([]Turn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	el, ok := s.entries[senderID]
	if !ok {
		return nil, nil
	}
	s.order.MoveToFront(el)
	turns := el.Value.(*memoryEntry).turns
	out := make([]Turn, len(turns))
	copy(out, turns)
	return out, nil
}

func (s *MemoryHistoryStore) AppendExchange(_ context.Context, senderID string, user, assistant Turn) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	el, ok := s.entries[senderID]
	if !ok {
		el = s.order.PushFront(&memoryEntry{senderID: senderID})
		s.entries[senderID] = el
		if s.order.Len() > s.maxSenders {
			oldest := s.order.Back()
			s.order.Remove(oldest)
			delete(s.entries, oldest.Value.(*memoryEntry).senderID)
		}
	} else {
		s.order.MoveToFront(el)
	}

	entry := el.Value.(*memoryEntry)
	entry.turns = append(entry.turns, user, assistant)
	return nil
}

// Senders reports how many senders are currently tracked.
func (s *MemoryHistoryStore) Senders() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.order.Len()
}
