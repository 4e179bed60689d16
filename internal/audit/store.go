package audit

import (
	"context"
	"sync"

	dErrors "counsel/pkg/domain-errors"
)

// Store persists audit events. Implementations must be safe for concurrent
// use.
type Store interface {
	Append(ctx context.Context, event Event) error
	Recent(ctx context.Context, n int) ([]Event, error)
}

// MemoryStore is a bounded in-memory store. It is the default sink when no
// broker is configured and the swap-in point for tests.
type MemoryStore struct {
	mu       sync.RWMutex
	events   []Event
	capacity int
}

// NewMemoryStore creates a memory store holding at most capacity events.
//
// Errors: CodeInvalidInput when capacity is not positive.
func NewMemoryStore(capacity int) (*MemoryStore, error) {
	if capacity <= 0 {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "audit store capacity must be positive")
	}
	return &MemoryStore{
		events:   make([]Event, 0, capacity),
		capacity: capacity,
	}, nil
}

func (s *MemoryStore) Append(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.events) == s.capacity {
		copy(s.events, s.events[1:])
		s.events = s.events[:len(s.events)-1]
	}
	s.events = append(s.events, event)
	return nil
}

func (s *MemoryStore) Recent(_ context.Context, n int) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if n <= 0 {
		return nil, nil
	}
	if n > len(s.events) {
		n = len(s.events)
	}
	out := make([]Event, n)
	for i := 0; i < n; i++ {
		out[i] = s.events[len(s.events)-1-i]
	}
	return out, nil
}
