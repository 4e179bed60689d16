// Package history keeps a capacity-bounded, append-only log of past advise
// invocations. It is the engine's only retained state besides the registry
// and exists for retrieval and future learning hooks, not durable storage.
package history

import (
	"sync"
	"time"

	"counsel/internal/domain"
	id "counsel/pkg/domain"
	dErrors "counsel/pkg/domain-errors"
)

// DefaultCapacity bounds the store when the caller does not configure one.
const DefaultCapacity = 100

// Entry is one recorded (context, result) pair. Entries are never mutated
// after insertion.
type Entry struct {
	ID        id.AdviceID    `json:"id"`
	Context   domain.Context `json:"context"`
	Result    domain.Result  `json:"result"`
	CreatedAt time.Time      `json:"created_at"`
}

// Store is a mutex-guarded ring over a slice: appends go to the head and the
// oldest entry is discarded once capacity is reached. The single-writer
// discipline preserves the insertion order that Recent relies on.
type Store struct {
	mu       sync.RWMutex
	entries  []Entry
	capacity int
}

// New creates a history store with the given capacity.
//
// Errors: CodeInvalidInput when capacity is not positive.
func New(capacity int) (*Store, error) {
	if capacity <= 0 {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "history capacity must be positive")
	}
	return &Store{
		entries:  make([]Entry, 0, capacity),
		capacity: capacity,
	}, nil
}

// Append records an entry, evicting the oldest once the store is full.
func (s *Store) Append(entry Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.entries) == s.capacity {
		copy(s.entries, s.entries[1:])
		s.entries = s.entries[:len(s.entries)-1]
	}
	s.entries = append(s.entries, entry)
}

// Recent returns up to n entries, most recent first. Requests beyond the
// store's capacity are capped at capacity; a non-positive n returns nothing.
func (s *Store) Recent(n int) []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if n <= 0 {
		return nil
	}
	if n > s.capacity {
		n = s.capacity
	}
	if n > len(s.entries) {
		n = len(s.entries)
	}

	out := make([]Entry, n)
	for i := 0; i < n; i++ {
		out[i] = s.entries[len(s.entries)-1-i]
	}
	return out
}

// Len reports how many entries are currently held.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
