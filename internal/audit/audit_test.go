package audit

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "counsel/pkg/domain"
	dErrors "counsel/pkg/domain-errors"
)

func eventFor(objective string) Event {
	return Event{
		Action:    ActionAdviceIssued,
		AdviceID:  id.NewAdviceID(),
		Domain:    "business",
		Objective: objective,
	}
}

func TestMemoryStoreAppendAndRecent(t *testing.T) {
	store, err := NewMemoryStore(10)
	require.NoError(t, err)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, store.Append(ctx, eventFor(fmt.Sprintf("objective-%d", i))))
	}

	recent, err := store.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "objective-2", recent[0].Objective)
	assert.Equal(t, "objective-1", recent[1].Objective)

	none, err := store.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestMemoryStoreEviction(t *testing.T) {
	store, err := NewMemoryStore(2)
	require.NoError(t, err)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, store.Append(ctx, eventFor(fmt.Sprintf("objective-%d", i))))
	}

	recent, err := store.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "objective-2", recent[0].Objective)
	assert.Equal(t, "objective-1", recent[1].Objective)
}

func TestMemoryStoreCapacity(t *testing.T) {
	_, err := NewMemoryStore(0)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
}

func TestPublisherStampsTimestamp(t *testing.T) {
	inbox := make(chan Event, 2)
	publisher := NewPublisher(inbox)
	ctx := context.Background()

	require.NoError(t, publisher.Emit(ctx, eventFor("no timestamp")))

	stamped := eventFor("stamped")
	stamped.Timestamp = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, publisher.Emit(ctx, stamped))

	first := <-inbox
	assert.False(t, first.Timestamp.IsZero(), "missing timestamps are stamped on emit")
	second := <-inbox
	assert.Equal(t, stamped.Timestamp, second.Timestamp, "explicit timestamps survive")
}

func TestPublisherRejectsWhenQueueFull(t *testing.T) {
	inbox := make(chan Event, 1)
	publisher := NewPublisher(inbox)
	ctx := context.Background()

	require.NoError(t, publisher.Emit(ctx, eventFor("fits")))

	err := publisher.Emit(ctx, eventFor("overflows"))
	require.Error(t, err, "a saturated queue must not block the caller")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInternal))
}

func TestWorkerDrainsInbox(t *testing.T) {
	store, err := NewMemoryStore(10)
	require.NoError(t, err)

	inbox := make(chan Event, 3)
	worker := NewWorker(store, inbox, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- worker.Run(ctx) }()

	for i := 0; i < 3; i++ {
		inbox <- eventFor(fmt.Sprintf("objective-%d", i))
	}

	require.Eventually(t, func() bool {
		events, err := store.Recent(context.Background(), 10)
		return err == nil && len(events) == 3
	}, time.Second, 5*time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

// rejectingStore fails the first few appends, then delegates to a memory
// store.
type rejectingStore struct {
	inner      *MemoryStore
	mu         sync.Mutex
	rejections int
}

func (s *rejectingStore) Append(ctx context.Context, event Event) error {
	s.mu.Lock()
	if s.rejections > 0 {
		s.rejections--
		s.mu.Unlock()
		return dErrors.New(dErrors.CodeInternal, "sink down")
	}
	s.mu.Unlock()
	return s.inner.Append(ctx, event)
}

func (s *rejectingStore) Recent(ctx context.Context, n int) ([]Event, error) {
	return s.inner.Recent(ctx, n)
}

func TestWorkerSurvivesStoreFailures(t *testing.T) {
	inner, err := NewMemoryStore(10)
	require.NoError(t, err)
	store := &rejectingStore{inner: inner, rejections: 2}

	inbox := make(chan Event, 4)
	worker := NewWorker(store, inbox, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = worker.Run(ctx) }()

	for i := 0; i < 4; i++ {
		inbox <- eventFor(fmt.Sprintf("objective-%d", i))
	}

	require.Eventually(t, func() bool {
		events, err := inner.Recent(context.Background(), 10)
		return err == nil && len(events) == 2
	}, time.Second, 5*time.Millisecond, "failed appends are dropped, later events still land")
}
