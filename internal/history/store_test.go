package history

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"counsel/internal/domain"
	id "counsel/pkg/domain"
	dErrors "counsel/pkg/domain-errors"
)

func entryFor(objective string) Entry {
	return Entry{
		ID:      id.NewAdviceID(),
		Context: domain.Context{Domain: domain.DomainGeneral, Objective: objective},
	}
}

func TestNew(t *testing.T) {
	_, err := New(0)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))

	store, err := New(3)
	require.NoError(t, err)
	assert.Equal(t, 0, store.Len())
}

func TestRecentOrdering(t *testing.T) {
	store, err := New(5)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		store.Append(entryFor(fmt.Sprintf("objective-%d", i)))
	}

	recent := store.Recent(10)
	require.Len(t, recent, 3)
	assert.Equal(t, "objective-2", recent[0].Context.Objective)
	assert.Equal(t, "objective-1", recent[1].Context.Objective)
	assert.Equal(t, "objective-0", recent[2].Context.Objective)

	assert.Nil(t, store.Recent(0))
	assert.Nil(t, store.Recent(-1))
}

// Eviction: after capacity+1 appends the first-inserted entry is gone.
func TestRingEviction(t *testing.T) {
	const capacity = 4
	store, err := New(capacity)
	require.NoError(t, err)

	for i := 0; i <= capacity; i++ {
		store.Append(entryFor(fmt.Sprintf("objective-%d", i)))
	}

	assert.Equal(t, capacity, store.Len())

	recent := store.Recent(capacity)
	require.Len(t, recent, capacity)
	for _, entry := range recent {
		assert.NotEqual(t, "objective-0", entry.Context.Objective,
			"oldest entry must have been evicted")
	}
	assert.Equal(t, fmt.Sprintf("objective-%d", capacity), recent[0].Context.Objective)
}

func TestRecentCappedAtCapacity(t *testing.T) {
	store, err := New(2)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		store.Append(entryFor(fmt.Sprintf("objective-%d", i)))
	}

	// Requests beyond capacity are capped regardless of n.
	assert.Len(t, store.Recent(100), 2)
}
