package domain

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "counsel/pkg/domain-errors"
)

// TestParseUUID_Invariants validates the parsing invariant:
// "IDs must be valid, non-empty, non-nil UUIDs"
func TestParseUUID_Invariants(t *testing.T) {
	t.Run("rejects empty string", func(t *testing.T) {
		_, err := ParseAdviceID("")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects invalid format", func(t *testing.T) {
		_, err := ParseAdviceID("not-a-uuid")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects nil UUID", func(t *testing.T) {
		_, err := ParseRecommendationID(uuid.Nil.String())
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("accepts valid UUID", func(t *testing.T) {
		validUUID := uuid.New()
		id, err := ParseAdviceID(validUUID.String())
		require.NoError(t, err)
		assert.Equal(t, AdviceID(validUUID), id)
	})
}

// TestTypeDistinction verifies the compiler enforces type safety between
// advice and recommendation IDs.
func TestTypeDistinction(t *testing.T) {
	adviceID := AdviceID(uuid.New())
	recID := RecommendationID(uuid.New())

	// These would fail to compile if types were interchangeable:
	// var _ AdviceID = recID            // compile error
	// var _ RecommendationID = adviceID // compile error

	assert.NotEqual(t, uuid.UUID(adviceID), uuid.UUID(recID))
}

func TestStringRoundTrip(t *testing.T) {
	id := NewRecommendationID()
	parsed, err := ParseRecommendationID(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, parsed)
}

// IDs cross the wire inside results, cache entries, and audit events, so their
// JSON form must be the canonical string, not uuid.UUID's byte array.
func TestJSONRoundTrip(t *testing.T) {
	t.Run("advice ID marshals as a string", func(t *testing.T) {
		id := NewAdviceID()
		encoded, err := json.Marshal(id)
		require.NoError(t, err)
		assert.Equal(t, `"`+id.String()+`"`, string(encoded))

		var decoded AdviceID
		require.NoError(t, json.Unmarshal(encoded, &decoded))
		assert.Equal(t, id, decoded)
	})

	t.Run("recommendation ID marshals as a string", func(t *testing.T) {
		id := NewRecommendationID()
		encoded, err := json.Marshal(id)
		require.NoError(t, err)
		assert.Equal(t, `"`+id.String()+`"`, string(encoded))

		var decoded RecommendationID
		require.NoError(t, json.Unmarshal(encoded, &decoded))
		assert.Equal(t, id, decoded)
	})

	t.Run("unmarshal enforces parse invariants", func(t *testing.T) {
		var id AdviceID
		err := json.Unmarshal([]byte(`"not-a-uuid"`), &id)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))

		err = json.Unmarshal([]byte(`"`+uuid.Nil.String()+`"`), &id)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})
}
