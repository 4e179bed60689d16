// Package domain holds shared identifier types for the advisory engine.
//
// IDs are distinct types over uuid.UUID so an advice ID can never be passed
// where a recommendation ID is expected. Construct via the Parse functions at
// trust boundaries; direct casting bypasses validation.
package domain

import (
	"github.com/google/uuid"

	dErrors "counsel/pkg/domain-errors"
)

// AdviceID identifies a single advise invocation and its stored history entry.
type AdviceID uuid.UUID

// RecommendationID identifies one recommendation within a result.
type RecommendationID uuid.UUID

// NewAdviceID generates a fresh advice ID.
func NewAdviceID() AdviceID {
	return AdviceID(uuid.New())
}

// NewRecommendationID generates a fresh recommendation ID.
func NewRecommendationID() RecommendationID {
	return RecommendationID(uuid.New())
}

// ParseAdviceID constructs an AdviceID from external input.
//
// Errors: returns CodeInvalidInput when the value is empty, malformed, or the
// nil UUID; no other errors are expected.
func ParseAdviceID(s string) (AdviceID, error) {
	parsed, err := parseUUID(s)
	if err != nil {
		return AdviceID{}, err
	}
	return AdviceID(parsed), nil
}

// ParseRecommendationID constructs a RecommendationID from external input.
func ParseRecommendationID(s string) (RecommendationID, error) {
	parsed, err := parseUUID(s)
	if err != nil {
		return RecommendationID{}, err
	}
	return RecommendationID(parsed), nil
}

func (id AdviceID) String() string {
	return uuid.UUID(id).String()
}

func (id RecommendationID) String() string {
	return uuid.UUID(id).String()
}

// Text marshaling delegates to uuid.UUID so the JSON form is the canonical
// string, not a byte array. Unmarshaling enforces the same invariants as the
// Parse functions.

func (id AdviceID) MarshalText() ([]byte, error) {
	return uuid.UUID(id).MarshalText()
}

func (id *AdviceID) UnmarshalText(data []byte) error {
	parsed, err := parseUUID(string(data))
	if err != nil {
		return err
	}
	*id = AdviceID(parsed)
	return nil
}

func (id RecommendationID) MarshalText() ([]byte, error) {
	return uuid.UUID(id).MarshalText()
}

func (id *RecommendationID) UnmarshalText(data []byte) error {
	parsed, err := parseUUID(string(data))
	if err != nil {
		return err
	}
	*id = RecommendationID(parsed)
	return nil
}

// parseUUID enforces the shared invariant: valid, non-empty, non-nil UUIDs.
func parseUUID(s string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "id cannot be empty")
	}
	parsed, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "id must be a valid UUID")
	}
	if parsed == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "id cannot be the nil UUID")
	}
	return parsed, nil
}
