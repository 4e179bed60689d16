package ports

import (
	"context"

	"counsel/internal/domain"
)

// Prediction is an external model's view of how promising a course of action
// is for a given context.
type Prediction struct {
	Score     float64
	Headline  string
	Rationale string
}

// Predictor defines the interface for external predictive models that can be
// mounted as rules. Implementations are expected to be slow and fallible;
// the generation pipeline treats their failures as degradation.
type Predictor interface {
	Name() string
	Predict(ctx context.Context, c domain.Context) (Prediction, error)
}
