// Package adapters bridges external ports into the rule registry.
package adapters

import (
	"context"
	"fmt"

	"counsel/internal/advisor/ports"
	"counsel/internal/domain"
	id "counsel/pkg/domain"
	dErrors "counsel/pkg/domain-errors"
	"counsel/pkg/requestcontext"
)

// minPredictionScore is the floor below which a prediction produces no
// candidate rather than a low-confidence one.
const minPredictionScore = 0.6

// PredictiveRule mounts a Predictor as a registry rule so model-backed
// candidates flow through the same generation, ranking, and validation path
// as expert rules.
type PredictiveRule struct {
	domain    string
	predictor ports.Predictor
}

func NewPredictiveRule(dom string, predictor ports.Predictor) *PredictiveRule {
	return &PredictiveRule{domain: dom, predictor: predictor}
}

func (r *PredictiveRule) Name() string   { return "predictive:" + r.predictor.Name() }
func (r *PredictiveRule) Domain() string { return r.domain }

func (r *PredictiveRule) Apply(ctx context.Context, c domain.Context) ([]domain.Recommendation, error) {
	prediction, err := r.predictor.Predict(ctx, c)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "predictor "+r.predictor.Name())
	}
	if prediction.Score < minPredictionScore {
		return nil, nil
	}

	confidence := prediction.Score
	if confidence > 1 {
		confidence = 1
	}

	return []domain.Recommendation{{
		ID:          id.NewRecommendationID(),
		Type:        domain.TypeDecision,
		Title:       prediction.Headline,
		Description: prediction.Rationale,
		Action:      fmt.Sprintf("Evaluate the model-suggested course: %s", prediction.Headline),
		Confidence:  confidence,
		Impact:      domain.ImpactMedium,
		Urgency:     domain.UrgencyMedium,
		Category:    "prediction",
		Reasoning:   fmt.Sprintf("Predictor %s scored this course at %.2f: %s", r.predictor.Name(), prediction.Score, prediction.Rationale),
		CreatedAt:   requestcontext.Now(ctx),
	}}, nil
}
