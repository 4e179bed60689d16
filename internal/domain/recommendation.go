package domain

import (
	"time"

	id "counsel/pkg/domain"
	dErrors "counsel/pkg/domain-errors"
)

// RecommendationType classifies what kind of advice a recommendation carries.
type RecommendationType string

const (
	TypeAction         RecommendationType = "action"
	TypeStrategy       RecommendationType = "strategy"
	TypeOptimization   RecommendationType = "optimization"
	TypeRiskMitigation RecommendationType = "risk-mitigation"
	TypeDecision       RecommendationType = "decision"
)

var validRecommendationTypes = map[RecommendationType]bool{
	TypeAction:         true,
	TypeStrategy:       true,
	TypeOptimization:   true,
	TypeRiskMitigation: true,
	TypeDecision:       true,
}

// IsValid checks if the type is one of the supported enum values.
func (t RecommendationType) IsValid() bool {
	return validRecommendationTypes[t]
}

// Impact expresses the expected magnitude of acting on a recommendation.
// Invariant: drawn only from the closed enum below.
type Impact string

const (
	ImpactLow      Impact = "low"
	ImpactMedium   Impact = "medium"
	ImpactHigh     Impact = "high"
	ImpactCritical Impact = "critical"
)

// impactWeights maps impact levels to the [0,1] scale used by the ranker and
// the decision matrix.
var impactWeights = map[Impact]float64{
	ImpactLow:      0.2,
	ImpactMedium:   0.5,
	ImpactHigh:     0.8,
	ImpactCritical: 1.0,
}

// Weight returns the numeric ranking weight for the impact level.
// Unknown values weigh 0 so a corrupted enum never inflates a score.
func (i Impact) Weight() float64 {
	return impactWeights[i]
}

// IsValid checks if the impact is one of the supported enum values.
func (i Impact) IsValid() bool {
	_, ok := impactWeights[i]
	return ok
}

// Urgency expresses how soon a recommendation should be acted on.
// Invariant: drawn only from the closed enum below.
type Urgency string

const (
	UrgencyLow       Urgency = "low"
	UrgencyMedium    Urgency = "medium"
	UrgencyHigh      Urgency = "high"
	UrgencyImmediate Urgency = "immediate"
)

var urgencyWeights = map[Urgency]float64{
	UrgencyLow:       0.1,
	UrgencyMedium:    0.3,
	UrgencyHigh:      0.6,
	UrgencyImmediate: 1.0,
}

// Weight returns the numeric ranking weight for the urgency level.
func (u Urgency) Weight() float64 {
	return urgencyWeights[u]
}

// IsValid checks if the urgency is one of the supported enum values.
func (u Urgency) IsValid() bool {
	_, ok := urgencyWeights[u]
	return ok
}

// Horizon classifies a timeline phase by how far out it lands.
type Horizon string

const (
	HorizonShortTerm  Horizon = "short-term"
	HorizonMediumTerm Horizon = "medium-term"
	HorizonLongTerm   Horizon = "long-term"
)

// Phase is one step in a recommendation's execution timeline.
type Phase struct {
	Name    string  `json:"name"`
	Horizon Horizon `json:"horizon"`
}

// Resources declares what acting on a recommendation is expected to cost.
type Resources struct {
	Financial float64  `json:"financial,omitempty"`
	Personnel []string `json:"personnel,omitempty"`
	Tools     []string `json:"tools,omitempty"`
}

// Recommendation is a single proposed action with its confidence, impact,
// urgency, and supporting reasoning. Recommendations are immutable value
// objects: created during generation, ranked, truncated, never mutated.
type Recommendation struct {
	ID             id.RecommendationID `json:"id"`
	Type           RecommendationType  `json:"type"`
	Title          string              `json:"title"`
	Description    string              `json:"description"`
	Action         string              `json:"action"`
	Confidence     float64             `json:"confidence"`
	Impact         Impact              `json:"impact"`
	Urgency        Urgency             `json:"urgency"`
	Category       string              `json:"category,omitempty"`
	Reasoning      string              `json:"reasoning"`
	Benefits       []string            `json:"benefits,omitempty"`
	Risks          []string            `json:"risks,omitempty"`
	Timeline       []Phase             `json:"timeline,omitempty"`
	Resources      *Resources          `json:"resources,omitempty"`
	Alternatives   []string            `json:"alternatives,omitempty"`
	SuccessMetrics []string            `json:"success_metrics,omitempty"`
	CreatedAt      time.Time           `json:"created_at"`
}

// Validate enforces the recommendation invariants: confidence in [0,1] and
// impact/urgency/type drawn from their closed enums. Rules supplied through
// the registry extension API are not trusted to get this right.
func (r Recommendation) Validate() error {
	if r.Confidence < 0 || r.Confidence > 1 {
		return dErrors.Newf(dErrors.CodeInvariantViolation, "confidence %v outside [0,1]", r.Confidence)
	}
	if !r.Type.IsValid() {
		return dErrors.Newf(dErrors.CodeInvariantViolation, "unknown recommendation type %q", r.Type)
	}
	if !r.Impact.IsValid() {
		return dErrors.Newf(dErrors.CodeInvariantViolation, "unknown impact %q", r.Impact)
	}
	if !r.Urgency.IsValid() {
		return dErrors.Newf(dErrors.CodeInvariantViolation, "unknown urgency %q", r.Urgency)
	}
	return nil
}

// OnlyLongTerm reports whether the recommendation's timeline exists and
// contains no phase earlier than long-term. Used by the feasibility heuristic
// for immediate-timeline contexts.
func (r Recommendation) OnlyLongTerm() bool {
	if len(r.Timeline) == 0 {
		return false
	}
	for _, phase := range r.Timeline {
		if phase.Horizon != HorizonLongTerm {
			return false
		}
	}
	return true
}
