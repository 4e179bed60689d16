package handler

import (
	"strings"

	"counsel/internal/advisor"
	"counsel/internal/domain"
	dErrors "counsel/pkg/domain-errors"
)

// Request body size limits (fail fast before touching the engine).
const (
	maxTextLength      = 4096
	maxObjectiveLength = 1024
	maxStakeholders    = 100
	maxCategories      = 20
	maxRecommendations = 50
)

// AdviseRequest is the HTTP request body for POST /advise.
type AdviseRequest struct {
	Text    string          `json:"text,omitempty"`
	Context *ContextRequest `json:"context,omitempty"`
	State   map[string]any  `json:"state,omitempty"`
	Options *OptionsRequest `json:"options,omitempty"`
}

// ContextRequest is the structured-context portion of the request.
type ContextRequest struct {
	Domain          string             `json:"domain"`
	Objective       string             `json:"objective"`
	Constraints     map[string]any     `json:"constraints,omitempty"`
	Preferences     map[string]float64 `json:"preferences,omitempty"`
	Stakeholders    []string           `json:"stakeholders,omitempty"`
	Timeline        string             `json:"timeline,omitempty"`
	Budget          *float64           `json:"budget,omitempty"`
	RiskTolerance   string             `json:"risk_tolerance,omitempty"`
	PriorityWeights map[string]float64 `json:"priority_weights,omitempty"`
	HistoricalData  []any              `json:"historical_data,omitempty"`
	CurrentState    map[string]any     `json:"current_state,omitempty"`
}

// OptionsRequest tunes a single invocation.
type OptionsRequest struct {
	MaxRecommendations  int      `json:"max_recommendations,omitempty"`
	ConfidenceThreshold float64  `json:"confidence_threshold,omitempty"`
	Categories          []string `json:"categories,omitempty"`
}

// Validate validates the request shape. Semantic resolution (domain
// fallback, keyword matching) stays in the engine.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *AdviseRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}

	r.Text = strings.TrimSpace(r.Text)
	if len(r.Text) > maxTextLength {
		return dErrors.Newf(dErrors.CodeValidation, "text must be at most %d characters", maxTextLength)
	}
	if r.Text == "" && r.Context == nil && len(r.State) == 0 {
		return dErrors.New(dErrors.CodeValidation, "one of text, context, or state is required")
	}

	if r.Context != nil {
		if len(r.Context.Objective) > maxObjectiveLength {
			return dErrors.Newf(dErrors.CodeValidation, "context.objective must be at most %d characters", maxObjectiveLength)
		}
		if len(r.Context.Stakeholders) > maxStakeholders {
			return dErrors.Newf(dErrors.CodeValidation, "context.stakeholders must have at most %d entries", maxStakeholders)
		}
		if r.Context.RiskTolerance != "" && !domain.RiskTolerance(strings.ToLower(r.Context.RiskTolerance)).IsValid() {
			return dErrors.New(dErrors.CodeValidation, "context.risk_tolerance is not a known level")
		}
		if r.Context.Budget != nil && *r.Context.Budget < 0 {
			return dErrors.New(dErrors.CodeValidation, "context.budget cannot be negative")
		}
	}

	if r.Options != nil {
		if r.Options.MaxRecommendations < 0 || r.Options.MaxRecommendations > maxRecommendations {
			return dErrors.Newf(dErrors.CodeValidation, "options.max_recommendations must be between 0 and %d", maxRecommendations)
		}
		if r.Options.ConfidenceThreshold < 0 || r.Options.ConfidenceThreshold > 1 {
			return dErrors.New(dErrors.CodeValidation, "options.confidence_threshold must be between 0 and 1")
		}
		if len(r.Options.Categories) > maxCategories {
			return dErrors.Newf(dErrors.CodeValidation, "options.categories must have at most %d entries", maxCategories)
		}
	}

	return nil
}

// Query converts the request to an engine query.
func (r *AdviseRequest) Query() advisor.Query {
	q := advisor.Query{Text: r.Text, State: r.State}
	if r.Context != nil {
		q.Context = &domain.Context{
			Domain:          r.Context.Domain,
			Objective:       r.Context.Objective,
			Constraints:     r.Context.Constraints,
			Preferences:     r.Context.Preferences,
			Stakeholders:    r.Context.Stakeholders,
			Timeline:        r.Context.Timeline,
			Budget:          r.Context.Budget,
			RiskTolerance:   domain.RiskTolerance(strings.ToLower(r.Context.RiskTolerance)),
			PriorityWeights: r.Context.PriorityWeights,
			HistoricalData:  r.Context.HistoricalData,
			CurrentState:    r.Context.CurrentState,
		}
	}
	return q
}

// AdviseOptions converts the request options to engine options.
func (r *AdviseRequest) AdviseOptions() advisor.Options {
	if r.Options == nil {
		return advisor.Options{}
	}
	return advisor.Options{
		MaxRecommendations:  r.Options.MaxRecommendations,
		ConfidenceThreshold: r.Options.ConfidenceThreshold,
		Categories:          r.Options.Categories,
	}
}
