// Package domain holds the advisory engine's shared value types: the
// normalized request context, recommendations, decision matrices, and
// composed results. Types here are plain data with their enum invariants;
// all behavior lives in the advisor, registry, and history packages.
package domain

import (
	"strings"

	dErrors "counsel/pkg/domain-errors"
)

// Known advisory domains. Free-text resolution only ever selects from this
// vocabulary; structured contexts may carry any non-empty domain.
const (
	DomainBusiness   = "business"
	DomainTechnology = "technology"
	DomainMarketing  = "marketing"
	DomainFinance    = "finance"
	DomainGeneral    = "general"
)

// RiskTolerance expresses how much risk the requester accepts.
// Invariant: the value must be one of the supported tolerances.
type RiskTolerance string

const (
	RiskToleranceVeryLow  RiskTolerance = "very-low"
	RiskToleranceLow      RiskTolerance = "low"
	RiskToleranceMedium   RiskTolerance = "medium"
	RiskToleranceHigh     RiskTolerance = "high"
	RiskToleranceVeryHigh RiskTolerance = "very-high"
)

var validRiskTolerances = map[RiskTolerance]bool{
	RiskToleranceVeryLow:  true,
	RiskToleranceLow:      true,
	RiskToleranceMedium:   true,
	RiskToleranceHigh:     true,
	RiskToleranceVeryHigh: true,
}

// ParseRiskTolerance constructs a RiskTolerance from external input.
// An empty value defaults to medium so callers may omit it.
//
// Errors: returns CodeInvalidInput for unsupported values.
func ParseRiskTolerance(s string) (RiskTolerance, error) {
	if s == "" {
		return RiskToleranceMedium, nil
	}
	rt := RiskTolerance(strings.ToLower(s))
	if !rt.IsValid() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid risk tolerance")
	}
	return rt, nil
}

// IsValid checks if the tolerance is one of the supported enum values.
func (rt RiskTolerance) IsValid() bool {
	return validRiskTolerances[rt]
}

// IsAverse reports whether the tolerance is on the cautious end of the scale.
func (rt RiskTolerance) IsAverse() bool {
	return rt == RiskToleranceLow || rt == RiskToleranceVeryLow
}

func (rt RiskTolerance) String() string {
	return string(rt)
}

// Timeline horizons produced by context resolution.
const (
	TimelineImmediate  = "immediate"
	TimelineShortTerm  = "short-term"
	TimelineMediumTerm = "medium-term"
	TimelineLongTerm   = "long-term"
)

// Context is the normalized input to the engine: a goal, the domain it lives
// in, and whatever constraints the caller could state.
//
// Invariant: Domain and Objective are non-empty after resolution. The
// resolver enforces this; constructing a Context directly bypasses it.
type Context struct {
	Domain          string             `json:"domain"`
	Objective       string             `json:"objective"`
	Constraints     map[string]any     `json:"constraints,omitempty"`
	Preferences     map[string]float64 `json:"preferences,omitempty"`
	Stakeholders    []string           `json:"stakeholders,omitempty"`
	Timeline        string             `json:"timeline,omitempty"`
	Budget          *float64           `json:"budget,omitempty"`
	RiskTolerance   RiskTolerance      `json:"risk_tolerance,omitempty"`
	PriorityWeights map[string]float64 `json:"priority_weights,omitempty"`
	HistoricalData  []any              `json:"historical_data,omitempty"`
	CurrentState    map[string]any     `json:"current_state,omitempty"`
}

// PriorityWeight looks up the caller-supplied weight for a recommendation
// category. Returns 0 when PriorityWeights is unset or the category is absent.
func (c Context) PriorityWeight(category string) float64 {
	if c.PriorityWeights == nil {
		return 0
	}
	return c.PriorityWeights[category]
}

// DataPoints counts the entries contributed by historical data, current
// state, and constraints. Used for result metadata.
func (c Context) DataPoints() int {
	return len(c.HistoricalData) + len(c.CurrentState) + len(c.Constraints)
}
