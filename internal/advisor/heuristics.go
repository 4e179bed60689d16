package advisor

import pstrings "counsel/pkg/platform/strings"

// Heuristics collects the engine's tunable constants. The defaults preserve
// the calibration the engine shipped with; none of them have been validated
// against real outcome data, so they are configuration, not constants.
type Heuristics struct {
	// FeasibilityBase is the starting feasibility score for every alternative.
	FeasibilityBase float64
	// BudgetPenalty scales feasibility when a recommendation's financial need
	// exceeds the context budget.
	BudgetPenalty float64
	// TimelinePenalty scales feasibility when the context demands immediate
	// action but the recommendation only has long-term phases.
	TimelinePenalty float64
	// RiskBase is the starting risk score for every alternative.
	RiskBase float64
	// EfficiencyThreshold triggers the process-optimization candidate when
	// the observed efficiency falls below it.
	EfficiencyThreshold float64
	// LowBudgetThreshold marks budgets below it as a risk factor.
	LowBudgetThreshold float64
	// StakeholderThreshold marks stakeholder groups above it as a risk factor.
	StakeholderThreshold int
	// HighImpactThreshold marks more than this many high/critical-impact
	// recommendations as change overload.
	HighImpactThreshold int
}

// DefaultHeuristics returns the shipped calibration.
func DefaultHeuristics() Heuristics {
	return Heuristics{
		FeasibilityBase:      0.7,
		BudgetPenalty:        0.5,
		TimelinePenalty:      0.6,
		RiskBase:             0.3,
		EfficiencyThreshold:  0.7,
		LowBudgetThreshold:   10000,
		StakeholderThreshold: 10,
		HighImpactThreshold:  3,
	}
}

// Options controls a single advise invocation.
type Options struct {
	// MaxRecommendations caps the returned list. Zero means the default.
	MaxRecommendations int `json:"max_recommendations,omitempty"`
	// ConfidenceThreshold filters candidates below it. Zero means the default;
	// an explicit zero threshold is not expressible through this field. Callers
	// that want every candidate can pass a small positive value instead.
	ConfidenceThreshold float64 `json:"confidence_threshold,omitempty"`
	// Categories, when non-empty, restricts candidates to those categories.
	Categories []string `json:"categories,omitempty"`
}

// Engine-wide option defaults.
const (
	DefaultMaxRecommendations  = 5
	DefaultConfidenceThreshold = 0.6
)

// Normalize fills zero values from the service defaults and canonicalizes the
// category filter so matching stays case-insensitive.
func (o Options) Normalize(defaults Options) Options {
	o.Categories = pstrings.DedupeAndTrimLower(o.Categories)
	if o.MaxRecommendations <= 0 {
		o.MaxRecommendations = defaults.MaxRecommendations
	}
	if o.MaxRecommendations <= 0 {
		o.MaxRecommendations = DefaultMaxRecommendations
	}
	if o.ConfidenceThreshold <= 0 {
		o.ConfidenceThreshold = defaults.ConfidenceThreshold
	}
	if o.ConfidenceThreshold <= 0 {
		o.ConfidenceThreshold = DefaultConfidenceThreshold
	}
	return o
}
