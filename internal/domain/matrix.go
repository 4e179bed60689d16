package domain

import "math"

// CriterionType distinguishes criteria where higher scores help (benefit)
// from criteria where higher scores hurt (cost).
type CriterionType string

const (
	CriterionBenefit CriterionType = "benefit"
	CriterionCost    CriterionType = "cost"
)

// Criterion is one weighted dimension of the decision matrix.
// Invariant: a matrix's criteria weights sum to 1 within ±0.01.
type Criterion struct {
	Name   string        `json:"name"`
	Weight float64       `json:"weight"`
	Type   CriterionType `json:"type"`
}

// Alternative is one recommendation re-expressed for multi-criteria scoring.
// Scores are keyed by criterion name and normalized to [0,1].
type Alternative struct {
	ID       string             `json:"id"`
	Name     string             `json:"name"`
	Scores   map[string]float64 `json:"scores"`
	Feasible bool               `json:"feasible"`
}

// Ranking is one row of the matrix's secondary ranking.
// Rank is 1-based and dense: no gaps, no duplicates.
type Ranking struct {
	AlternativeID string  `json:"alternative_id"`
	Score         float64 `json:"score"`
	Rank          int     `json:"rank"`
}

// DecisionMatrix is a weighted multi-criteria scoring structure built when at
// least two recommendations survive filtering.
type DecisionMatrix struct {
	Alternatives []Alternative `json:"alternatives"`
	Criteria     []Criterion   `json:"criteria"`
	Rankings     []Ranking     `json:"rankings"`
}

// WeightsBalanced reports whether the criteria weights sum to 1 within the
// allowed tolerance.
func (m DecisionMatrix) WeightsBalanced() bool {
	var sum float64
	for _, c := range m.Criteria {
		sum += c.Weight
	}
	return math.Abs(sum-1.0) <= 0.01
}

// WeightedScore combines an alternative's criterion scores into a single
// value: cost criteria contribute inverted (1-score), benefit criteria
// contribute directly, each scaled by the criterion weight.
func WeightedScore(alt Alternative, criteria []Criterion) float64 {
	var total float64
	for _, c := range criteria {
		score := alt.Scores[c.Name]
		if c.Type == CriterionCost {
			score = 1 - score
		}
		total += score * c.Weight
	}
	return total
}
