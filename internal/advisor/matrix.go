package advisor

import (
	"sort"

	"counsel/internal/domain"
)

// Matrix criterion names. The weights sum to 1.
const (
	criterionConfidence  = "confidence"
	criterionImpact      = "impact"
	criterionUrgency     = "urgency"
	criterionFeasibility = "feasibility"
	criterionRisk        = "risk"
)

func matrixCriteria() []domain.Criterion {
	return []domain.Criterion{
		{Name: criterionConfidence, Weight: 0.3, Type: domain.CriterionBenefit},
		{Name: criterionImpact, Weight: 0.25, Type: domain.CriterionBenefit},
		{Name: criterionUrgency, Weight: 0.2, Type: domain.CriterionBenefit},
		{Name: criterionFeasibility, Weight: 0.15, Type: domain.CriterionBenefit},
		{Name: criterionRisk, Weight: 0.1, Type: domain.CriterionCost},
	}
}

// An alternative below this feasibility is flagged infeasible but still
// ranked; the matrix informs, it does not veto.
const feasibleFloor = 0.4

// buildMatrix re-expresses the ranked recommendations as a weighted
// multi-criteria matrix. A single recommendation has nothing to compare
// against, so the matrix only exists for two or more.
func buildMatrix(c domain.Context, recs []domain.Recommendation, h Heuristics) *domain.DecisionMatrix {
	if len(recs) < 2 {
		return nil
	}

	criteria := matrixCriteria()
	alternatives := make([]domain.Alternative, 0, len(recs))
	for _, rec := range recs {
		feasibility := feasibilityScore(c, rec, h)
		alternatives = append(alternatives, domain.Alternative{
			ID:   rec.ID.String(),
			Name: rec.Title,
			Scores: map[string]float64{
				criterionConfidence:  rec.Confidence,
				criterionImpact:      rec.Impact.Weight(),
				criterionUrgency:     rec.Urgency.Weight(),
				criterionFeasibility: feasibility,
				criterionRisk:        riskScore(rec, h),
			},
			Feasible: feasibility >= feasibleFloor,
		})
	}

	return &domain.DecisionMatrix{
		Alternatives: alternatives,
		Criteria:     criteria,
		Rankings:     rankAlternatives(alternatives, criteria),
	}
}

// feasibilityScore starts from the base and degrades on resource or timeline
// mismatches between the recommendation and the context.
func feasibilityScore(c domain.Context, rec domain.Recommendation, h Heuristics) float64 {
	score := h.FeasibilityBase
	if rec.Resources != nil && c.Budget != nil && rec.Resources.Financial > *c.Budget {
		score *= h.BudgetPenalty
	}
	if c.Timeline == domain.TimelineImmediate && rec.OnlyLongTerm() {
		score *= h.TimelinePenalty
	}
	return clamp01(score)
}

// riskScore starts from the base and accumulates for severe impact, extreme
// urgency, and a long list of stated risks.
func riskScore(rec domain.Recommendation, h Heuristics) float64 {
	score := h.RiskBase
	switch rec.Impact {
	case domain.ImpactCritical:
		score += 0.3
	case domain.ImpactHigh:
		score += 0.2
	}
	if rec.Urgency == domain.UrgencyImmediate {
		score += 0.2
	}
	if len(rec.Risks) > 2 {
		score += 0.2
	}
	return clamp01(score)
}

// rankAlternatives orders alternatives by weighted score descending and
// assigns dense 1-based ranks. Ties keep input order and still receive
// distinct ranks.
func rankAlternatives(alternatives []domain.Alternative, criteria []domain.Criterion) []domain.Ranking {
	rankings := make([]domain.Ranking, 0, len(alternatives))
	for _, alt := range alternatives {
		rankings = append(rankings, domain.Ranking{
			AlternativeID: alt.ID,
			Score:         domain.WeightedScore(alt, criteria),
		})
	}
	sort.SliceStable(rankings, func(i, j int) bool {
		return rankings[i].Score > rankings[j].Score
	})
	for i := range rankings {
		rankings[i].Rank = i + 1
	}
	return rankings
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
