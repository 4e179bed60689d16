package advisor

import (
	"strings"

	"counsel/internal/domain"
)

// assessRisk scans the context and the surviving recommendations for risk
// factors. Every factor is paired with a mitigation at the same index.
func assessRisk(c domain.Context, recs []domain.Recommendation, h Heuristics) domain.RiskAssessment {
	var factors, mitigations []string
	add := func(factor, mitigation string) {
		factors = append(factors, factor)
		mitigations = append(mitigations, mitigation)
	}

	if strings.Contains(c.Timeline, "immediate") {
		add("time pressure may compromise decision quality",
			"stage delivery and protect review time for the highest-stakes choices")
	}
	if c.Budget != nil && *c.Budget < h.LowBudgetThreshold {
		add("limited budget constrains execution options",
			"sequence spending against the ranked recommendations and revisit scope early")
	}
	if len(c.Stakeholders) > h.StakeholderThreshold {
		add("large stakeholder group slows alignment",
			"delegate decisions to a small named group and brief the rest on outcomes")
	}

	highImpact := 0
	for _, rec := range recs {
		if rec.Impact == domain.ImpactHigh || rec.Impact == domain.ImpactCritical {
			highImpact++
		}
	}
	if highImpact > h.HighImpactThreshold {
		add("many concurrent high-impact changes risk change overload",
			"stagger rollouts so each high-impact change stabilizes before the next begins")
	}

	return domain.RiskAssessment{
		Level:       riskLevelFor(len(factors)),
		Factors:     factors,
		Mitigations: mitigations,
	}
}

func riskLevelFor(factors int) domain.RiskLevel {
	switch {
	case factors > 5:
		return domain.RiskCritical
	case factors > 3:
		return domain.RiskHigh
	case factors > 1:
		return domain.RiskMedium
	default:
		return domain.RiskLow
	}
}

// assessOpportunity derives opportunity areas from the context's domain and
// objective vocabulary.
func assessOpportunity(c domain.Context) domain.OpportunityAssessment {
	objective := strings.ToLower(c.Objective)
	var areas []string

	if c.Domain == domain.DomainTechnology || strings.Contains(objective, "digital") {
		areas = append(areas, "process automation", "advanced analytics")
	}
	if c.Domain == domain.DomainBusiness || strings.Contains(objective, "strategy") {
		areas = append(areas, "market expansion", "strategic partnerships")
	}
	if strings.Contains(objective, "innovation") {
		areas = append(areas, "research and development")
	}

	timeline := c.Timeline
	if timeline == "" {
		timeline = domain.TimelineMediumTerm
	}

	return domain.OpportunityAssessment{
		Level:    opportunityLevelFor(len(areas)),
		Areas:    areas,
		Timeline: timeline,
	}
}

func opportunityLevelFor(areas int) domain.OpportunityLevel {
	switch {
	case areas > 5:
		return domain.OpportunityExceptional
	case areas > 3:
		return domain.OpportunityHigh
	case areas < 2:
		return domain.OpportunityLow
	default:
		return domain.OpportunityMedium
	}
}
