package registry

import (
	"context"
	"fmt"

	"counsel/internal/domain"
	id "counsel/pkg/domain"
	"counsel/pkg/requestcontext"
)

// Rule is a named expert rule keyed by domain. Rules must be pure functions
// of the context they receive: no retained state between applications, so
// registry snapshots stay safe to share across concurrent requests.
type Rule interface {
	// Name identifies the rule in logs and partial-degradation events.
	Name() string
	// Domain is the advisory domain the rule applies to.
	Domain() string
	// Apply produces zero or more candidate recommendations for the context.
	Apply(ctx context.Context, c domain.Context) ([]domain.Recommendation, error)
}

// knowledgeFn resolves the current knowledge record for a domain. Built-in
// rules read through it on every application so hot-swapped knowledge takes
// effect without re-registering rules.
type knowledgeFn func(dom string) (Record, bool)

// expertRule is the shared shape of the built-in rules: a name, a domain,
// and a build function producing candidates from context plus knowledge.
type expertRule struct {
	name      string
	domain    string
	knowledge knowledgeFn
	build     func(ctx context.Context, c domain.Context, rec Record) []domain.Recommendation
}

func (r expertRule) Name() string   { return r.name }
func (r expertRule) Domain() string { return r.domain }

func (r expertRule) Apply(ctx context.Context, c domain.Context) ([]domain.Recommendation, error) {
	rec, _ := r.knowledge(r.domain)
	return r.build(ctx, c, rec), nil
}

// builtinRules constructs the expert rules for the known domains. The
// knowledge function is read at application time, not capture time.
func builtinRules(knowledge knowledgeFn) []Rule {
	return []Rule{
		expertRule{name: "business-positioning", domain: domain.DomainBusiness, knowledge: knowledge, build: buildBusiness},
		expertRule{name: "technology-modernization", domain: domain.DomainTechnology, knowledge: knowledge, build: buildTechnology},
		expertRule{name: "marketing-focus", domain: domain.DomainMarketing, knowledge: knowledge, build: buildMarketing},
		expertRule{name: "finance-controls", domain: domain.DomainFinance, knowledge: knowledge, build: buildFinance},
	}
}

// newCandidate stamps the fields every built-in candidate shares.
func newCandidate(ctx context.Context, base domain.Recommendation) domain.Recommendation {
	base.ID = id.NewRecommendationID()
	base.CreatedAt = requestcontext.Now(ctx)
	return base
}

func buildBusiness(ctx context.Context, c domain.Context, rec Record) []domain.Recommendation {
	out := []domain.Recommendation{
		newCandidate(ctx, domain.Recommendation{
			Type:        domain.TypeStrategy,
			Title:       "Sharpen strategic positioning",
			Description: "Clarify the value proposition and concentrate resources on the segments where it wins.",
			Action:      "Run a positioning review and reallocate investment toward the two strongest segments.",
			Confidence:  0.7,
			Impact:      domain.ImpactHigh,
			Urgency:     domain.UrgencyMedium,
			Category:    "growth",
			Reasoning: fmt.Sprintf(
				"Business domain expertise applied to the objective %q: focused positioning compounds across sales, product, and hiring decisions.", c.Objective),
			Benefits:       rec.Benefits,
			SuccessMetrics: rec.Metrics,
			Timeline: []domain.Phase{
				{Name: "positioning review", Horizon: domain.HorizonShortTerm},
				{Name: "segment reallocation", Horizon: domain.HorizonMediumTerm},
			},
			Resources: &domain.Resources{
				Financial: 25000,
				Personnel: []string{"strategy lead"},
			},
		}),
	}

	if c.Budget != nil {
		out = append(out, newCandidate(ctx, domain.Recommendation{
			Type:        domain.TypeDecision,
			Title:       "Rebalance budget allocation",
			Description: "Shift budget from low-yield activities into the initiatives backing the stated objective.",
			Action:      "Review line items against objective contribution and rebalance quarterly.",
			Confidence:  0.64,
			Impact:      domain.ImpactMedium,
			Urgency:     domain.UrgencyMedium,
			Category:    "resource-management",
			Reasoning: fmt.Sprintf(
				"A declared budget of %.0f invites an explicit allocation decision tied to %q.", *c.Budget, c.Objective),
			Benefits: []string{"clearer spending accountability", "faster reallocation cycles"},
			Timeline: []domain.Phase{
				{Name: "budget review", Horizon: domain.HorizonShortTerm},
			},
		}))
	}

	return out
}

func buildTechnology(ctx context.Context, c domain.Context, rec Record) []domain.Recommendation {
	return []domain.Recommendation{
		newCandidate(ctx, domain.Recommendation{
			Type:        domain.TypeAction,
			Title:       "Modernize critical systems",
			Description: "Retire the highest-friction legacy components before they constrain the objective.",
			Action:      "Inventory systems by change-failure rate and replace the top offender first.",
			Confidence:  0.68,
			Impact:      domain.ImpactHigh,
			Urgency:     domain.UrgencyMedium,
			Category:    "modernization",
			Reasoning: fmt.Sprintf(
				"Technology domain expertise applied to the objective %q: legacy friction taxes every downstream initiative.", c.Objective),
			Benefits:       rec.Benefits,
			SuccessMetrics: rec.Metrics,
			Risks:          []string{"migration disruption", "temporary capability gaps"},
			Timeline: []domain.Phase{
				{Name: "system inventory", Horizon: domain.HorizonShortTerm},
				{Name: "staged replacement", Horizon: domain.HorizonLongTerm},
			},
			Resources: &domain.Resources{
				Financial: 40000,
				Personnel: []string{"platform engineer", "migration lead"},
			},
		}),
		newCandidate(ctx, domain.Recommendation{
			Type:        domain.TypeOptimization,
			Title:       "Automate recurring operations",
			Description: "Convert the most frequent manual operational tasks into automated runbooks.",
			Action:      "Measure task frequency for two weeks, automate the top three.",
			Confidence:  0.72,
			Impact:      domain.ImpactMedium,
			Urgency:     domain.UrgencyLow,
			Category:    "automation",
			Reasoning: fmt.Sprintf(
				"Recurring manual work scales linearly with load; automation decouples %q from headcount.", c.Objective),
			Benefits: []string{"reduced toil", "consistent execution"},
			Timeline: []domain.Phase{
				{Name: "task measurement", Horizon: domain.HorizonShortTerm},
				{Name: "automation rollout", Horizon: domain.HorizonMediumTerm},
			},
		}),
	}
}

func buildMarketing(ctx context.Context, c domain.Context, rec Record) []domain.Recommendation {
	return []domain.Recommendation{
		newCandidate(ctx, domain.Recommendation{
			Type:        domain.TypeStrategy,
			Title:       "Refine audience segmentation",
			Description: "Split the audience by observed behavior and tailor messaging per segment.",
			Action:      "Build behavioral segments from the last two quarters of engagement data.",
			Confidence:  0.66,
			Impact:      domain.ImpactMedium,
			Urgency:     domain.UrgencyMedium,
			Category:    "growth",
			Reasoning: fmt.Sprintf(
				"Marketing domain expertise applied to the objective %q: segment-fit messaging outperforms broadcast.", c.Objective),
			Benefits:       rec.Benefits,
			SuccessMetrics: rec.Metrics,
			Timeline: []domain.Phase{
				{Name: "segment analysis", Horizon: domain.HorizonShortTerm},
			},
		}),
		newCandidate(ctx, domain.Recommendation{
			Type:        domain.TypeOptimization,
			Title:       "Concentrate spend on converting channels",
			Description: "Shift budget toward the channels with proven conversion and cut the long tail.",
			Action:      "Rank channels by cost per conversion and drop the bottom quartile.",
			Confidence:  0.69,
			Impact:      domain.ImpactMedium,
			Urgency:     domain.UrgencyHigh,
			Category:    "optimization",
			Reasoning:   "Channel performance is measurable; concentrating spend removes known waste.",
			Benefits:    []string{"lower acquisition cost", "simpler attribution"},
			Timeline: []domain.Phase{
				{Name: "channel audit", Horizon: domain.HorizonShortTerm},
			},
		}),
	}
}

func buildFinance(ctx context.Context, c domain.Context, rec Record) []domain.Recommendation {
	return []domain.Recommendation{
		newCandidate(ctx, domain.Recommendation{
			Type:        domain.TypeRiskMitigation,
			Title:       "Tighten cash-flow controls",
			Description: "Shorten the feedback loop between spend decisions and cash position visibility.",
			Action:      "Move to weekly cash reporting with variance alerts on the top five cost centers.",
			Confidence:  0.71,
			Impact:      domain.ImpactHigh,
			Urgency:     domain.UrgencyHigh,
			Category:    "risk-management",
			Reasoning: fmt.Sprintf(
				"Finance domain expertise applied to the objective %q: cash visibility is the cheapest available hedge.", c.Objective),
			Benefits:       rec.Benefits,
			SuccessMetrics: rec.Metrics,
			Timeline: []domain.Phase{
				{Name: "reporting cadence change", Horizon: domain.HorizonShortTerm},
			},
		}),
		newCandidate(ctx, domain.Recommendation{
			Type:        domain.TypeDecision,
			Title:       "Stage investments by payback period",
			Description: "Sequence planned investments so shorter-payback items fund the longer bets.",
			Action:      "Order the investment backlog by payback period and gate each tranche on realized returns.",
			Confidence:  0.63,
			Impact:      domain.ImpactMedium,
			Urgency:     domain.UrgencyMedium,
			Category:    "resource-management",
			Reasoning:   "Staging by payback keeps optionality while funding the long-horizon work.",
			Benefits:    []string{"self-funding investment ladder", "earlier failure signals"},
			Timeline: []domain.Phase{
				{Name: "backlog ordering", Horizon: domain.HorizonShortTerm},
				{Name: "tranche gating", Horizon: domain.HorizonLongTerm},
			},
		}),
	}
}
