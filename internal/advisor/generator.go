package advisor

import (
	"context"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"counsel/internal/domain"
	"counsel/internal/registry"
	id "counsel/pkg/domain"
	dErrors "counsel/pkg/domain-errors"
	"counsel/pkg/requestcontext"
)

// Generation pass names, used for logging and metrics labels.
const (
	passDomainRules  = "domain_rules"
	passPatterns     = "patterns"
	passOptimization = "optimization"
)

type generationPass struct {
	name string
	run  func(context.Context, domain.Context) ([]domain.Recommendation, error)
}

// generate runs the three candidate-producing passes concurrently and merges
// their output in pass order. A failing pass degrades the result set instead
// of failing the invocation: its error is logged and counted, and the other
// passes' candidates are kept.
func (s *Service) generate(ctx context.Context, c domain.Context) []domain.Recommendation {
	passes := []generationPass{
		{passDomainRules, s.domainRulesPass},
		{passPatterns, s.patternPass},
		{passOptimization, s.optimizationPass},
	}

	results := make([][]domain.Recommendation, len(passes))
	g, gctx := errgroup.WithContext(ctx)
	for i, pass := range passes {
		i, pass := i, pass
		g.Go(func() error {
			start := time.Now()
			recs, err := runPass(gctx, c, pass.run)
			s.metrics.ObserveGenerationPass(pass.name, time.Since(start))
			if err != nil {
				s.metrics.IncGenerationPassFailure(pass.name)
				s.logger.WarnContext(gctx, "generation pass failed, continuing without its candidates",
					"pass", pass.name,
					"domain", c.Domain,
					"error", err,
				)
				return nil
			}
			results[i] = recs
			return nil
		})
	}
	_ = g.Wait() // passes never propagate errors

	var merged []domain.Recommendation
	for _, recs := range results {
		for _, rec := range recs {
			if err := rec.Validate(); err != nil {
				s.logger.WarnContext(ctx, "dropping invalid candidate",
					"title", rec.Title,
					"error", err,
				)
				continue
			}
			merged = append(merged, rec)
		}
	}
	return merged
}

// runPass shields the pipeline from panicking rule code.
func runPass(
	ctx context.Context,
	c domain.Context,
	run func(context.Context, domain.Context) ([]domain.Recommendation, error),
) (recs []domain.Recommendation, err error) {
	defer func() {
		if r := recover(); r != nil {
			recs = nil
			err = dErrors.Newf(dErrors.CodeInternal, "generation pass panicked: %v", r)
		}
	}()
	return run(ctx, c)
}

// =============================================================================
// Pass 1: registered domain rules
// =============================================================================

// domainRulesPass applies every rule registered for the context's domain.
// A failing rule is skipped; the remaining rules still contribute.
func (s *Service) domainRulesPass(ctx context.Context, c domain.Context) ([]domain.Recommendation, error) {
	var out []domain.Recommendation
	for _, rule := range s.registry.RulesFor(c.Domain) {
		recs, err := applyRule(ctx, rule, c)
		if err != nil {
			s.logger.WarnContext(ctx, "rule failed, skipping",
				"rule", rule.Name(),
				"domain", c.Domain,
				"error", err,
			)
			continue
		}
		out = append(out, recs...)
	}
	return out, nil
}

// applyRule shields the pass from a single rule panicking; the remaining
// rules still run.
func applyRule(ctx context.Context, rule registry.Rule, c domain.Context) (recs []domain.Recommendation, err error) {
	defer func() {
		if r := recover(); r != nil {
			recs = nil
			err = dErrors.Newf(dErrors.CodeInternal, "rule panicked: %v", r)
		}
	}()
	return rule.Apply(ctx, c)
}

// =============================================================================
// Pass 2: cross-domain patterns
// =============================================================================

// patternPass matches the context against objective and risk-posture patterns
// that hold regardless of domain.
func (s *Service) patternPass(ctx context.Context, c domain.Context) ([]domain.Recommendation, error) {
	objective := strings.ToLower(c.Objective)
	var out []domain.Recommendation

	if strings.Contains(objective, "performance") || strings.Contains(objective, "efficiency") {
		out = append(out, stamp(ctx, domain.Recommendation{
			Type:        domain.TypeOptimization,
			Title:       "Profile before optimizing",
			Description: "Measure the current workload to locate the dominant bottleneck before committing to changes.",
			Action:      "Instrument the critical path and rank bottlenecks by measured cost",
			Confidence:  0.8,
			Impact:      domain.ImpactHigh,
			Urgency:     domain.UrgencyMedium,
			Category:    "optimization",
			Reasoning:   "The objective targets performance or efficiency; measured baselines prevent optimizing the wrong thing.",
			Benefits:    []string{"effort lands on the real bottleneck", "improvements become verifiable"},
			Risks:       []string{"profiling adds a short delay before visible gains"},
		}))
	}

	if c.RiskTolerance.IsAverse() {
		out = append(out, stamp(ctx, domain.Recommendation{
			Type:        domain.TypeRiskMitigation,
			Title:       "Build in reversibility",
			Description: "Favor staged, reversible moves so any step can be unwound without sunk cost.",
			Action:      "Split the plan into independently reversible stages with explicit exit criteria",
			Confidence:  0.85,
			Impact:      domain.ImpactHigh,
			Urgency:     domain.UrgencyMedium,
			Category:    "risk-management",
			Reasoning:   "A risk-averse posture calls for options that preserve the ability to retreat.",
			Benefits:    []string{"bounded downside per stage", "earlier detection of failing bets"},
			Risks:       []string{"staging slows total delivery"},
		}))
	}

	if strings.Contains(objective, "growth") || strings.Contains(objective, "scale") {
		confidence := 0.65
		if c.RiskTolerance == domain.RiskToleranceHigh || c.RiskTolerance == domain.RiskToleranceVeryHigh {
			confidence = 0.75
		}
		out = append(out, stamp(ctx, domain.Recommendation{
			Type:        domain.TypeStrategy,
			Title:       "Concentrate growth bets",
			Description: "Pick the one or two expansion moves with the strongest evidence and fund them fully.",
			Action:      "Rank expansion options by evidence and concentrate resources on the top candidates",
			Confidence:  confidence,
			Impact:      domain.ImpactHigh,
			Urgency:     domain.UrgencyMedium,
			Category:    "growth",
			Reasoning:   "Growth objectives reward concentration; spreading thin across every option dilutes all of them.",
			Benefits:    []string{"compounding returns on the strongest bet", "clearer success signal"},
			Risks:       []string{"a wrong pick costs more when concentrated"},
		}))
	}

	return out, nil
}

// =============================================================================
// Pass 3: state-driven optimization
// =============================================================================

// patternPass and the domain rules reason from intent; this pass reasons from
// the observed situation snapshot and the context's resource signals.
func (s *Service) optimizationPass(ctx context.Context, c domain.Context) ([]domain.Recommendation, error) {
	var out []domain.Recommendation

	if len(c.CurrentState) > 0 {
		if eff := observedEfficiency(c.CurrentState); eff < s.heuristics.EfficiencyThreshold {
			out = append(out, stamp(ctx, domain.Recommendation{
				Type:        domain.TypeOptimization,
				Title:       "Repair the weakest process step",
				Description: "Observed efficiency is below the acceptable floor; locate and fix the step losing the most throughput.",
				Action:      "Map the process end to end and eliminate the single largest loss first",
				Confidence:  0.75,
				Impact:      domain.ImpactMedium,
				Urgency:     domain.UrgencyHigh,
				Category:    "process-improvement",
				Reasoning:   "The situation snapshot shows efficiency below threshold; targeted repair beats broad change.",
				Benefits:    []string{"measurable throughput recovery", "low blast radius"},
				Risks:       []string{"local fixes can move the bottleneck elsewhere"},
			}))
		}
	}

	if c.Budget != nil || hasResourceSignal(c) {
		out = append(out, stamp(ctx, domain.Recommendation{
			Type:        domain.TypeOptimization,
			Title:       "Rebalance resource allocation",
			Description: "Reallocate budget and people from low-yield activities toward the stated objective.",
			Action:      "Review current allocation against the objective and shift the bottom quartile of spend",
			Confidence:  0.7,
			Impact:      domain.ImpactMedium,
			Urgency:     domain.UrgencyMedium,
			Category:    "resource-management",
			Reasoning:   "Explicit resource constraints are present; allocation is the cheapest lever to pull first.",
			Benefits:    []string{"frees capacity without new spend"},
			Risks:       []string{"reallocations disturb running commitments"},
		}))
	}

	return out, nil
}

// observedEfficiency derives an efficiency figure from the situation
// snapshot, preferring a direct reading, then the error-rate complement,
// then quality. An uninformative snapshot reads as neutral.
func observedEfficiency(state map[string]any) float64 {
	if v, ok := asFloat(state["efficiency"]); ok {
		return v
	}
	if v, ok := asFloat(state["error_rate"]); ok {
		return 1 - v
	}
	if v, ok := asFloat(state["quality_score"]); ok {
		return v
	}
	return 0.5
}

func hasResourceSignal(c domain.Context) bool {
	if _, ok := c.Constraints["resources"]; ok {
		return true
	}
	_, ok := c.CurrentState["resources"]
	return ok
}

// asFloat widens the numeric types JSON and callers commonly hand us.
func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

// stamp assigns identity and creation time to a freshly built candidate.
func stamp(ctx context.Context, rec domain.Recommendation) domain.Recommendation {
	rec.ID = id.NewRecommendationID()
	rec.CreatedAt = requestcontext.Now(ctx)
	return rec
}
