// Package sample produces deterministic demo inputs for local runs and
// load-shaped tests. Everything is driven by a caller-provided seed so two
// runs with the same seed exercise the engine identically.
package sample

import (
	"context"
	"fmt"
	"math/rand"

	"counsel/internal/advisor"
	"counsel/internal/advisor/ports"
	"counsel/internal/domain"
)

var objectives = []string{
	"Improve operational efficiency across the organization",
	"Scale the platform for projected growth",
	"Reduce infrastructure spend without hurting reliability",
	"Launch in two new market segments",
	"Modernize the legacy billing system",
	"Strengthen financial controls ahead of the audit",
}

var domains = []string{
	domain.DomainBusiness,
	domain.DomainTechnology,
	domain.DomainMarketing,
	domain.DomainFinance,
	domain.DomainGeneral,
}

var tolerances = []domain.RiskTolerance{
	domain.RiskToleranceLow,
	domain.RiskToleranceMedium,
	domain.RiskToleranceHigh,
}

var timelines = []string{
	domain.TimelineImmediate,
	domain.TimelineShortTerm,
	domain.TimelineMediumTerm,
	domain.TimelineLongTerm,
}

// Generator emits pseudo-random advisory queries.
type Generator struct {
	rng *rand.Rand
}

func NewGenerator(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// Query produces one structured advisory query.
func (g *Generator) Query() advisor.Query {
	budget := float64(g.rng.Intn(40)+1) * 5000
	c := &domain.Context{
		Domain:        domains[g.rng.Intn(len(domains))],
		Objective:     objectives[g.rng.Intn(len(objectives))],
		RiskTolerance: tolerances[g.rng.Intn(len(tolerances))],
		Timeline:      timelines[g.rng.Intn(len(timelines))],
		Budget:        &budget,
		CurrentState: map[string]any{
			"efficiency": 0.4 + g.rng.Float64()*0.5,
		},
	}
	if g.rng.Intn(2) == 0 {
		c.Stakeholders = make([]string, g.rng.Intn(14))
		for i := range c.Stakeholders {
			c.Stakeholders[i] = fmt.Sprintf("stakeholder-%d", i)
		}
	}
	return advisor.Query{Context: c}
}

// Predictor is a deterministic stand-in for a model-backed predictor.
type Predictor struct {
	rng *rand.Rand
}

func NewPredictor(seed int64) *Predictor {
	return &Predictor{rng: rand.New(rand.NewSource(seed))}
}

func (p *Predictor) Name() string { return "sample" }

func (p *Predictor) Predict(_ context.Context, c domain.Context) (ports.Prediction, error) {
	score := 0.5 + p.rng.Float64()*0.5
	return ports.Prediction{
		Score:     score,
		Headline:  fmt.Sprintf("Pilot a focused initiative in the %s domain", c.Domain),
		Rationale: fmt.Sprintf("Historical patterns similar to %q resolved favorably.", c.Objective),
	}, nil
}
