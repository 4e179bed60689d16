package advisor

import (
	"strings"

	"counsel/internal/domain"
	dErrors "counsel/pkg/domain-errors"
)

// Query is one advisory request in any of the three accepted shapes:
// structured (Context set), free text (Text set), or opaque state (State
// set). When several are set, the most structured one wins.
type Query struct {
	Text    string          `json:"text,omitempty"`
	Context *domain.Context `json:"context,omitempty"`
	State   map[string]any  `json:"state,omitempty"`
}

// Resolve turns a query into a normalized advisory context. Free-text and
// opaque inputs always resolve to a usable context; only a structured context
// with a missing objective is rejected.
//
// Errors: CodeValidation when the query is empty or a structured context has
// no objective.
func Resolve(q Query) (domain.Context, error) {
	switch {
	case q.Context != nil:
		return resolveStructured(*q.Context)
	case strings.TrimSpace(q.Text) != "":
		return resolveText(q.Text), nil
	case len(q.State) > 0:
		return resolveState(q.State), nil
	default:
		return domain.Context{}, dErrors.New(dErrors.CodeValidation, "advisory query is empty")
	}
}

func resolveStructured(c domain.Context) (domain.Context, error) {
	c.Objective = strings.TrimSpace(c.Objective)
	if c.Objective == "" {
		return domain.Context{}, dErrors.New(dErrors.CodeValidation, "objective is required")
	}

	c.Domain = strings.ToLower(strings.TrimSpace(c.Domain))
	if c.Domain == "" {
		c.Domain = domain.DomainGeneral
	}
	tolerance, err := domain.ParseRiskTolerance(string(c.RiskTolerance))
	if err != nil {
		return domain.Context{}, dErrors.Wrap(err, dErrors.CodeValidation, "risk tolerance")
	}
	c.RiskTolerance = tolerance
	if c.Timeline == "" {
		c.Timeline = domain.TimelineMediumTerm
	}
	return c, nil
}

// Keyword tables for free-text resolution. First match wins, so order is
// part of the behavior.
var domainKeywords = []struct {
	domain   string
	keywords []string
}{
	{domain.DomainTechnology, []string{"technology", "software", "system", "technical", "digital", "infrastructure"}},
	{domain.DomainMarketing, []string{"marketing", "brand", "campaign", "audience", "customer acquisition"}},
	{domain.DomainFinance, []string{"finance", "financial", "budget", "investment", "cash"}},
	{domain.DomainBusiness, []string{"business", "company", "organization", "revenue", "operations"}},
}

func resolveText(text string) domain.Context {
	objective := strings.TrimSpace(text)
	lower := strings.ToLower(objective)

	resolved := domain.DomainGeneral
	for _, entry := range domainKeywords {
		if containsAny(lower, entry.keywords) {
			resolved = entry.domain
			break
		}
	}

	tolerance := domain.RiskToleranceMedium
	switch {
	case containsAny(lower, []string{"conservative", "safe", "cautious", "careful"}):
		tolerance = domain.RiskToleranceLow
	case containsAny(lower, []string{"aggressive", "bold", "risky", "disrupt"}):
		tolerance = domain.RiskToleranceHigh
	}

	timeline := domain.TimelineMediumTerm
	switch {
	case containsAny(lower, []string{"immediate", "urgent", "asap", "now"}):
		timeline = domain.TimelineImmediate
	case containsAny(lower, []string{"short", "quick", "this quarter"}):
		timeline = domain.TimelineShortTerm
	case containsAny(lower, []string{"long", "strategic", "multi-year"}):
		timeline = domain.TimelineLongTerm
	}

	return domain.Context{
		Domain:        resolved,
		Objective:     objective,
		RiskTolerance: tolerance,
		Timeline:      timeline,
	}
}

// resolveState accepts an opaque situation snapshot. The objective is generic
// but the snapshot itself is kept so the optimization pass can read it.
func resolveState(state map[string]any) domain.Context {
	return domain.Context{
		Domain:        domain.DomainGeneral,
		Objective:     "Provide decision support for the current situation",
		RiskTolerance: domain.RiskToleranceMedium,
		Timeline:      domain.TimelineMediumTerm,
		CurrentState:  state,
	}
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
