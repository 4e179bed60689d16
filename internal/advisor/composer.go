package advisor

import (
	"fmt"
	"strings"
	"time"

	"gonum.org/v1/gonum/stat"

	"counsel/internal/domain"
	id "counsel/pkg/domain"
	pstrings "counsel/pkg/platform/strings"
)

// analysisMethod names the scoring approach in result metadata.
const analysisMethod = "weighted-multi-criteria"

// compose assembles the final result. Everything here is a deterministic
// function of its inputs except the advice ID; repeat invocations with the
// same context produce identical content.
func compose(
	c domain.Context,
	recs []domain.Recommendation,
	matrix *domain.DecisionMatrix,
	risk domain.RiskAssessment,
	opportunity domain.OpportunityAssessment,
	elapsed time.Duration,
	now time.Time,
) domain.Result {
	return domain.Result{
		ID:              id.NewAdviceID(),
		Recommendations: recs,
		Analysis: domain.Analysis{
			Summary:     summarize(c, recs),
			KeyFindings: keyFindings(recs, risk, opportunity),
			Risk:        risk,
			Opportunity: opportunity,
		},
		DecisionMatrix: matrix,
		Reasoning:      explain(c, recs, risk),
		Confidence:     aggregateConfidence(recs),
		Metadata: domain.Metadata{
			AnalysisMethod: analysisMethod,
			DataPoints:     c.DataPoints(),
			ProcessingTime: elapsed,
			Timestamp:      now,
		},
	}
}

// aggregateConfidence blends the top recommendation's confidence with the
// mean across all of them, weighting the top pick at 0.4. No survivors means
// no confidence.
func aggregateConfidence(recs []domain.Recommendation) float64 {
	if len(recs) == 0 {
		return 0
	}
	confidences := make([]float64, len(recs))
	for i, rec := range recs {
		confidences[i] = rec.Confidence
	}
	return 0.4*recs[0].Confidence + 0.6*stat.Mean(confidences, nil)
}

func summarize(c domain.Context, recs []domain.Recommendation) string {
	if len(recs) == 0 {
		return fmt.Sprintf(
			"No recommendation for the %s domain cleared the confidence threshold; consider relaxing constraints or lowering the threshold.",
			c.Domain,
		)
	}

	categories := make([]string, 0, len(recs))
	for _, rec := range recs {
		categories = append(categories, rec.Category)
	}
	categories = pstrings.DedupeAndTrim(categories)

	return fmt.Sprintf("Produced %d recommendation(s) for the %s domain covering %s.",
		len(recs), c.Domain, strings.Join(categories, ", "))
}

func keyFindings(recs []domain.Recommendation, risk domain.RiskAssessment, opportunity domain.OpportunityAssessment) []string {
	findings := make([]string, 0, 3)
	if len(recs) > 0 {
		findings = append(findings, fmt.Sprintf("Top recommendation: %s (confidence %.2f)",
			recs[0].Title, recs[0].Confidence))
	}
	findings = append(findings,
		fmt.Sprintf("Overall risk level: %s (%d factor(s) identified)", risk.Level, len(risk.Factors)),
		fmt.Sprintf("Opportunity level: %s (%d area(s) identified)", opportunity.Level, len(opportunity.Areas)),
	)
	return findings
}

// explain renders the reasoning template. The wording is fixed so results
// stay comparable across invocations.
func explain(c domain.Context, recs []domain.Recommendation, risk domain.RiskAssessment) string {
	if len(recs) == 0 {
		return fmt.Sprintf(
			"Analyzed the %s domain objective %q and found no recommendations above the confidence threshold. Overall risk level: %s.",
			c.Domain, c.Objective, risk.Level,
		)
	}
	return fmt.Sprintf(
		"Analyzed the %s domain objective %q and produced %d recommendation(s). The top recommendation is %q with confidence %.2f. Overall risk level: %s.",
		c.Domain, c.Objective, len(recs), recs[0].Title, recs[0].Confidence, risk.Level,
	)
}
