package advisor

import (
	"sort"

	"counsel/internal/domain"
)

// Composite score weights. Confidence dominates, then impact, then urgency,
// then the caller's own category priority.
const (
	confidenceWeight = 0.4
	impactWeight     = 0.3
	urgencyWeight    = 0.2
	priorityWeight   = 0.1
)

// CompositeScore is the ranking score for a recommendation within a context.
// It is a pure function of the recommendation's fields and the context's
// priority weights, so callers can recompute it from a returned result.
func CompositeScore(c domain.Context, rec domain.Recommendation) float64 {
	return confidenceWeight*rec.Confidence +
		impactWeight*rec.Impact.Weight() +
		urgencyWeight*rec.Urgency.Weight() +
		priorityWeight*c.PriorityWeight(rec.Category)
}

// rank filters candidates by category and confidence, orders the survivors
// by composite score descending, and caps the list. The sort is stable:
// equally scored candidates keep their generation order, which keeps repeat
// invocations byte-for-byte identical.
func rank(c domain.Context, candidates []domain.Recommendation, opts Options) []domain.Recommendation {
	allowed := map[string]struct{}{}
	for _, cat := range opts.Categories {
		allowed[cat] = struct{}{}
	}

	kept := make([]domain.Recommendation, 0, len(candidates))
	for _, rec := range candidates {
		if len(allowed) > 0 {
			if _, ok := allowed[rec.Category]; !ok {
				continue
			}
		}
		if rec.Confidence < opts.ConfidenceThreshold {
			continue
		}
		kept = append(kept, rec)
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return CompositeScore(c, kept[i]) > CompositeScore(c, kept[j])
	})

	if len(kept) > opts.MaxRecommendations {
		kept = kept[:opts.MaxRecommendations]
	}
	return kept
}
