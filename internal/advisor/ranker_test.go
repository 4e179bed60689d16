package advisor

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"counsel/internal/domain"
	id "counsel/pkg/domain"
)

func candidate(title string, confidence float64, impact domain.Impact, urgency domain.Urgency, category string) domain.Recommendation {
	return domain.Recommendation{
		ID:         id.NewRecommendationID(),
		Type:       domain.TypeAction,
		Title:      title,
		Confidence: confidence,
		Impact:     impact,
		Urgency:    urgency,
		Category:   category,
	}
}

func TestCompositeScore(t *testing.T) {
	rec := candidate("x", 0.8, domain.ImpactHigh, domain.UrgencyMedium, "growth")
	c := domain.Context{PriorityWeights: map[string]float64{"growth": 1.0}}

	// 0.4*0.8 + 0.3*0.8 + 0.2*0.3 + 0.1*1.0
	assert.InDelta(t, 0.72, CompositeScore(c, rec), 1e-9)

	// Absent priority weights contribute nothing.
	assert.InDelta(t, 0.62, CompositeScore(domain.Context{}, rec), 1e-9)
}

func TestRankOrdering(t *testing.T) {
	c := domain.Context{}
	opts := Options{}.Normalize(Options{})

	candidates := []domain.Recommendation{
		candidate("weak", 0.65, domain.ImpactLow, domain.UrgencyLow, "a"),
		candidate("strong", 0.9, domain.ImpactCritical, domain.UrgencyHigh, "b"),
		candidate("middling", 0.7, domain.ImpactMedium, domain.UrgencyMedium, "c"),
	}

	ranked := rank(c, candidates, opts)
	require.Len(t, ranked, 3)
	assert.Equal(t, "strong", ranked[0].Title)
	assert.Equal(t, "middling", ranked[1].Title)
	assert.Equal(t, "weak", ranked[2].Title)

	for i := 1; i < len(ranked); i++ {
		assert.GreaterOrEqual(t,
			CompositeScore(c, ranked[i-1]), CompositeScore(c, ranked[i]),
			"scores must be non-increasing")
	}
}

func TestRankConfidenceThreshold(t *testing.T) {
	opts := Options{ConfidenceThreshold: 0.6, MaxRecommendations: 5}
	candidates := []domain.Recommendation{
		candidate("keep", 0.6, domain.ImpactLow, domain.UrgencyLow, "a"),
		candidate("drop", 0.59, domain.ImpactCritical, domain.UrgencyImmediate, "a"),
	}

	ranked := rank(domain.Context{}, candidates, opts)
	require.Len(t, ranked, 1)
	assert.Equal(t, "keep", ranked[0].Title, "threshold is inclusive at the boundary")
}

func TestRankCategoryFilter(t *testing.T) {
	opts := Options{ConfidenceThreshold: 0.1, MaxRecommendations: 5, Categories: []string{"growth"}}
	candidates := []domain.Recommendation{
		candidate("in", 0.9, domain.ImpactHigh, domain.UrgencyHigh, "growth"),
		candidate("out", 0.9, domain.ImpactHigh, domain.UrgencyHigh, "optimization"),
	}

	ranked := rank(domain.Context{}, candidates, opts)
	require.Len(t, ranked, 1)
	assert.Equal(t, "in", ranked[0].Title)
}

// Ten candidates over the threshold, default cap: exactly five survive, the
// best five.
func TestRankCap(t *testing.T) {
	opts := Options{}.Normalize(Options{})

	var candidates []domain.Recommendation
	for i := 0; i < 10; i++ {
		conf := 0.61 + float64(i)*0.03
		candidates = append(candidates, candidate(fmt.Sprintf("rec-%d", i), conf, domain.ImpactMedium, domain.UrgencyMedium, "a"))
	}

	ranked := rank(domain.Context{}, candidates, opts)
	require.Len(t, ranked, DefaultMaxRecommendations)
	assert.Equal(t, "rec-9", ranked[0].Title)
	assert.Equal(t, "rec-5", ranked[4].Title)
}

// Equal scores keep generation order, so repeat runs return identical slices.
func TestRankStability(t *testing.T) {
	opts := Options{ConfidenceThreshold: 0.1, MaxRecommendations: 10}
	candidates := []domain.Recommendation{
		candidate("first", 0.7, domain.ImpactMedium, domain.UrgencyMedium, "a"),
		candidate("second", 0.7, domain.ImpactMedium, domain.UrgencyMedium, "a"),
		candidate("third", 0.7, domain.ImpactMedium, domain.UrgencyMedium, "a"),
	}

	for run := 0; run < 5; run++ {
		ranked := rank(domain.Context{}, candidates, opts)
		require.Len(t, ranked, 3)
		assert.Equal(t, "first", ranked[0].Title)
		assert.Equal(t, "second", ranked[1].Title)
		assert.Equal(t, "third", ranked[2].Title)
	}
}

func TestOptionsNormalize(t *testing.T) {
	opts := Options{}.Normalize(Options{})
	assert.Equal(t, DefaultMaxRecommendations, opts.MaxRecommendations)
	assert.Equal(t, DefaultConfidenceThreshold, opts.ConfidenceThreshold)

	opts = Options{MaxRecommendations: 2, ConfidenceThreshold: 0.3}.Normalize(Options{MaxRecommendations: 7})
	assert.Equal(t, 2, opts.MaxRecommendations)
	assert.Equal(t, 0.3, opts.ConfidenceThreshold)

	opts = Options{}.Normalize(Options{MaxRecommendations: 7, ConfidenceThreshold: 0.4})
	assert.Equal(t, 7, opts.MaxRecommendations)
	assert.Equal(t, 0.4, opts.ConfidenceThreshold)

	opts = Options{Categories: []string{" Growth ", "growth", "", "OPTIMIZATION"}}.Normalize(Options{})
	assert.Equal(t, []string{"growth", "optimization"}, opts.Categories)
}
