package sample

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Same seed, same stream.
func TestGeneratorDeterminism(t *testing.T) {
	first := NewGenerator(42)
	second := NewGenerator(42)

	for i := 0; i < 10; i++ {
		a := first.Query()
		b := second.Query()
		require.NotNil(t, a.Context)
		require.NotNil(t, b.Context)
		assert.Equal(t, a.Context.Domain, b.Context.Domain)
		assert.Equal(t, a.Context.Objective, b.Context.Objective)
		assert.Equal(t, *a.Context.Budget, *b.Context.Budget)
	}
}

func TestGeneratorProducesResolvableQueries(t *testing.T) {
	gen := NewGenerator(7)
	for i := 0; i < 20; i++ {
		q := gen.Query()
		require.NotNil(t, q.Context)
		assert.NotEmpty(t, q.Context.Domain)
		assert.NotEmpty(t, q.Context.Objective)
		assert.True(t, q.Context.RiskTolerance.IsValid())
	}
}

func TestPredictor(t *testing.T) {
	predictor := NewPredictor(3)
	assert.Equal(t, "sample", predictor.Name())

	q := NewGenerator(3).Query()
	prediction, err := predictor.Predict(context.Background(), *q.Context)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, prediction.Score, 0.5)
	assert.LessOrEqual(t, prediction.Score, 1.0)
	assert.NotEmpty(t, prediction.Headline)
}
