package model

import (
	"context"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"UsageCast/internal/domain/models"
	"UsageCast/pkg/logger"
)

func simulateAR1(n int, phi float64, seed int64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	out := make([]float64, n)
	for i := 1; i < n; i++ {
		out[i] = phi*out[i-1] + rng.NormFloat64()
	}
	return out
}

func randomWalk(n int, seed int64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	out := make([]float64, n)
	out[0] = 100
	for i := 1; i < n; i++ {
		out[i] = out[i-1] + 0.5 + rng.NormFloat64()
	}
	return out
}

func TestARIMARecoversAR1Coefficient(t *testing.T) {
	cfg := models.ModelConfig{Order: models.Order{P: 1}}

	fitted, err := NewARIMABackend(logger.Nop()).Fit(context.Background(), simulateAR1(500, 0.7, 42), cfg)

	require.NoError(t, err)
	fit := fitted.(*arimaFit)
	require.Len(t, fit.phi, 1)
	assert.InDelta(t, 0.7, fit.phi[0], 0.1)
	assert.InDelta(t, 1.0, fit.sigma2, 0.25)
}

func TestARIMADefaultConfigForecast(t *testing.T) {
	fitted, err := NewARIMABackend(logger.Nop()).Fit(context.Background(), randomWalk(60, 7), models.DefaultModelConfig())
	require.NoError(t, err)

	preds, errs, err := fitted.Predict(context.Background(), 11)

	require.NoError(t, err)
	require.Len(t, preds, 11)
	require.Len(t, errs, 11)
	for i := range preds {
		assert.False(t, math.IsNaN(preds[i]) || math.IsInf(preds[i], 0), "prediction %d", i)
		assert.Greater(t, errs[i], 0.0)
		if i > 0 {
			assert.GreaterOrEqual(t, errs[i], errs[i-1])
		}
	}
}

func TestARIMAAutoOrderHandlesMinimumSeries(t *testing.T) {
	values := []float64{12, 15, 11, 18, 14, 19, 16, 22, 17, 21}

	fitted, err := NewARIMABackend(logger.Nop()).Fit(context.Background(), values, models.DefaultModelConfig())
	require.NoError(t, err)

	preds, _, err := fitted.Predict(context.Background(), 3)
	require.NoError(t, err)
	assert.Len(t, preds, 3)
}

func TestARIMAFixedOrderNeedsEnoughSamples(t *testing.T) {
	values := []float64{12, 15, 11, 18, 14, 19, 16, 22, 17, 21}
	cfg := models.DefaultModelConfig()
	cfg.AutoOrder = false

	_, err := NewARIMABackend(logger.Nop()).Fit(context.Background(), values, cfg)

	var fitErr *models.ModelFittingError
	require.ErrorAs(t, err, &fitErr)
	assert.Contains(t, fitErr.Error(), "insufficient effective samples")
}

func TestARIMARejectsConstantSeries(t *testing.T) {
	values := make([]float64, 20)
	for i := range values {
		values[i] = 4
	}

	_, err := NewARIMABackend(logger.Nop()).Fit(context.Background(), values, models.DefaultModelConfig())

	var fitErr *models.ModelFittingError
	require.ErrorAs(t, err, &fitErr)
	assert.Equal(t, BackendARIMA, fitErr.Backend)
}

func TestARIMARejectsNonFiniteValues(t *testing.T) {
	values := randomWalk(20, 1)
	values[5] = math.NaN()

	_, err := NewARIMABackend(logger.Nop()).Fit(context.Background(), values, models.DefaultModelConfig())

	var fitErr *models.ModelFittingError
	assert.ErrorAs(t, err, &fitErr)
}

func TestARIMAContinuesLinearTrend(t *testing.T) {
	values := make([]float64, 20)
	for i := range values {
		values[i] = 5 + 3*float64(i)
	}

	fitted, err := NewARIMABackend(logger.Nop()).Fit(context.Background(), values, models.DefaultModelConfig())
	require.NoError(t, err)

	preds, errs, err := fitted.Predict(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, []float64{65, 68, 71}, preds)
	assert.Equal(t, []float64{0, 0, 0}, errs)
}

func TestARIMAPredictRejectsZeroSteps(t *testing.T) {
	fitted, err := NewARIMABackend(logger.Nop()).Fit(context.Background(), randomWalk(30, 3), models.DefaultModelConfig())
	require.NoError(t, err)

	_, _, err = fitted.Predict(context.Background(), 0)

	var invalid *models.InvalidInputError
	assert.ErrorAs(t, err, &invalid)
}

func TestPsiWeightsRandomWalk(t *testing.T) {
	f := &arimaFit{order: models.Order{D: 1}}

	assert.Equal(t, []float64{1, 1, 1, 1}, f.psiWeights(4))
}

func TestPsiWeightsAR1(t *testing.T) {
	f := &arimaFit{order: models.Order{P: 1}, phi: []float64{0.5}}

	assert.Equal(t, []float64{1, 0.5, 0.25, 0.125}, f.psiWeights(4))
}

func TestIntegrateUndoesDifference(t *testing.T) {
	levels := [][]float64{{1, 3, 6}}
	levels = append(levels, difference(levels[0]))
	levels = append(levels, difference(levels[1]))

	// second differences of 1,3,6,10,15 are all 1
	assert.Equal(t, []float64{10, 15}, integrate(levels, []float64{1, 1}))
}

func TestSmallerOrdersMostComplexFirst(t *testing.T) {
	got := smallerOrders(models.Order{P: 1, D: 1, Q: 1})

	assert.Equal(t, []models.Order{
		{P: 1, D: 1, Q: 1},
		{P: 1, D: 1, Q: 0},
		{P: 0, D: 1, Q: 1},
		{P: 0, D: 1, Q: 0},
	}, got)
}
