package fitter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFitLinearRecoversExactLine(t *testing.T) {
	model := []float64{1, 2, 3, 4, 5}
	a, b := 2.5, 1.2
	obs := make([]float64, len(model))
	sigma := make([]float64, len(model))
	for i, m := range model {
		obs[i] = a*m + b
		sigma[i] = 1.0
	}

	res, err := FitLinear(model, obs, sigma)
	require.NoError(t, err)
	assert.InDelta(t, a, res.A, 1e-9)
	assert.InDelta(t, b, res.B, 1e-9)
	assert.InDelta(t, 0, res.ChiSquare, 1e-9)
	assert.Equal(t, len(model)-2, res.Dof)
}

func TestFitLinearRejectsSizeMismatch(t *testing.T) {
	_, err := FitLinear([]float64{1, 2, 3}, []float64{1, 2}, []float64{1, 1})
	require.Error(t, err)
}

func TestFitLinearRejectsTooFewPoints(t *testing.T) {
	_, err := FitLinear([]float64{1, 2}, []float64{1, 2}, []float64{1, 1})
	require.Error(t, err)
}

func TestFitLinearRejectsNonPositiveSigma(t *testing.T) {
	_, err := FitLinear([]float64{1, 2, 3, 4}, []float64{1, 2, 3, 4}, []float64{1, 0, 1, 1})
	require.Error(t, err)
}

func TestFitLinearReducedChiSquareZeroDof(t *testing.T) {
	res := LinearResult{ChiSquare: 5, Dof: 0}
	assert.Zero(t, res.ReducedChiSquare())
}
