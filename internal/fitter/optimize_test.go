package fitter

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGoldenSectionSearchFindsParabolaMinimum(t *testing.T) {
	objective := func(x float64) float64 { return (x - 1.3) * (x - 1.3) }
	x, val, landscape := GoldenSectionSearch(0, 2, 1e-6, 100, objective)
	assert.InDelta(t, 1.3, x, 1e-3)
	assert.InDelta(t, 0, val, 1e-3)
	assert.NotEmpty(t, landscape)
}

func TestGoldenSectionSearchToleratesFailedEvaluations(t *testing.T) {
	objective := func(x float64) float64 {
		if x > 1.0 && x < 1.1 {
			return math.Inf(1)
		}
		return (x - 0.5) * (x - 0.5)
	}
	x, _, _ := GoldenSectionSearch(0, 2, 1e-6, 100, objective)
	assert.InDelta(t, 0.5, x, 1e-2)
}

func TestConfidenceIntervalBracketsMinimum(t *testing.T) {
	objective := func(x float64) float64 { return (x - 1.0) * (x - 1.0) }
	lower, upper := confidenceInterval(1.0, 0.0, 0.01, 40, objective)
	assert.Less(t, lower, 1.0)
	assert.Greater(t, upper, 1.0)
	assert.InDelta(t, 0.0, objective(lower)-1.0, 0.5)
	assert.InDelta(t, 0.0, objective(upper)-1.0, 0.5)
}
