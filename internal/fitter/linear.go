// Package fitter implements the closed-form linear least-squares fit and the
// nonlinear outer searches (hydration weight, excluded-volume scaling) that
// wrap it, per spec.md §4.5.
//
// Grounded on original_source/source/core/fitter/detail/
// LinearLeastSquares.cpp and source/fitter/IntensityFitter.cpp for the
// formulas and the asymmetric-error confidence-interval walk; numerics use
// gonum.org/v1/gonum/{stat,floats} (see other_examples/manifests/
// kortschak-loopy, pthm-soup, banshee-data-velocity.report for the grounding
// dependency).
package fitter

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Dataset is an experimental (q, I, σ) curve, per spec.md §6.
type Dataset struct {
	Q, I, Sigma []float64
}

// LinearResult is the outcome of the closed-form (a,b) fit.
type LinearResult struct {
	A, B         float64
	SigmaA, SigmaB float64
	ChiSquare    float64
	Dof          int
}

// ReducedChiSquare returns χ²/dof.
func (r LinearResult) ReducedChiSquare() float64 {
	if r.Dof <= 0 {
		return 0
	}
	return r.ChiSquare / float64(r.Dof)
}

// FitLinear finds the best-fit scale a and background b so that a·model+b
// matches obs under inverse-variance weights w_i=1/σ_i² (spec.md §4.5 closed
// form). It refuses to fit (spec.md §4.5 "Failure") if any σ_i<=0 or if there
// are not more observations than free parameters.
func FitLinear(model, obs, sigma []float64) (LinearResult, error) {
	n := len(obs)
	if len(model) != n || len(sigma) != n {
		return LinearResult{}, fmt.Errorf("fitter: size mismatch: model=%d obs=%d sigma=%d", len(model), n, len(sigma))
	}
	if n <= 2 {
		return LinearResult{}, fmt.Errorf("fitter: need more than 2 observations to fit (a,b), got %d", n)
	}
	for _, s := range sigma {
		if s <= 0 {
			return LinearResult{}, fmt.Errorf("fitter: non-positive sigma encountered")
		}
	}

	weights := make([]float64, n)
	xy := make([]float64, n)
	xx := make([]float64, n)
	for i := 0; i < n; i++ {
		weights[i] = 1 / (sigma[i] * sigma[i])
		xy[i] = model[i] * obs[i]
		xx[i] = model[i] * model[i]
	}
	// S, Sx, Sy, Sxx, Sxy are the weighted sums the closed-form solution
	// needs (spec.md §4.5); gonum/stat's weighted Mean gives each as
	// (weighted mean)·(sum of weights) rather than hand-rolling the
	// accumulation loop.
	S := floats.Sum(weights)
	Sx := stat.Mean(model, weights) * S
	Sy := stat.Mean(obs, weights) * S
	Sxx := stat.Mean(xx, weights) * S
	Sxy := stat.Mean(xy, weights) * S
	delta := S*Sxx - Sx*Sx
	if delta == 0 {
		return LinearResult{}, fmt.Errorf("fitter: degenerate design matrix (Δ=0)")
	}

	a := (S*Sxy - Sx*Sy) / delta
	b := (Sxx*Sy - Sx*Sxy) / delta
	sigmaA := math.Sqrt(S / delta)
	sigmaB := math.Sqrt(Sxx / delta)

	resid := make([]float64, n)
	for i := range resid {
		pred := a*model[i] + b
		resid[i] = (obs[i] - pred) / sigma[i]
	}
	chiSq := floats.Dot(resid, resid)

	return LinearResult{
		A: a, B: b,
		SigmaA: sigmaA, SigmaB: sigmaB,
		ChiSquare: chiSq,
		Dof:       n - 2,
	}, nil
}

