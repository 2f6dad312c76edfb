package fitter

import (
	"fmt"
	"math"

	"github.com/sarat-asymmetrica/saxscore/internal/composite"
)

// HydrationFitter wraps the closed-form (a,b) linear fit in a 1-D golden-
// section search over cw in [0,2] (spec.md §4.5). For each candidate cw the
// model is rescaled via the water coefficient identity I_total = aa + 2·cw·aw
// + cw²·ww (+ any excluded-volume terms, held fixed at Cx/PepsiExcludedVolume
// from Fixed), then the inner (a,b) fit runs and its χ² becomes the outer
// objective.
type HydrationFitter struct {
	Hist  *composite.Histogram
	Q     []float64
	Data  Dataset
	Fixed composite.Params // Cx, MeanAtomicRadius, PepsiExcludedVolume held fixed; Cw/Background ignored
}

// Fit runs the golden-section search and returns the best-fit cw plus the
// inner (a,b) result, terminating on Δχ²/χ² < 1e-4 or a 64-iteration budget
// of the golden-section search (spec.md §4.5).
func (f *HydrationFitter) Fit() (*FitResult, error) {
	if len(f.Data.I) <= 2 {
		return nil, fmt.Errorf("fitter: need more than 2 observations, got %d", len(f.Data.I))
	}

	evals := 0
	var lastLinear LinearResult
	objective := func(cw float64) float64 {
		params := f.Fixed
		params.Cw = cw
		params.Background = 0
		prof := f.Hist.Debye(f.Q, params)
		lr, err := FitLinear(prof.Total, f.Data.I, f.Data.Sigma)
		evals++
		if err != nil {
			return math.Inf(1)
		}
		lastLinear = lr
		return lr.ChiSquare
	}

	bestCw, bestChiSq, landscape := GoldenSectionSearch(0, 2, 1e-4, 64, objective)
	_ = bestChiSq
	objective(bestCw) // re-evaluate at the minimum so lastLinear matches bestCw exactly

	lowerCw, upperCw := confidenceInterval(bestCw, lastLinear.ChiSquare, 0.01, 20, objective)
	objective(bestCw) // restore lastLinear to the minimum after the confidence walk

	return &FitResult{
		Cw:          bestCw,
		CwErrLow:    bestCw - lowerCw,
		CwErrHigh:   upperCw - bestCw,
		Cx:          f.Fixed.Cx,
		Background:  lastLinear.B,
		A:           lastLinear.A,
		B:           lastLinear.B,
		ReducedChiSquare: lastLinear.ReducedChiSquare(),
		Dof:         lastLinear.Dof,
		Evaluations: evals,
		Landscape:   landscape,
	}, nil
}
