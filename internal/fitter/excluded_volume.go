package fitter

import (
	"fmt"
	"math"

	"github.com/sarat-asymmetrica/saxscore/internal/composite"
)

// ExcludedVolumeFitter adds cx as a second outer parameter on top of
// HydrationFitter's cw search, per spec.md §4.5: "adds cx as a second outer
// parameter, minimized in a 2-D scan followed by a local refinement."
type ExcludedVolumeFitter struct {
	Hist             *composite.Histogram
	Q                []float64
	Data             Dataset
	MeanAtomicRadius float64
	PepsiExcludedVolume bool

	// CxGrid is the coarse scan grid for cx; a reasonable default (11 points
	// over [0.5,1.5]) is used when nil.
	CxGrid []float64
}

func defaultCxGrid() []float64 {
	grid := make([]float64, 11)
	for i := range grid {
		grid[i] = 0.5 + float64(i)*0.1
	}
	return grid
}

// Fit performs the coarse 2-D scan (cx on CxGrid, cw via an inner golden-
// section search at each grid point) and then refines the best grid cell with
// a local golden-section search over cx around its neighbors.
func (f *ExcludedVolumeFitter) Fit() (*FitResult, error) {
	if len(f.Data.I) <= 3 {
		return nil, fmt.Errorf("fitter: need more than 3 observations for a 2-parameter fit, got %d", len(f.Data.I))
	}
	grid := f.CxGrid
	if grid == nil {
		grid = defaultCxGrid()
	}

	evals := 0
	bestCx := grid[0]
	var bestResult *FitResult
	bestChiSq := math.Inf(1)
	var scan []LandscapePoint

	evalCx := func(cx float64) (*FitResult, error) {
		hf := &HydrationFitter{
			Hist: f.Hist,
			Q:    f.Q,
			Data: f.Data,
			Fixed: composite.Params{
				Cx:                  cx,
				MeanAtomicRadius:    f.MeanAtomicRadius,
				PepsiExcludedVolume: f.PepsiExcludedVolume,
			},
		}
		r, err := hf.Fit()
		if err != nil {
			return nil, err
		}
		evals += r.Evaluations
		return r, nil
	}

	for _, cx := range grid {
		r, err := evalCx(cx)
		if err != nil {
			continue
		}
		chiSq := r.ReducedChiSquare * float64(r.Dof)
		scan = append(scan, LandscapePoint{cx, chiSq})
		if chiSq < bestChiSq {
			bestChiSq = chiSq
			bestCx = cx
			bestResult = r
		}
	}
	if bestResult == nil {
		return nil, fmt.Errorf("fitter: excluded-volume scan found no valid candidate")
	}

	// Local refinement: golden-section search over cx in a window around the
	// best grid point, one dimension narrower than the full cx range.
	step := 0.15
	if len(grid) > 1 {
		step = (grid[1] - grid[0]) * 1.5
	}
	lo, hi := bestCx-step, bestCx+step
	if lo < 0 {
		lo = 0
	}

	objective := func(cx float64) float64 {
		r, err := evalCx(cx)
		if err != nil {
			return math.Inf(1)
		}
		if r.ReducedChiSquare*float64(r.Dof) < bestChiSq {
			bestChiSq = r.ReducedChiSquare * float64(r.Dof)
			bestResult = r
			bestCx = cx
		}
		return r.ReducedChiSquare * float64(r.Dof)
	}
	refinedCx, _, refineLandscape := GoldenSectionSearch(lo, hi, 1e-4, 32, objective)
	bestCx = refinedCx
	if r, err := evalCx(bestCx); err == nil { // final evaluation so bestResult matches refinedCx
		bestResult = r
		bestChiSq = r.ReducedChiSquare * float64(r.Dof)
	}

	out := *bestResult
	out.Cx = bestCx
	out.Evaluations = evals
	out.Landscape = append(scan, refineLandscape...)
	cxLower, cxUpper := confidenceInterval(bestCx, bestChiSq, 0.02, 20, objective)
	out.CxErrLow = bestCx - cxLower
	out.CxErrHigh = cxUpper - bestCx
	return &out, nil
}
