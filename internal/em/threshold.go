package em

import (
	"fmt"
	"math"
	"sort"

	"github.com/sarat-asymmetrica/saxscore/internal/composite"
	"github.com/sarat-asymmetrica/saxscore/internal/fitter"
	"github.com/sarat-asymmetrica/saxscore/internal/histogram"
)

// LandscapePoint is one (σ, χ²) sample of the threshold-search objective.
type LandscapePoint struct {
	Sigma     float64
	ChiSquare float64
}

// ThresholdFitter drives the EM density-threshold search (spec.md §4.6): it
// wraps one ProteinManager and a persistent histogram.Manager so that
// successive objective evaluations benefit from the state manager's
// incremental recomputation instead of rebuilding every partial from scratch.
type ThresholdFitter struct {
	Manager  *ProteinManager
	Q        []float64
	Data     fitter.Dataset
	BinWidth float64
	Weighted bool
	Pool     *histogram.Pool

	histMgr *histogram.Manager
}

// Objective evaluates χ²(cutoff): rebuild the affected buckets, recompute the
// histogram incrementally, and run the inner hydration+(a,b) fit (spec.md
// §4.6 step 2).
func (t *ThresholdFitter) Objective(cutoff float64) (chiSq float64, result *fitter.FitResult, err error) {
	mol := t.Manager.Update(cutoff)
	if t.histMgr == nil {
		t.histMgr = histogram.NewManager(mol, t.BinWidth, t.Weighted, t.Pool)
	}

	comp, err := t.histMgr.CalculateAll()
	if err != nil {
		return math.Inf(1), nil, err
	}

	// EM voxels carry no independent excluded-volume atom set of their own
	// (the density cloud already is the excluded-volume representation), so
	// zExvAvg=0 disables the Avg variant's AX/XX/WX cross terms entirely.
	hist := composite.NewAvg(comp, 0, 0)
	hf := &fitter.HydrationFitter{Hist: hist, Q: t.Q, Data: t.Data}
	res, err := hf.Fit()
	if err != nil {
		return math.Inf(1), nil, err
	}
	return res.ReducedChiSquare * float64(res.Dof), res, nil
}

// sustainedIncreaseLimit bounds how many consecutive worsening samples the
// scan tolerates before giving up on the remainder of the range (spec.md
// §4.6 step 3: "a limited-step minimizer that rejects sustained increases").
const sustainedIncreaseLimit = 5

// Scan samples the objective at n evenly spaced points across [sigmaMin,
// sigmaMax], stopping early if the objective worsens for sustainedIncreaseLimit
// consecutive samples (spec.md §4.6 step 3). A single failed evaluation is
// skipped rather than aborting the whole scan.
func (t *ThresholdFitter) Scan(sigmaMin, sigmaMax float64, n int) ([]LandscapePoint, error) {
	if n < 2 {
		n = 2
	}
	step := (sigmaMax - sigmaMin) / float64(n-1)

	var landscape []LandscapePoint
	increasingRun := 0
	for i := 0; i < n; i++ {
		sigma := sigmaMin + float64(i)*step
		chiSq, _, err := t.Objective(sigma)
		if err != nil {
			continue
		}
		if len(landscape) > 0 && chiSq > landscape[len(landscape)-1].ChiSquare {
			increasingRun++
		} else {
			increasingRun = 0
		}
		landscape = append(landscape, LandscapePoint{sigma, chiSq})
		if increasingRun >= sustainedIncreaseLimit {
			break
		}
	}
	if len(landscape) == 0 {
		return nil, fmt.Errorf("em: threshold scan produced no valid evaluations over [%g,%g]", sigmaMin, sigmaMax)
	}
	return landscape, nil
}

// SmoothLandscape applies a centered moving average of the given window size
// (spec.md §4.6 step 4: "moving average (window 7)") over the χ² values,
// leaving σ untouched. window is clamped to an odd value >= 1.
func SmoothLandscape(landscape []LandscapePoint, window int) []LandscapePoint {
	if window < 1 {
		window = 1
	}
	if window%2 == 0 {
		window++
	}
	half := window / 2
	out := make([]LandscapePoint, len(landscape))
	for i := range landscape {
		lo := i - half
		if lo < 0 {
			lo = 0
		}
		hi := i + half
		if hi >= len(landscape) {
			hi = len(landscape) - 1
		}
		sum := 0.0
		for j := lo; j <= hi; j++ {
			sum += landscape[j].ChiSquare
		}
		out[i] = LandscapePoint{Sigma: landscape[i].Sigma, ChiSquare: sum / float64(hi-lo+1)}
	}
	return out
}

// InterpolateLandscape linearly interpolates factor-1 extra points between
// every consecutive pair of samples (spec.md §4.6 step 4: "interpolate x5").
func InterpolateLandscape(landscape []LandscapePoint, factor int) []LandscapePoint {
	if factor < 1 || len(landscape) < 2 {
		return landscape
	}
	out := make([]LandscapePoint, 0, (len(landscape)-1)*factor+1)
	for i := 0; i < len(landscape)-1; i++ {
		a, b := landscape[i], landscape[i+1]
		for k := 0; k < factor; k++ {
			frac := float64(k) / float64(factor)
			out = append(out, LandscapePoint{
				Sigma:     a.Sigma + frac*(b.Sigma-a.Sigma),
				ChiSquare: a.ChiSquare + frac*(b.ChiSquare-a.ChiSquare),
			})
		}
	}
	out = append(out, landscape[len(landscape)-1])
	return out
}

// LocalMinima returns every point that is a strict local minimum among its
// neighbors, keeping only minima separated by at least minSeparationFrac of
// the landscape's σ span (spec.md §4.6 step 4: "local minima separated by
// >= 10% of the axis span"). Candidates are scanned in ascending χ² order so
// that the deepest minimum in a cluster survives the separation filter.
func LocalMinima(landscape []LandscapePoint, minSeparationFrac float64) []LandscapePoint {
	if len(landscape) < 3 {
		return append([]LandscapePoint(nil), landscape...)
	}
	span := landscape[len(landscape)-1].Sigma - landscape[0].Sigma
	minSep := span * minSeparationFrac

	var candidates []LandscapePoint
	for i := 1; i < len(landscape)-1; i++ {
		if landscape[i].ChiSquare < landscape[i-1].ChiSquare && landscape[i].ChiSquare < landscape[i+1].ChiSquare {
			candidates = append(candidates, landscape[i])
		}
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].ChiSquare < candidates[j].ChiSquare })

	var kept []LandscapePoint
	for _, c := range candidates {
		tooClose := false
		for _, k := range kept {
			if math.Abs(c.Sigma-k.Sigma) < minSep {
				tooClose = true
				break
			}
		}
		if !tooClose {
			kept = append(kept, c)
		}
	}
	sort.Slice(kept, func(i, j int) bool { return kept[i].Sigma < kept[j].Sigma })
	return kept
}

// ExploreMinimum samples densely around center, walking outward in both
// directions until Δχ² >= 1, to estimate the 1-σ interval of the global
// minimum (spec.md §4.6 step 5: "dedicated minimum explorer").
func (t *ThresholdFitter) ExploreMinimum(center LandscapePoint, step float64, maxSteps int) (lower, upper float64, dense []LandscapePoint) {
	dense = append(dense, center)

	lower = center.Sigma
	cur := step
	for i := 0; i < maxSteps; i++ {
		sigma := center.Sigma - cur
		chiSq, _, err := t.Objective(sigma)
		if err != nil {
			break
		}
		dense = append(dense, LandscapePoint{sigma, chiSq})
		lower = sigma
		if chiSq-center.ChiSquare >= 1 {
			break
		}
		cur *= 1.5
	}

	upper = center.Sigma
	cur = step
	for i := 0; i < maxSteps; i++ {
		sigma := center.Sigma + cur
		chiSq, _, err := t.Objective(sigma)
		if err != nil {
			break
		}
		dense = append(dense, LandscapePoint{sigma, chiSq})
		upper = sigma
		if chiSq-center.ChiSquare >= 1 {
			break
		}
		cur *= 1.5
	}

	sort.Slice(dense, func(i, j int) bool { return dense[i].Sigma < dense[j].Sigma })
	return lower, upper, dense
}

// Result is the outcome of a full threshold search (spec.md §4.6 step 6).
type Result struct {
	Sigma          float64
	SigmaErrLow    float64
	SigmaErrHigh   float64
	Mass           float64
	Landscape      []LandscapePoint
	Fit            *fitter.FitResult
}

// Search runs the complete pipeline: scan, smooth, interpolate, find the
// global minimum among the separated local minima, then explore it densely
// for the asymmetric σ interval (spec.md §4.6 steps 3-6).
func (t *ThresholdFitter) Search(sigmaMin, sigmaMax float64, scanPoints int) (*Result, error) {
	raw, err := t.Scan(sigmaMin, sigmaMax, scanPoints)
	if err != nil {
		return nil, err
	}
	smoothed := SmoothLandscape(raw, 7)
	dense := InterpolateLandscape(smoothed, 5)
	minima := LocalMinima(dense, 0.10)
	if len(minima) == 0 {
		return nil, fmt.Errorf("em: no local minima found in threshold landscape")
	}

	global := minima[0]
	for _, m := range minima[1:] {
		if m.ChiSquare < global.ChiSquare {
			global = m
		}
	}

	step := (sigmaMax - sigmaMin) / float64(scanPoints) / 5
	lower, upper, _ := t.ExploreMinimum(global, step, 20)

	_, fitResult, err := t.Objective(global.Sigma)
	if err != nil {
		return nil, err
	}

	return &Result{
		Sigma:        global.Sigma,
		SigmaErrLow:  global.Sigma - lower,
		SigmaErrHigh: upper - global.Sigma,
		Mass:         t.Manager.EstimatedMass(global.Sigma),
		Landscape:    raw,
		Fit:          fitResult,
	}, nil
}
