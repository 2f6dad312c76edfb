package fitter

import "math"

const goldenRatio = 0.6180339887498949

// LandscapePoint is one (parameter, objective) sample kept for downstream
// plotting/diagnostics (spec.md §4.5 "the evaluated landscape").
type LandscapePoint struct {
	X, ChiSquare float64
}

// GoldenSectionSearch brackets and refines the minimum of objective over
// [lo,hi] (spec.md §4.5: "golden-section bracket -> local exploration").
// It terminates when the relative change in the best objective value falls
// below tol or after maxIter iterations (one evaluation each, on top of the two
// initial evaluations), whichever comes first. A failed evaluation
// (objective returns +Inf) is simply outrun by the search rather than
// aborting it (spec.md §7: "a single failed evaluation does not abort the
// search").
func GoldenSectionSearch(lo, hi float64, tol float64, maxIter int, objective func(x float64) float64) (bestX float64, bestVal float64, landscape []LandscapePoint) {
	a, b := lo, hi
	c := b - goldenRatio*(b-a)
	d := a + goldenRatio*(b-a)
	fc := objective(c)
	fd := objective(d)
	landscape = append(landscape, LandscapePoint{c, fc}, LandscapePoint{d, fd})

	prevBest := math.Min(fc, fd)
	for i := 0; i < maxIter && math.Abs(b-a) > 1e-9; i++ {
		if fc < fd {
			b = d
			d = c
			fd = fc
			c = b - goldenRatio*(b-a)
			fc = objective(c)
			landscape = append(landscape, LandscapePoint{c, fc})
		} else {
			a = c
			c = d
			fc = fd
			d = a + goldenRatio*(b-a)
			fd = objective(d)
			landscape = append(landscape, LandscapePoint{d, fd})
		}
		curBest := math.Min(fc, fd)
		if prevBest != 0 && math.Abs(prevBest-curBest)/math.Abs(prevBest) < tol {
			prevBest = curBest
			break
		}
		prevBest = curBest
	}

	if fc < fd {
		return c, fc, landscape
	}
	return d, fd, landscape
}

// confidenceInterval walks outward from the minimum (x0, chiSqMin) in both
// directions, independently, until Δχ² = 1, returning the asymmetric 1-σ
// bounds (spec.md §4.5 "symmetric/asymmetric errors from a 1-σ contour around
// the minimum"). step is the initial walk step and is doubled each iteration
// that has not yet crossed the threshold (simple expanding search, bounded by
// maxSteps); once a step crosses it, the bracket between the last point below
// Δχ² = 1 and the first point at or above it is bisected 20 times. If no step
// crosses within maxSteps, the farthest point walked is returned.
func confidenceInterval(x0, chiSqMin, step float64, maxSteps int, objective func(x float64) float64) (lower, upper float64) {
	bisect := func(in, out float64) float64 {
		for k := 0; k < 20; k++ {
			if mid := (in + out) / 2; objective(mid)-chiSqMin >= 1 {
				out = mid
			} else {
				in = mid
			}
		}
		return out
	}
	lower = x0
	cur := step
	for i := 0; i < maxSteps; i++ {
		x := x0 - cur
		if objective(x)-chiSqMin >= 1 {
			lower = bisect(lower, x)
			break
		}
		lower = x
		cur *= 2
	}
	upper = x0
	cur = step
	for i := 0; i < maxSteps; i++ {
		x := x0 + cur
		if objective(x)-chiSqMin >= 1 {
			upper = bisect(upper, x)
			break
		}
		upper = x
		cur *= 2
	}
	return lower, upper
}
