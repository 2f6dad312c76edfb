package formfactor

import "math"

// ExcludedVolumeG evaluates the excluded-volume scaling factor G(q) that
// modulates the cx (excluded-volume scaling) terms of the Debye sum
// (spec.md §4.4): G(q) = cx³·exp(−rm²·(cx²−1)·q²/4), where rm is the mean
// atomic radius. pepsi selects the Maclaurin-truncated approximation (spec.md
// §9 Open Question: the original drops the q-dependent correction term in
// that variant) instead of the full exponential form.
func ExcludedVolumeG(q, cx, rm float64, pepsi bool) float64 {
	if pepsi {
		return pepsiExcludedVolumeG(cx)
	}
	return cx * cx * cx * math.Exp(-rm*rm*(cx*cx-1)*q*q/4)
}

// pepsiExcludedVolumeG is the Maclaurin expansion of cx³·exp(−rm²(cx²−1)q²/4)
// around q=0 truncated to its constant term, i.e. with the q-dependent
// correction dropped — matching the commented-out behavior spec.md §9
// attributes to the original Pepsi-SAXS variant.
func pepsiExcludedVolumeG(cx float64) float64 {
	return cx * cx * cx
}
