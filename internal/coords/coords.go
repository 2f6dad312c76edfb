// Package coords produces and maintains the packed, cache-dense
// CompactCoordinates buffers the histogram inner loops run over.
//
// Grounded on original_source/include/hist/detail/CompactCoordinates.h and the
// teacher's two-phase "gather candidates, then evaluate exactly" style in
// engines/spatial_hash.go (GetNeighbors returns candidates; the distance check
// happens in a tight second loop). Here there is no spatial cutoff — the
// histogram needs every pairwise distance — but the same packed-buffer
// discipline applies: one flat slice of atom.CompactCoordinatesData per body
// or per water set, rebuilt only when that source changes.
package coords

import (
	"math"

	"github.com/sarat-asymmetrica/saxscore/internal/atom"
)

// CompactCoordinates is a flat, owned buffer of packed atom records. It is
// owned by the histogram manager, never by a Body (spec.md §3 ownership rule).
type CompactCoordinates struct {
	data []atom.CompactCoordinatesData
}

// FromAtoms packs a slice of atoms into a fresh CompactCoordinates buffer.
func FromAtoms(atoms []atom.Atom) *CompactCoordinates {
	cc := &CompactCoordinates{data: make([]atom.CompactCoordinatesData, len(atoms))}
	for i, a := range atoms {
		cc.data[i] = atom.FromAtom(a)
	}
	return cc
}

// FromWaters packs a slice of waters into a fresh CompactCoordinates buffer.
func FromWaters(waters []atom.Water) *CompactCoordinates {
	atoms := make([]atom.Atom, len(waters))
	for i, w := range waters {
		atoms[i] = w.AsAtom()
	}
	return FromAtoms(atoms)
}

// Len returns the number of packed records.
func (cc *CompactCoordinates) Len() int { return len(cc.data) }

// Data exposes the packed buffer for direct iteration by the histogram
// manager's inner loops.
func (cc *CompactCoordinates) Data() []atom.CompactCoordinatesData { return cc.data }

// Update recomputes the buffer in place from a (possibly resized) atom slice.
// If the new length matches the old, the backing array is reused and no
// reallocation occurs, per spec.md §4.1's update_body contract.
func (cc *CompactCoordinates) Update(atoms []atom.Atom) {
	if len(atoms) != len(cc.data) {
		cc.data = make([]atom.CompactCoordinatesData, len(atoms))
	}
	for i, a := range atoms {
		cc.data[i] = atom.FromAtom(a)
	}
}

// DistanceWeight1 evaluates the signed distance and weight product between
// source index i and a single target index j. Signed distance here means the
// Euclidean distance (always >= 0); "signed" in spec.md §4.1 refers to the
// underlying difference vector, which cancels under the histogram's symmetric
// accumulation, so only the magnitude and weight product are returned.
func (cc *CompactCoordinates) DistanceWeight1(i, j int) (dist float64, weightProduct float64) {
	a, b := cc.data[i], cc.data[j]
	dx := float64(a.X - b.X)
	dy := float64(a.Y - b.Y)
	dz := float64(a.Z - b.Z)
	dist = math.Sqrt(dx*dx + dy*dy + dz*dz)
	weightProduct = float64(a.W) * float64(b.W)
	return dist, weightProduct
}

// DistanceWeightBlock4 evaluates (distance, weight-product) pairs between
// source index i and up to 4 target indices starting at j0. It is a scalar
// fallback for a 4-wide SIMD primitive (spec.md §4.1): correctness is
// guaranteed for any block length in [0,4]; no vectorization is attempted
// since the Go toolchain in this corpus never reaches for SIMD intrinsics.
func (cc *CompactCoordinates) DistanceWeightBlock4(i int, j0 int, out *[4]DistWeight) int {
	return cc.distanceWeightBlock(i, j0, out[:])
}

// DistanceWeightBlock8 is the 8-wide counterpart. Per spec.md §4.1 this is a
// hard contract: implementations must provide a correct scalar fallback (this
// one) but SHOULD vectorize when the target platform allows it. This package
// provides only the scalar fallback.
func (cc *CompactCoordinates) DistanceWeightBlock8(i int, j0 int, out *[8]DistWeight) int {
	return cc.distanceWeightBlock(i, j0, out[:])
}

// DistWeight is a single (distance, weight-product) result from a block
// primitive, suitable for direct histogram accumulation.
type DistWeight struct {
	Dist   float64
	Weight float64
}

func (cc *CompactCoordinates) distanceWeightBlock(i int, j0 int, out []DistWeight) int {
	n := 0
	a := cc.data[i]
	for k := range out {
		j := j0 + k
		if j >= len(cc.data) {
			break
		}
		b := cc.data[j]
		dx := float64(a.X - b.X)
		dy := float64(a.Y - b.Y)
		dz := float64(a.Z - b.Z)
		out[k] = DistWeight{
			Dist:   math.Sqrt(dx*dx + dy*dy + dz*dz),
			Weight: float64(a.W) * float64(b.W),
		}
		n++
	}
	return n
}
