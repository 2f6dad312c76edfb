// Package composite assembles the atom-atom, atom-water, water-water,
// atom-excluded-volume, water-excluded-volume, and excluded-excluded partials
// into a scattering intensity profile I(q) via the Debye transform, in the
// three variants spec.md §4.4 names: Avg, Explicit, and Grid.
//
// Grounded on original_source/source/core/hist/intensity_calculator/
// CompositeDistanceHistogramFFExplicitBase.cpp for the transform structure and
// spec.md §9's interface-plus-runtime-factory dispatch strategy.
package composite

import (
	"github.com/sarat-asymmetrica/saxscore/internal/atom"
	"github.com/sarat-asymmetrica/saxscore/internal/formfactor"
	"github.com/sarat-asymmetrica/saxscore/internal/histogram"
)

// Variant identifies which excluded-volume treatment a Histogram uses.
type Variant int

const (
	Avg Variant = iota
	Explicit
	Grid
)

func (v Variant) String() string {
	switch v {
	case Avg:
		return "avg"
	case Explicit:
		return "explicit"
	case Grid:
		return "grid"
	default:
		return "unknown"
	}
}

// Profile is the assembled per-q intensity together with every independently
// reconstructable partial (spec.md §4.4 "Profile getters"); Total equals Sum()
// plus Params.Background, so with zero background Sum() matches Total
// (spec.md §8 Debye sum identity).
type Profile struct {
	Q                          []float64
	AA, AX, XX, AW, WX, WW     []float64
	Total                      []float64
}

// Sum returns the additive reconstruction aa+ax+xx+aw+wx+ww. It leaves out the
// constant background, so it matches Total (the Debye sum identity, spec.md
// §8) when Params.Background is zero.
func (p *Profile) Sum() []float64 {
	out := make([]float64, len(p.Q))
	for i := range out {
		out[i] = p.AA[i] + p.AX[i] + p.XX[i] + p.AW[i] + p.WX[i] + p.WW[i]
	}
	return out
}

// Params bundles the three free scale parameters spec.md §4.4 names: cw
// (hydration strength), cx (excluded-volume scaling), and an additive
// background (introduced at the fit stage, per spec.md §3).
type Params struct {
	Cw, Cx, Background float64
	MeanAtomicRadius   float64 // rm, used by the excluded-volume G(q) factor
	PepsiExcludedVolume bool
}

// Histogram is a CompositeDistanceHistogram: it owns every partial pair
// distribution plus the free scale parameters, and knows how to Debye-
// transform itself into a Profile for an arbitrary q sub-range (spec.md
// §4.4 "q-axis windowing": the underlying partials are never recomputed for a
// window, only the transform).
type Histogram struct {
	variant Variant

	aa *histogram.Distribution3D
	aw *histogram.Distribution2D
	ww *histogram.Distribution1D

	// Present only for Explicit/Grid; nil for Avg (spec.md §4.4: "P_xx is
	// derived from P_aa by re-weighting ... not stored separately").
	ax *histogram.Distribution2D
	xx *histogram.Distribution1D
	wx *histogram.Distribution1D

	// zExvAvg is the Avg variant's single averaged excluded-volume charge
	// scalar (spec.md §9 Open Question), satisfying
	// zExvAvg * nAtoms == volumeGrid * rhoWater.
	zExvAvg float64
	nAtoms  int
}

// NewAvg builds the Avg-variant composite histogram (spec.md §4.4): atoms of
// the same form-factor type share one averaged excluded-volume form factor,
// and the excluded-volume partials are derived from P_aa and P_aw (re-weighted
// with zExvAvg) rather than stored separately.
func NewAvg(c *histogram.Composite, zExvAvg float64, nAtoms int) *Histogram {
	return &Histogram{variant: Avg, aa: c.AA, aw: c.AW, ww: c.WW, zExvAvg: zExvAvg, nAtoms: nAtoms}
}

// NewExplicit builds the Explicit-variant composite histogram: excluded-
// volume atoms carry an individual Gaussian form factor, and P_ax/P_xx/P_wx
// are supplied directly (computed the same way P_aa/P_aw/P_ww were, but
// against the excluded-volume atom set).
func NewExplicit(c *histogram.Composite, ax *histogram.Distribution2D, xx, wx *histogram.Distribution1D) *Histogram {
	return &Histogram{variant: Explicit, aa: c.AA, aw: c.AW, ww: c.WW, ax: ax, xx: xx, wx: wx}
}

// NewGrid builds the Grid-variant composite histogram: identical transform
// to Explicit, differing only in how the caller computed P_ax/P_xx/P_wx (from
// voxel-grid points rather than atoms, per internal/hydrate.Grid) — spec.md
// §4.4 draws this distinction at the histogram-construction boundary, not the
// transform itself.
func NewGrid(c *histogram.Composite, ax *histogram.Distribution2D, xx, wx *histogram.Distribution1D) *Histogram {
	h := NewExplicit(c, ax, xx, wx)
	h.variant = Grid
	return h
}

// Variant reports which excluded-volume treatment this histogram uses.
func (h *Histogram) Variant() Variant { return h.variant }

// transform1D evaluates Σ_bin sinc(q·r_bin)·P(bin) for one 1-D distribution,
// using each bin's representative distance (spec.md §4.3 weighted-
// distribution convention: the weighted mean when active, the bin center
// otherwise).
func transform1D(d *histogram.Distribution1D, q float64) float64 {
	sum := 0.0
	for b, w := range d.Bins() {
		if w == 0 {
			continue
		}
		r := d.RepresentativeDistance(b)
		sum += w * formfactor.Sinc(q*r)
	}
	return sum
}

// transformSelfPopulation evaluates the Debye sum for a partial drawn from a
// single population against itself (atom-atom same type, water-water,
// excluded-excluded): bin 0 holds the self-correlation term Σw_atom²
// (spec.md §4.3 edge case), counted once per atom, while every other bin
// holds one entry per *unordered* distinct pair. The true Debye sum runs over
// ordered pairs i≠j (spec.md §4.4), so those bins need multiplicity 2 to
// recover Σ_{i≠j} rather than Σ_{i<j}.
func transformSelfPopulation(d *histogram.Distribution1D, q float64) float64 {
	sum := 0.0
	for b, w := range d.Bins() {
		if w == 0 {
			continue
		}
		mult := 2.0
		if b == 0 {
			mult = 1.0
		}
		r := d.RepresentativeDistance(b)
		sum += mult * w * formfactor.Sinc(q*r)
	}
	return sum
}

// Debye transforms the stored partials into a Profile over the given q
// values, applying cw/cx/background per spec.md §4.4's transform equation.
func (h *Histogram) Debye(qs []float64, p Params) *Profile {
	prof := &Profile{Q: append([]float64(nil), qs...)}
	prof.AA = make([]float64, len(qs))
	prof.AX = make([]float64, len(qs))
	prof.XX = make([]float64, len(qs))
	prof.AW = make([]float64, len(qs))
	prof.WX = make([]float64, len(qs))
	prof.WW = make([]float64, len(qs))
	prof.Total = make([]float64, len(qs))

	n := atom.NumFormFactorTypes()
	waterFF := formfactor.Get(atom.Water)
	exvFF := formfactor.Get(atom.ExcludedVolume)

	for qi, q := range qs {
		// atom-atom: Σ_{a,b} F_ab(q) · T(P_aa(a,b), q)
		aa := 0.0
		for a := 0; a < n; a++ {
			fa := formfactor.Get(atom.FormFactorType(a))
			for b := a; b < n; b++ {
				fb := formfactor.Get(atom.FormFactorType(b))
				cell := h.aa.Cell(a, b)
				if cell.Len() == 0 {
					continue
				}
				if a == b {
					// same-type cell: bin 0 is the self-correlation term
					// (multiplicity 1), every other bin is a distinct pair
					// counted once and needs multiplicity 2 to recover the
					// ordered Debye sum.
					aa += fa.Evaluate(q) * fb.Evaluate(q) * transformSelfPopulation(cell, q)
				} else {
					// cross-type cell: no self term, so the whole cell
					// needs multiplicity 2.
					aa += 2 * fa.Evaluate(q) * fb.Evaluate(q) * transform1D(cell, q)
				}
			}
		}
		prof.AA[qi] = aa

		// atom-water: Σ_a F_a,water(q) · T(P_aw(a), q)
		aw := 0.0
		for a := 0; a < n; a++ {
			fa := formfactor.Get(atom.FormFactorType(a))
			row := h.aw.Row(a)
			if row.Len() == 0 {
				continue
			}
			aw += fa.Evaluate(q) * waterFF.Evaluate(q) * transform1D(row, q)
		}
		prof.AW[qi] = aw

		// water-water: a single population against itself, same self-term
		// convention as the same-type atom-atom cells above.
		ww := waterFF.Evaluate(q) * waterFF.Evaluate(q) * transformSelfPopulation(h.ww, q)
		prof.WW[qi] = ww

		g := formfactor.ExcludedVolumeG(q, p.Cx, p.MeanAtomicRadius, p.PepsiExcludedVolume)

		switch h.variant {
		case Explicit, Grid:
			ax := 0.0
			for a := 0; a < n; a++ {
				fa := formfactor.Get(atom.FormFactorType(a))
				row := h.ax.Row(a)
				if row.Len() == 0 {
					continue
				}
				ax += fa.Evaluate(q) * exvFF.Evaluate(q) * transform1D(row, q)
			}
			prof.AX[qi] = -2 * g * ax
			// excluded-excluded: a single population against itself, same
			// self-term convention as water-water.
			prof.XX[qi] = g * g * exvFF.Evaluate(q) * exvFF.Evaluate(q) * transformSelfPopulation(h.xx, q)
			prof.WX[qi] = -2 * p.Cw * g * waterFF.Evaluate(q) * exvFF.Evaluate(q) * transform1D(h.wx, q)
		default: // Avg: derive xx/ax/wx from P_aa/P_aw by re-weighting with zExvAvg
			marginalAA := marginalByType(h.aa, n, q)
			ax := 0.0
			for a := 0; a < n; a++ {
				fa := formfactor.Get(atom.FormFactorType(a))
				ax += fa.Evaluate(q) * h.zExvAvg * marginalAA[a]
			}
			prof.AX[qi] = -2 * g * ax
			totalAA := totalAADebyeSum(h.aa, n, q)
			prof.XX[qi] = g * g * h.zExvAvg * h.zExvAvg * totalAA
			prof.WX[qi] = -2 * p.Cw * g * waterFF.Evaluate(q) * h.zExvAvg * transform1D(h.aw.Total(), q)
		}

		prof.AW[qi] *= 2 * p.Cw
		prof.WW[qi] *= p.Cw * p.Cw

		prof.Total[qi] = prof.AA[qi] + prof.AX[qi] + prof.XX[qi] + prof.AW[qi] + prof.WX[qi] + prof.WW[qi] + p.Background
	}
	return prof
}

// marginalByType sums, for each form-factor type a, the Debye-transformed
// contribution of every pair (a,b) over all b — used by the Avg variant to
// approximate the atom-excluded-volume cross term from P_aa alone, since
// excluded-volume points are collocated with real atom positions (spec.md §9:
// the Avg variant does not store P_ax/P_xx separately). Each cell is fed
// through transformSelfPopulation for b==a (self term at bin 0, multiplicity
// 2 elsewhere) or a doubled transform1D for b!=a (no self term), matching the
// ordered-pair convention the main atom-atom sum uses.
func marginalByType(aa *histogram.Distribution3D, n int, q float64) []float64 {
	out := make([]float64, n)
	for a := 0; a < n; a++ {
		sum := 0.0
		for b := 0; b < n; b++ {
			cell := aa.Cell(a, b)
			if b == a {
				sum += transformSelfPopulation(cell, q)
			} else {
				sum += 2 * transform1D(cell, q)
			}
		}
		out[a] = sum
	}
	return out
}

// totalAADebyeSum computes the unweighted (no per-type form-factor product)
// atom-atom Debye sum over every cell of aa, used by the Avg variant's XX
// approximation in place of a stored P_xx (spec.md §4.4: "P_xx is derived
// from P_aa by re-weighting with an excluded-volume charge scalar"). Applies
// the same ordered-pair multiplicity convention as the main atom-atom sum;
// collapsing to a single 1-D total first (as aa.Total() does) would destroy
// the same-type/cross-type distinction that convention depends on.
func totalAADebyeSum(aa *histogram.Distribution3D, n int, q float64) float64 {
	sum := 0.0
	for a := 0; a < n; a++ {
		for b := a; b < n; b++ {
			cell := aa.Cell(a, b)
			if cell.Len() == 0 {
				continue
			}
			if a == b {
				sum += transformSelfPopulation(cell, q)
			} else {
				sum += 2 * transform1D(cell, q)
			}
		}
	}
	return sum
}

// ZExvAvgFromVolume derives the Avg variant's averaged excluded-volume charge
// scalar from the invariant zExvAvg·nAtoms = volumeGrid·rhoWater (spec.md §9
// Open Question, resolved: the debug volume_scaling override is ignored).
func ZExvAvgFromVolume(volumeGrid, rhoWater float64, nAtoms int) float64 {
	if nAtoms == 0 {
		return 0
	}
	return volumeGrid * rhoWater / float64(nAtoms)
}
