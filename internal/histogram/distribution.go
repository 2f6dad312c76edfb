// Package histogram implements the distance-histogram pipeline: dense
// fixed-bin distributions over r, and the multithreaded manager that fills
// them from pairs of CompactCoordinates buffers.
//
// Grounded on original_source/source/hist/PartialHistogramManagerMT.cpp (the
// chunked-job, mutex-reduced accumulation scheme) and the teacher's
// config-struct-plus-step-budget idiom in backend/internal/sampling/
// monte_carlo.go, adapted here to a fixed-bin accumulator instead of an
// MC trajectory.
package histogram

import (
	"math"

	"github.com/sarat-asymmetrica/saxscore/internal/atom"
)

// DefaultBinWidth is the default Δr (spec.md §3), in Angstroms.
const DefaultBinWidth = 1.0

// MinBins is the minimum retained axis length after trailing-zero trimming
// (spec.md §4.3 "Axis downsizing").
const MinBins = 10

// Distribution1D is a dense, weighted 1-D histogram over distance r, used for
// single-type atom-atom partials and for the unpartitioned total.
type Distribution1D struct {
	binWidth   float64
	bins       []float64
	weighted   bool
	weightedR  []float64 // Σ r·w per bin, only populated when weighted
}

// NewDistribution1D allocates an empty distribution. weighted selects the
// trait described in spec.md §9: when true, Add also accumulates r·w per bin
// and RepresentativeDistance returns the weighted mean of contributions rather
// than the bin center.
func NewDistribution1D(binWidth float64, weighted bool) *Distribution1D {
	return &Distribution1D{binWidth: binWidth, weighted: weighted}
}

func binIndex(r, binWidth float64) int {
	return int(math.Floor(r / binWidth))
}

func (d *Distribution1D) ensure(n int) {
	if n <= len(d.bins) {
		return
	}
	bins := make([]float64, n)
	copy(bins, d.bins)
	d.bins = bins
	if d.weighted {
		wr := make([]float64, n)
		copy(wr, d.weightedR)
		d.weightedR = wr
	}
}

// Add records one contribution of distance r and weight product w into the
// appropriate bin. When the weighted trait is active it also accumulates
// r·w into the parallel representative-distance accumulator (spec.md §4.3
// "Weighted-distribution convention").
func (d *Distribution1D) Add(r, w float64) {
	b := binIndex(r, d.binWidth)
	d.ensure(b + 1)
	d.bins[b] += w
	if d.weighted {
		d.weightedR[b] += r * w
	}
}

// AddAtBin adds a contribution directly to a known bin index, used for the
// self-correlation edge case (spec.md §4.3: Σ w_i² placed in bin 0).
func (d *Distribution1D) AddAtBin(bin int, w float64) {
	d.ensure(bin + 1)
	d.bins[bin] += w
}

// MergeFrom adds another distribution's contents into d, bin-by-bin. Used to
// reduce a per-job private distribution into its pair's shared partial.
// Histogram contributions commute (spec.md §5), so merge order never affects
// the result.
func (d *Distribution1D) MergeFrom(other *Distribution1D) {
	if other == nil {
		return
	}
	d.ensure(len(other.bins))
	for i, v := range other.bins {
		d.bins[i] += v
	}
	if d.weighted && other.weighted {
		for i, v := range other.weightedR {
			d.weightedR[i] += v
		}
	}
}

// Bins returns the raw per-bin weight sums.
func (d *Distribution1D) Bins() []float64 { return d.bins }

// Len returns the current axis length in bins.
func (d *Distribution1D) Len() int { return len(d.bins) }

// BinWidth returns Δr.
func (d *Distribution1D) BinWidth() float64 { return d.binWidth }

// RepresentativeDistance returns the distance downstream Debye evaluation
// should use for bin b: the weighted mean of contributions if the weighted
// trait is active and the bin is non-empty, otherwise the bin center.
func (d *Distribution1D) RepresentativeDistance(b int) float64 {
	if d.weighted && b < len(d.weightedR) && d.bins[b] != 0 {
		return d.weightedR[b] / d.bins[b]
	}
	return (float64(b) + 0.5) * d.binWidth
}

// Trim removes trailing all-zero bins, keeping at least MinBins (spec.md
// §4.3 "Axis downsizing"). It returns the trimmed length.
func (d *Distribution1D) Trim() int {
	last := len(d.bins)
	for last > MinBins && d.bins[last-1] == 0 {
		last--
	}
	if last < MinBins {
		last = MinBins
		d.ensure(last)
	}
	d.bins = d.bins[:last]
	if d.weighted {
		d.weightedR = d.weightedR[:last]
	}
	return last
}

// Distribution2D is indexed by (form-factor type, r bin); used for
// atom-water partials where only one side carries a form-factor type.
type Distribution2D struct {
	binWidth float64
	weighted bool
	rows     []*Distribution1D // one per form-factor type
}

// NewDistribution2D allocates nTypes independent 1-D rows.
func NewDistribution2D(binWidth float64, weighted bool, nTypes int) *Distribution2D {
	rows := make([]*Distribution1D, nTypes)
	for i := range rows {
		rows[i] = NewDistribution1D(binWidth, weighted)
	}
	return &Distribution2D{binWidth: binWidth, weighted: weighted, rows: rows}
}

// Add records a contribution under form-factor type ff.
func (d *Distribution2D) Add(ff int, r, w float64) { d.rows[ff].Add(r, w) }

// Row returns the 1-D distribution for a given form-factor type.
func (d *Distribution2D) Row(ff int) *Distribution1D { return d.rows[ff] }

// MergeFrom reduces another Distribution2D into d, row by row.
func (d *Distribution2D) MergeFrom(other *Distribution2D) {
	if other == nil {
		return
	}
	for i, row := range other.rows {
		d.rows[i].MergeFrom(row)
	}
}

// Total collapses all rows into a single 1-D distribution (used to build the
// unpartitioned total distribution from a partitioned one).
func (d *Distribution2D) Total() *Distribution1D {
	total := NewDistribution1D(d.binWidth, d.weighted)
	for _, row := range d.rows {
		total.MergeFrom(row)
	}
	return total
}

// Distribution3D is indexed by (form-factor type a, form-factor type b, r
// bin); used for per-type atom-atom partials.
type Distribution3D struct {
	binWidth float64
	weighted bool
	nTypes   int
	cells    []*Distribution1D // flattened [a*nTypes+b]
}

// NewDistribution3D allocates nTypes×nTypes independent 1-D cells.
func NewDistribution3D(binWidth float64, weighted bool, nTypes int) *Distribution3D {
	cells := make([]*Distribution1D, nTypes*nTypes)
	for i := range cells {
		cells[i] = NewDistribution1D(binWidth, weighted)
	}
	return &Distribution3D{binWidth: binWidth, weighted: weighted, nTypes: nTypes, cells: cells}
}

func (d *Distribution3D) idx(a, b int) int { return a*d.nTypes + b }

// Add records a contribution under the unordered type pair (a,b); both
// (a,b) and (b,a) index the same cell, matching the Debye sum's symmetry.
func (d *Distribution3D) Add(a, b int, r, w float64) {
	if a > b {
		a, b = b, a
	}
	d.cells[d.idx(a, b)].Add(r, w)
}

// Cell returns the 1-D distribution for the unordered type pair (a,b).
func (d *Distribution3D) Cell(a, b int) *Distribution1D {
	if a > b {
		a, b = b, a
	}
	return d.cells[d.idx(a, b)]
}

// MergeFrom reduces another Distribution3D into d, cell by cell.
func (d *Distribution3D) MergeFrom(other *Distribution3D) {
	if other == nil {
		return
	}
	for i, cell := range other.cells {
		d.cells[i].MergeFrom(cell)
	}
}

// Total collapses all cells into a single 1-D distribution.
func (d *Distribution3D) Total() *Distribution1D {
	total := NewDistribution1D(d.binWidth, d.weighted)
	for _, cell := range d.cells {
		total.MergeFrom(cell)
	}
	return total
}

// SelfCorrelation computes Σ w_atom² for a slice of atoms, the i-i term that
// belongs in bin 0 (spec.md §4.3 edge case).
func SelfCorrelation(atoms []atom.Atom) float64 {
	sum := 0.0
	for _, a := range atoms {
		sum += a.Weight * a.Weight
	}
	return sum
}
