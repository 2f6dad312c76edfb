package formfactor

import (
	"math"

	"github.com/sarat-asymmetrica/saxscore/internal/atom"
)

// QAxis is a fixed, ascending q sampling used by the default precomputed
// tables. Callers that need a different window (spec.md §4.4 "q-axis
// windowing") evaluate a sub-range of this same axis rather than rebuilding
// the tables.
type QAxis struct {
	QMin, QMax float64
	N          int
}

// DefaultQAxis is the process-wide default q-axis the singleton tables are
// built against (spec.md §3 PrecalculatedFormFactorProduct invariant: "a
// fixed q-axis and never mutated").
var DefaultQAxis = QAxis{QMin: 0.0, QMax: 0.5, N: 256}

// Values returns the sampled q values for this axis.
func (a QAxis) Values() []float64 {
	out := make([]float64, a.N)
	if a.N == 1 {
		out[0] = a.QMin
		return out
	}
	step := (a.QMax - a.QMin) / float64(a.N-1)
	for i := range out {
		out[i] = a.QMin + float64(i)*step
	}
	return out
}

// Product is the precomputed per-(ff_i,ff_j) product table F_ab(q) =
// f_a(q)·f_b(q), generated once at construction and never mutated (spec.md §3
// PrecalculatedFormFactorProduct invariant). It is a process-wide singleton in
// normal use (see Singleton below), but constructible per-axis for tests.
type Product struct {
	axis   QAxis
	nTypes int
	table  []float64 // flattened [a*nTypes*N + b*N + q]
}

// NewProduct builds the table for every (ff_i,ff_j) pair over axis.
func NewProduct(axis QAxis) *Product {
	n := atom.NumFormFactorTypes()
	p := &Product{axis: axis, nTypes: n, table: make([]float64, n*n*axis.N)}
	qs := axis.Values()
	fq := make([][]float64, n)
	for t := 0; t < n; t++ {
		g := Get(atom.FormFactorType(t))
		fq[t] = make([]float64, axis.N)
		for qi, q := range qs {
			fq[t][qi] = g.Evaluate(q)
		}
	}
	for a := 0; a < n; a++ {
		for b := 0; b < n; b++ {
			base := (a*n + b) * axis.N
			for qi := range qs {
				p.table[base+qi] = fq[a][qi] * fq[b][qi]
			}
		}
	}
	return p
}

// At returns F_ab(q) for the qi-th sample on this table's axis.
func (p *Product) At(a, b, qi int) float64 {
	return p.table[(a*p.nTypes+b)*p.axis.N+qi]
}

// Axis returns the q-axis this table was built against.
func (p *Product) Axis() QAxis { return p.axis }

var singleton *Product

// Singleton returns the process-wide default-axis product table, building it
// once on first use (spec.md §9 "precomputed static tables").
func Singleton() *Product {
	if singleton == nil {
		singleton = NewProduct(DefaultQAxis)
	}
	return singleton
}

// SincTable is ArrayDebyeTable from spec.md §3: a precomputed sinc(q·r)
// lookup over the Cartesian product of a q-axis and a distance axis.
type SincTable struct {
	qAxis  QAxis
	dAxis  DistanceAxis
	values []float64 // flattened [qi*dAxis.N + di]
}

// DistanceAxis is the default d-axis ArrayDebyeTable is built against.
type DistanceAxis struct {
	DMax float64
	N    int
}

// DefaultDistanceAxis covers distances up to 300 Å at 1 Å resolution, ample
// for any biomolecule this core is likely to see.
var DefaultDistanceAxis = DistanceAxis{DMax: 300.0, N: 301}

func (a DistanceAxis) Values() []float64 {
	out := make([]float64, a.N)
	if a.N == 1 {
		return out
	}
	step := a.DMax / float64(a.N-1)
	for i := range out {
		out[i] = float64(i) * step
	}
	return out
}

// NewSincTable builds sinc(q·r) for every (q,d) pair on the given axes.
func NewSincTable(qAxis QAxis, dAxis DistanceAxis) *SincTable {
	t := &SincTable{qAxis: qAxis, dAxis: dAxis, values: make([]float64, qAxis.N*dAxis.N)}
	qs := qAxis.Values()
	ds := dAxis.Values()
	for qi, q := range qs {
		base := qi * dAxis.N
		for di, d := range ds {
			t.values[base+di] = Sinc(q * d)
		}
	}
	return t
}

// Sinc computes sin(x)/x, defined as 1 at x=0.
func Sinc(x float64) float64 {
	if x == 0 {
		return 1
	}
	return math.Sin(x) / x
}

// At returns sinc(q_qi · r_di) for the qi-th q sample and di-th distance
// sample.
func (t *SincTable) At(qi, di int) float64 { return t.values[qi*t.dAxis.N+di] }

// MatchesDefaultAxes reports whether this table was built on the process
// default q/d axes; spec.md §3 requires ArrayDebyeTable to verify this at
// construction and fall back to a per-call table otherwise.
func (t *SincTable) MatchesDefaultAxes() bool {
	return t.qAxis == DefaultQAxis && t.dAxis == DefaultDistanceAxis
}

var sincSingleton *SincTable

// SincSingleton returns the process-wide default-axis sinc table.
func SincSingleton() *SincTable {
	if sincSingleton == nil {
		sincSingleton = NewSincTable(DefaultQAxis, DefaultDistanceAxis)
	}
	return sincSingleton
}

// ForAxes returns a SincTable matching the requested axes: the singleton if
// they match the defaults, otherwise a freshly generated per-call table
// (spec.md §3 ArrayDebyeTable runtime-check contract).
func ForAxes(qAxis QAxis, dAxis DistanceAxis) *SincTable {
	if qAxis == DefaultQAxis && dAxis == DefaultDistanceAxis {
		return SincSingleton()
	}
	return NewSincTable(qAxis, dAxis)
}
