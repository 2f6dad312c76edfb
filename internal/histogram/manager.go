package histogram

import (
	"github.com/sarat-asymmetrica/saxscore/internal/atom"
	"github.com/sarat-asymmetrica/saxscore/internal/body"
	"github.com/sarat-asymmetrica/saxscore/internal/coords"
)

// ChunkSize is the source-atom block size each threaded job handles
// (spec.md §4.3: "work is chunked into fixed-size jobs (≈800 source atoms
// per job)").
const ChunkSize = 800

// pairKey identifies a cached body-body partial by ordered indices (i<=j).
type pairKey struct{ i, j int }

// Composite is the full output of Manager.CalculateAll: every partial the
// composite-histogram stage needs, plus the unpartitioned total.
type Composite struct {
	AA    *Distribution3D // atom-atom, indexed by form-factor-type pair
	AW    *Distribution2D // atom-water, indexed by atom's form-factor type
	WW    *Distribution1D // water-water
	Total *Distribution1D
}

// Manager computes, and incrementally updates, the partial distance
// distributions for a Molecule. First call is a full build; subsequent calls
// consult the Molecule's StateManager to recompute only the pairs that moved
// (spec.md §4.3).
type Manager struct {
	molecule *body.Molecule
	binWidth float64
	weighted bool
	pool     *Pool
	nTypes   int

	bodyCoords  []*coords.CompactCoordinates
	bodyFF      [][]int
	waterCoords *coords.CompactCoordinates
	waterFF     []int

	pairAA  map[pairKey]*Distribution3D
	pairAW  map[int]*Distribution2D
	ww      *Distribution1D
	built   bool
}

// NewManager builds a manager over molecule, using pool for threaded
// reduction (histogram.DefaultPool() if nil). weighted selects the
// weighted-distribution trait for every distribution this manager produces.
func NewManager(m *body.Molecule, binWidth float64, weighted bool, pool *Pool) *Manager {
	if pool == nil {
		pool = DefaultPool()
	}
	return &Manager{
		molecule: m,
		binWidth: binWidth,
		weighted: weighted,
		pool:     pool,
		nTypes:   atom.NumFormFactorTypes(),
		pairAA:   make(map[pairKey]*Distribution3D),
		pairAW:   make(map[int]*Distribution2D),
	}
}

func ffCodes(atoms []atom.Atom) []int {
	out := make([]int, len(atoms))
	for i, a := range atoms {
		out[i] = int(a.FF)
	}
	return out
}

// Calculate returns only the unpartitioned total distribution (the fast path
// for clients that do not need partials), per spec.md §4.3.
func (mgr *Manager) Calculate() (*Distribution1D, error) {
	c, err := mgr.CalculateAll()
	if err != nil {
		return nil, err
	}
	return c.Total, nil
}

// CalculateAll computes, or incrementally updates, every partial and returns
// the assembled composite (spec.md §4.3).
func (mgr *Manager) CalculateAll() (*Composite, error) {
	sm := mgr.molecule.StateManager()
	bodies := mgr.molecule.Bodies()

	extDirty := sm.GetExternallyModifiedBodies()
	intDirty := sm.GetInternallyModifiedBodies()
	watersChanged := sm.WatersChanged()

	if !mgr.built {
		mgr.bodyCoords = make([]*coords.CompactCoordinates, len(bodies))
		mgr.bodyFF = make([][]int, len(bodies))
		for i := range bodies {
			extDirty[i] = true
			intDirty[i] = true
		}
		watersChanged = true
		mgr.built = true
	}

	// Refresh packed coordinate buffers for any body whose atom set changed
	// (internally dirty) or whose positions moved under a rigid transform
	// (externally dirty) — both invalidate the cached CompactCoordinates, even
	// though only internal dirt implies the form-factor tags themselves
	// changed.
	for i, b := range bodies {
		if mgr.bodyCoords[i] == nil || intDirty[i] || extDirty[i] {
			mgr.bodyCoords[i] = coords.FromAtoms(b.Atoms())
			mgr.bodyFF[i] = ffCodes(b.Atoms())
		}
	}
	if mgr.waterCoords == nil || watersChanged {
		mgr.waterCoords = coords.FromWaters(mgr.molecule.GlobalWaters())
		waterAtoms := make([]atom.Atom, len(mgr.molecule.GlobalWaters()))
		for i, w := range mgr.molecule.GlobalWaters() {
			waterAtoms[i] = w.AsAtom()
		}
		mgr.waterFF = ffCodes(waterAtoms)
	}

	// Body-body atom-atom partials: recompute (i,j) iff either body is dirty
	// (externally or internally) or it is the first build.
	for i := range bodies {
		for j := i; j < len(bodies); j++ {
			key := pairKey{i, j}
			_, cached := mgr.pairAA[key]
			if cached && !extDirty[i] && !extDirty[j] {
				continue
			}
			d, err := mgr.computeBodyPair(i, j)
			if err != nil {
				return nil, err
			}
			mgr.pairAA[key] = d
		}
	}

	// Body-water partials: recompute iff the body is dirty or the water set
	// changed.
	for i := range bodies {
		_, cached := mgr.pairAW[i]
		if cached && !extDirty[i] && !watersChanged {
			continue
		}
		d, err := mgr.computeBodyWater(i)
		if err != nil {
			return nil, err
		}
		mgr.pairAW[i] = d
	}

	// Water-water partial: recomputed only when the water set changed.
	if mgr.ww == nil || watersChanged {
		ww, err := mgr.computeWaterWater()
		if err != nil {
			return nil, err
		}
		mgr.ww = ww
	}

	sm.Reset()

	aa := NewDistribution3D(mgr.binWidth, mgr.weighted, mgr.nTypes)
	for _, d := range mgr.pairAA {
		aa.MergeFrom(d)
	}
	aw := NewDistribution2D(mgr.binWidth, mgr.weighted, mgr.nTypes)
	for _, d := range mgr.pairAW {
		aw.MergeFrom(d)
	}

	total := NewDistribution1D(mgr.binWidth, mgr.weighted)
	total.MergeFrom(aa.Total())
	// atom-water and water-water contribute to the total distance
	// distribution with multiplicity 2 for the cross term, matching the
	// Debye sum's 2·cw atom-water term structure (spec.md §4.4) — but the
	// *distance histogram* itself (spec.md §4.3) is multiplicity-1 per
	// physical pair; the ×2 scaling belongs to the intensity-calculator
	// stage (internal/composite), not here.
	total.MergeFrom(aw.Total())
	total.MergeFrom(mgr.ww)
	total.Trim()

	return &Composite{AA: aa, AW: aw, WW: mgr.ww, Total: total}, nil
}

func (mgr *Manager) computeBodyPair(i, j int) (*Distribution3D, error) {
	ci, cj := mgr.bodyCoords[i], mgr.bodyCoords[j]
	ffi, ffj := mgr.bodyFF[i], mgr.bodyFF[j]
	sameBody := i == j

	n := ci.Len()
	if n == 0 || cj.Len() == 0 {
		d := NewDistribution3D(mgr.binWidth, mgr.weighted, mgr.nTypes)
		if sameBody {
			addSelfCorrelation(d, mgr.molecule.Bodies()[i].Atoms(), ffi)
		}
		return d, nil
	}

	nJobs := (n + ChunkSize - 1) / ChunkSize
	partials := make([]*Distribution3D, nJobs)
	jobs := make([]func() error, nJobs)
	for jobIdx := 0; jobIdx < nJobs; jobIdx++ {
		lo := jobIdx * ChunkSize
		hi := lo + ChunkSize
		if hi > n {
			hi = n
		}
		jobIdx, lo, hi := jobIdx, lo, hi
		jobs[jobIdx] = func() error {
			local := NewDistribution3D(mgr.binWidth, mgr.weighted, mgr.nTypes)
			for a := lo; a < hi; a++ {
				start := 0
				if sameBody {
					start = a + 1 // unordered pairs only, within-body
				}
				for b := start; b < cj.Len(); b++ {
					dist, w := ci.DistanceWeight1(a, b)
					local.Add(ffi[a], ffj[b], dist, w)
				}
			}
			partials[jobIdx] = local
			return nil
		}
	}
	if err := mgr.pool.Run(jobs); err != nil {
		return nil, err
	}

	out := NewDistribution3D(mgr.binWidth, mgr.weighted, mgr.nTypes)
	for _, p := range partials {
		out.MergeFrom(p)
	}
	if sameBody {
		addSelfCorrelation(out, mgr.molecule.Bodies()[i].Atoms(), ffi)
	}
	return out, nil
}

// addSelfCorrelation places Σ w_atom² for the body's own atoms into bin 0 of
// every (ff,ff) diagonal cell those atoms belong to (spec.md §4.3 edge case).
func addSelfCorrelation(d *Distribution3D, atoms []atom.Atom, ff []int) {
	sums := map[int]float64{}
	for i, a := range atoms {
		sums[ff[i]] += a.Weight * a.Weight
	}
	for t, s := range sums {
		d.Cell(t, t).AddAtBin(0, s)
	}
}

func (mgr *Manager) computeBodyWater(i int) (*Distribution2D, error) {
	ci := mgr.bodyCoords[i]
	ffi := mgr.bodyFF[i]
	cw := mgr.waterCoords

	d := NewDistribution2D(mgr.binWidth, mgr.weighted, mgr.nTypes)
	n := ci.Len()
	if n == 0 || cw.Len() == 0 {
		return d, nil
	}

	nJobs := (n + ChunkSize - 1) / ChunkSize
	partials := make([]*Distribution2D, nJobs)
	jobs := make([]func() error, nJobs)
	for jobIdx := 0; jobIdx < nJobs; jobIdx++ {
		lo := jobIdx * ChunkSize
		hi := lo + ChunkSize
		if hi > n {
			hi = n
		}
		jobIdx, lo, hi := jobIdx, lo, hi
		jobs[jobIdx] = func() error {
			local := NewDistribution2D(mgr.binWidth, mgr.weighted, mgr.nTypes)
			for a := lo; a < hi; a++ {
				for w := 0; w < cw.Len(); w++ {
					dist, wt := ci.DistanceWeight1(a, w)
					local.Add(ffi[a], dist, wt)
				}
			}
			partials[jobIdx] = local
			return nil
		}
	}
	if err := mgr.pool.Run(jobs); err != nil {
		return nil, err
	}
	for _, p := range partials {
		d.MergeFrom(p)
	}
	return d, nil
}

func (mgr *Manager) computeWaterWater() (*Distribution1D, error) {
	cw := mgr.waterCoords
	n := cw.Len()
	d := NewDistribution1D(mgr.binWidth, mgr.weighted)
	if n == 0 {
		return d, nil
	}

	nJobs := (n + ChunkSize - 1) / ChunkSize
	partials := make([]*Distribution1D, nJobs)
	jobs := make([]func() error, nJobs)
	for jobIdx := 0; jobIdx < nJobs; jobIdx++ {
		lo := jobIdx * ChunkSize
		hi := lo + ChunkSize
		if hi > n {
			hi = n
		}
		jobIdx, lo, hi := jobIdx, lo, hi
		jobs[jobIdx] = func() error {
			local := NewDistribution1D(mgr.binWidth, mgr.weighted)
			for a := lo; a < hi; a++ {
				for b := a + 1; b < n; b++ {
					dist, w := cw.DistanceWeight1(a, b)
					local.Add(dist, w)
				}
			}
			partials[jobIdx] = local
			return nil
		}
	}
	if err := mgr.pool.Run(jobs); err != nil {
		return nil, err
	}
	for _, p := range partials {
		d.MergeFrom(p)
	}
	self := SelfCorrelation(func() []atom.Atom {
		out := make([]atom.Atom, len(mgr.molecule.GlobalWaters()))
		for i, w := range mgr.molecule.GlobalWaters() {
			out[i] = w.AsAtom()
		}
		return out
	}())
	d.AddAtBin(0, self)
	return d, nil
}
