package em

import (
	"fmt"
	"sort"

	"github.com/sarat-asymmetrica/saxscore/internal/atom"
	"github.com/sarat-asymmetrica/saxscore/internal/body"
)

// ProteinManager owns a Molecule whose bodies are buckets indexed by
// ascending charge-density cutoff; each body holds only atoms whose density
// falls in that bucket and is >= the currently active threshold (spec.md §3
// "ProteinManager (EM)"). ChargeLevels must be sorted ascending and define
// K-1 half-open bins [levels[i], levels[i+1)) plus one open-ended top bin.
type ProteinManager struct {
	Stack        *ImageStack
	ChargeLevels []float64

	molecule       *body.Molecule
	sortedAtoms    []DensityAtom // ascending by Density, built once
	previousCutoff float64
	initialized    bool
}

// NewProteinManager builds a manager over stack with K evenly spaced charge
// levels between the stack's min and max density (spec.md §4.6 step 1, "K is
// a setting, typical 50").
func NewProteinManager(stack *ImageStack, k int) (*ProteinManager, error) {
	if k < 2 {
		return nil, fmt.Errorf("em: charge level count must be >= 2, got %d", k)
	}
	min, max, err := stack.MinMaxDensity()
	if err != nil {
		return nil, err
	}
	levels := make([]float64, k)
	for i := range levels {
		levels[i] = min + (max-min)*float64(i)/float64(k-1)
	}
	return NewProteinManagerWithLevels(stack, levels), nil
}

// NewProteinManagerWithLevels builds a manager with explicit, caller-supplied
// charge levels (must already be sorted ascending).
func NewProteinManagerWithLevels(stack *ImageStack, levels []float64) *ProteinManager {
	atoms := stack.GenerateAtoms(levels[0])
	sort.Slice(atoms, func(i, j int) bool { return atoms[i].Density < atoms[j].Density })
	return &ProteinManager{
		Stack:        stack,
		ChargeLevels: append([]float64(nil), levels...),
		sortedAtoms:  atoms,
	}
}

// bucketIndex returns the index i such that ChargeLevels[i] <= density and
// (i+1 is out of range or density < ChargeLevels[i+1]).
func (m *ProteinManager) bucketIndex(density float64) int {
	// sort.Search finds the first level strictly greater than density; the
	// bucket is the one just before it.
	i := sort.Search(len(m.ChargeLevels), func(i int) bool { return m.ChargeLevels[i] > density })
	if i == 0 {
		return 0
	}
	return i - 1
}

// affectedRange returns the inclusive [lo, hi] bucket indices whose contents
// can change when the active cutoff moves from oldCutoff to newCutoff
// (spec.md §4.6 "Incremental bucket update").
func (m *ProteinManager) affectedRange(oldCutoff, newCutoff float64) (lo, hi int) {
	cLo, cHi := oldCutoff, newCutoff
	if cHi < cLo {
		cLo, cHi = cHi, cLo
	}
	lo = m.bucketIndex(cLo)
	hi = m.bucketIndex(cHi)
	if hi >= len(m.ChargeLevels) {
		hi = len(m.ChargeLevels) - 1
	}
	return lo, hi
}

// groupsForBucket collects the atoms belonging to bucket idx that are >=
// cutoff, scanning the pre-sorted atom list.
func (m *ProteinManager) groupsForBucket(idx int, cutoff float64) []atom.Atom {
	lowerBound := m.ChargeLevels[idx]
	if cutoff > lowerBound {
		lowerBound = cutoff
	}
	var upperBound = float64(0)
	hasUpper := idx+1 < len(m.ChargeLevels)
	if hasUpper {
		upperBound = m.ChargeLevels[idx+1]
	}

	start := sort.Search(len(m.sortedAtoms), func(i int) bool { return m.sortedAtoms[i].Density >= lowerBound })
	var group []atom.Atom
	for i := start; i < len(m.sortedAtoms); i++ {
		d := m.sortedAtoms[i].Density
		if hasUpper && d >= upperBound {
			break
		}
		group = append(group, m.sortedAtoms[i].AsAtom())
	}
	return group
}

// Update rebuilds only the buckets affected by moving the active threshold to
// cutoff (spec.md §4.6 step 2a). On the very first call the whole Molecule is
// constructed from scratch.
func (m *ProteinManager) Update(cutoff float64) *body.Molecule {
	if !m.initialized {
		groups := make([][]atom.Atom, len(m.ChargeLevels))
		for i := range groups {
			groups[i] = m.groupsForBucket(i, cutoff)
		}
		m.molecule = body.NewMolecule(groups)
		m.previousCutoff = cutoff
		m.initialized = true
		return m.molecule
	}

	if cutoff == m.previousCutoff {
		return m.molecule
	}

	lo, hi := m.affectedRange(m.previousCutoff, cutoff)
	for i := lo; i <= hi; i++ {
		m.molecule.Bodies()[i].SetAtoms(m.groupsForBucket(i, cutoff))
	}
	m.previousCutoff = cutoff
	return m.molecule
}

// Molecule returns the current molecule, or nil if Update has never been
// called.
func (m *ProteinManager) Molecule() *body.Molecule { return m.molecule }

// EstimatedMass returns the atomic mass implied by the active threshold: the
// number of included voxels times the voxel volume (spec.md §4.6 step 6).
func (m *ProteinManager) EstimatedMass(cutoff float64) float64 {
	n := 0
	for _, a := range m.sortedAtoms {
		if a.Density >= cutoff {
			n++
		}
	}
	return float64(n) * m.Stack.Header.VoxelVolume()
}
