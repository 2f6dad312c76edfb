package body

import "github.com/sarat-asymmetrica/saxscore/internal/atom"

// Body is an owned sequence of Atoms plus an optional owned sequence of
// explicit hydration Waters. It reports mutations to its owning StateManager
// through a Signaller rather than holding a back-pointer to it (spec.md §9).
type Body struct {
	atoms  []atom.Atom
	waters []atom.Water
	sig    Signaller
}

// NewBody creates a body bound to the given signaller. The signaller is
// normally obtained from the Molecule that owns this body via
// StateManager.Signaller(index).
func NewBody(atoms []atom.Atom, sig Signaller) *Body {
	return &Body{atoms: append([]atom.Atom(nil), atoms...), sig: sig}
}

// Atoms returns the body's atom slice. Callers must not retain it across a
// call to SetAtoms/Transform, since those may reallocate.
func (b *Body) Atoms() []atom.Atom { return b.atoms }

// Waters returns the body's explicit hydration waters, if any.
func (b *Body) Waters() []atom.Water { return b.waters }

// SetAtoms replaces the body's atom set and marks it internally dirty.
func (b *Body) SetAtoms(atoms []atom.Atom) {
	b.atoms = append([]atom.Atom(nil), atoms...)
	b.sig.InternallyModified()
}

// SetWaters replaces the body's explicit hydration waters and marks it
// internally dirty (the body-water partial depends on this set).
func (b *Body) SetWaters(waters []atom.Water) {
	b.waters = append([]atom.Water(nil), waters...)
	b.sig.InternallyModified()
}

// Transform applies a rigid translation to every atom and water in the body
// and marks it externally dirty. Rotation is expressed by the caller as the
// already-applied per-atom displacement; this module does not own a general
// linear-algebra/rotation library (spec.md §1 Non-goals).
func (b *Body) Transform(dx, dy, dz float64) {
	for i := range b.atoms {
		b.atoms[i].X += dx
		b.atoms[i].Y += dy
		b.atoms[i].Z += dz
	}
	for i := range b.waters {
		b.waters[i].X += dx
		b.waters[i].Y += dy
		b.waters[i].Z += dz
	}
	b.sig.ExternallyModified()
}

// Molecule is an ordered list of Bodies plus a global waters vector shared
// across the whole structure (as opposed to each Body's own explicit
// hydration waters, used by per-body hydration strategies).
type Molecule struct {
	bodies       []*Body
	globalWaters []atom.Water
	states       *StateManager
}

// NewMolecule builds a Molecule from atom groups, one Body per group. The
// returned Molecule owns a fresh StateManager sized to len(groups).
func NewMolecule(groups [][]atom.Atom) *Molecule {
	sm := NewStateManager(len(groups))
	m := &Molecule{states: sm}
	m.bodies = make([]*Body, len(groups))
	for i, g := range groups {
		m.bodies[i] = NewBody(g, sm.Signaller(i))
	}
	return m
}

// Bodies returns the molecule's ordered body list.
func (m *Molecule) Bodies() []*Body { return m.bodies }

// StateManager returns the molecule's state manager, consumed by a
// HistogramManager to decide what to recompute.
func (m *Molecule) StateManager() *StateManager { return m.states }

// GlobalWaters returns the shared hydration-shell waters (as opposed to any
// per-body explicit waters).
func (m *Molecule) GlobalWaters() []atom.Water { return m.globalWaters }

// SetGlobalWaters replaces the shared hydration shell and flags the change on
// the state manager.
func (m *Molecule) SetGlobalWaters(waters []atom.Water) {
	m.globalWaters = append([]atom.Water(nil), waters...)
	m.states.MarkWatersChanged()
}

// AddBody appends a new body and resizes the state manager atomically with
// the body list, per spec.md §3's Molecule invariant ("no partial state").
func (m *Molecule) AddBody(atoms []atom.Atom) *Body {
	idx := len(m.bodies)
	m.states.Resize(idx + 1)
	b := NewBody(atoms, m.states.Signaller(idx))
	m.bodies = append(m.bodies, b)
	return b
}

// RemoveBody removes the body at idx and resizes the state manager
// atomically. Remaining bodies above idx keep their Signaller pointing at a
// now-stale index; callers that remove bodies mid-run must rebuild the
// Molecule rather than continue mutating it, matching the teacher's
// rebuild-on-structural-change convention (engines/spatial_hash.go's Clear()).
func (m *Molecule) RemoveBody(idx int) {
	m.bodies = append(m.bodies[:idx], m.bodies[idx+1:]...)
	m.states.Resize(len(m.bodies))
}

// TotalAtoms returns the number of atoms across all bodies, used by callers
// that need to size a CompactCoordinates buffer without visiting each body.
func (m *Molecule) TotalAtoms() int {
	n := 0
	for _, b := range m.bodies {
		n += len(b.atoms)
	}
	return n
}
