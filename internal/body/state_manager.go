// Package body implements the Molecule/Body hierarchy and the state manager
// that tracks which bodies moved between successive histogram calculations.
//
// Grounded on original_source/include/data/StateManager.h's dirty-tracking
// contract and spec.md §9's "cyclic body <-> histogram-manager observation"
// strategy: bodies notify the manager through a small non-owning Signaller
// handle instead of holding a back-pointer to it.
package body

import "sync"

// dirtyState is a body's modification status since the last calculation.
type dirtyState int

const (
	clean dirtyState = iota
	internalDirty
	externalDirty
)

// StateManager tracks, per body, whether it was rigidly transformed
// (externally dirty), had its atom set mutated (internally dirty), or is
// unchanged (clean) since the last Reset. It is owned by exactly one
// HistogramManager; its mutating methods are invoked from the main thread via
// body Signallers, never concurrently with a running calculation.
type StateManager struct {
	mu            sync.Mutex
	states        []dirtyState
	watersChanged bool
}

// NewStateManager allocates a manager for n bodies, all initially dirty so
// that the first calculation is a full build.
func NewStateManager(n int) *StateManager {
	states := make([]dirtyState, n)
	for i := range states {
		states[i] = internalDirty
	}
	return &StateManager{states: states, watersChanged: true}
}

// Resize grows or shrinks the tracked body count, marking any newly added
// slot internally dirty. Per spec.md §3 Molecule invariant, it is called
// together with the Molecule's own body-list resize; it takes only the
// StateManager's own mutex (Molecule has no lock of its own).
func (sm *StateManager) Resize(n int) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if n <= len(sm.states) {
		sm.states = sm.states[:n]
		return
	}
	grown := make([]dirtyState, n)
	copy(grown, sm.states)
	for i := len(sm.states); i < n; i++ {
		grown[i] = internalDirty
	}
	sm.states = grown
}

// Signaller returns a handle bound to body i. Bodies hold this handle instead
// of a pointer back to the StateManager.
func (sm *StateManager) Signaller(i int) Signaller {
	return Signaller{index: i, mgr: sm}
}

func (sm *StateManager) markExternal(i int) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if sm.states[i] != internalDirty {
		sm.states[i] = externalDirty
	}
}

func (sm *StateManager) markInternal(i int) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.states[i] = internalDirty
}

// MarkWatersChanged flags the global water set as modified since the last
// Reset.
func (sm *StateManager) MarkWatersChanged() {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.watersChanged = true
}

// WatersChanged reports whether the water set moved since the last Reset.
func (sm *StateManager) WatersChanged() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.watersChanged
}

// GetExternallyModifiedBodies returns, for each body index, whether it is
// dirty at all: rigidly transformed or internally modified. An internally
// dirty body needs at least the pair recomputation a moved body needs, so it
// is reported here as well as by GetInternallyModifiedBodies.
func (sm *StateManager) GetExternallyModifiedBodies() []bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	out := make([]bool, len(sm.states))
	for i, s := range sm.states {
		out[i] = s == externalDirty || s == internalDirty
	}
	return out
}

// GetInternallyModifiedBodies returns, for each body index, whether its atom
// set itself changed (added/removed/mutated atoms).
func (sm *StateManager) GetInternallyModifiedBodies() []bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	out := make([]bool, len(sm.states))
	for i, s := range sm.states {
		out[i] = s == internalDirty
	}
	return out
}

// Reset moves every body to clean and clears the waters-changed flag. Called
// atomically at the end of a successful histogram calculation.
func (sm *StateManager) Reset() {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	for i := range sm.states {
		sm.states[i] = clean
	}
	sm.watersChanged = false
}

// Signaller is a small handle a Body uses to notify its owning StateManager of
// modifications, without holding a back-pointer to the manager itself. The
// StateManager is assumed to outlive every Signaller derived from it.
type Signaller struct {
	index int
	mgr   *StateManager
}

// ExternallyModified notifies the manager that the body underwent a rigid
// transform (translation/rotation) but its atom set is unchanged.
func (s Signaller) ExternallyModified() {
	if s.mgr != nil {
		s.mgr.markExternal(s.index)
	}
}

// InternallyModified notifies the manager that the body's atom set itself
// changed (atoms added, removed, or had their positions/weights edited
// in place).
func (s Signaller) InternallyModified() {
	if s.mgr != nil {
		s.mgr.markInternal(s.index)
	}
}
