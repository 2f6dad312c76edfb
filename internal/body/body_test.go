package body

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sarat-asymmetrica/saxscore/internal/atom"
)

func TestNewMoleculeStartsFullyDirty(t *testing.T) {
	mol := NewMolecule([][]atom.Atom{
		{{X: 0, Y: 0, Z: 0, Weight: 1, FF: atom.C}},
		{{X: 1, Y: 0, Z: 0, Weight: 1, FF: atom.C}},
	})
	assert.Equal(t, []bool{true, true}, mol.StateManager().GetInternallyModifiedBodies())
	assert.True(t, mol.StateManager().WatersChanged())
}

func TestResetClearsAllDirtFlags(t *testing.T) {
	mol := NewMolecule([][]atom.Atom{{{X: 0, Y: 0, Z: 0, Weight: 1}}})
	mol.StateManager().Reset()
	assert.Equal(t, []bool{false}, mol.StateManager().GetInternallyModifiedBodies())
	assert.Equal(t, []bool{false}, mol.StateManager().GetExternallyModifiedBodies())
	assert.False(t, mol.StateManager().WatersChanged())
}

func TestTransformMarksOnlyExternallyDirty(t *testing.T) {
	mol := NewMolecule([][]atom.Atom{{{X: 0, Y: 0, Z: 0, Weight: 1}}})
	mol.StateManager().Reset()

	mol.Bodies()[0].Transform(1, 2, 3)

	assert.Equal(t, []bool{false}, mol.StateManager().GetInternallyModifiedBodies())
	assert.Equal(t, []bool{true}, mol.StateManager().GetExternallyModifiedBodies())

	atoms := mol.Bodies()[0].Atoms()
	assert.InDelta(t, 1.0, atoms[0].X, 1e-9)
	assert.InDelta(t, 2.0, atoms[0].Y, 1e-9)
	assert.InDelta(t, 3.0, atoms[0].Z, 1e-9)
}

func TestSetAtomsMarksInternallyDirtyAndOverridesExternal(t *testing.T) {
	mol := NewMolecule([][]atom.Atom{{{X: 0, Y: 0, Z: 0, Weight: 1}}})
	mol.StateManager().Reset()

	mol.Bodies()[0].Transform(1, 0, 0)
	assert.Equal(t, []bool{true}, mol.StateManager().GetExternallyModifiedBodies())

	mol.Bodies()[0].SetAtoms([]atom.Atom{{X: 9, Y: 9, Z: 9, Weight: 1}})

	assert.Equal(t, []bool{true}, mol.StateManager().GetInternallyModifiedBodies())
	// An internally dirty body is still reported by GetExternallyModifiedBodies,
	// since both require a full coordinate-buffer rebuild.
	assert.Equal(t, []bool{true}, mol.StateManager().GetExternallyModifiedBodies())
}

func TestInternalDirtyNotDowngradedByLateExternalSignal(t *testing.T) {
	mol := NewMolecule([][]atom.Atom{{{X: 0, Y: 0, Z: 0, Weight: 1}}})
	mol.StateManager().Reset()

	mol.Bodies()[0].SetAtoms([]atom.Atom{{X: 1, Y: 1, Z: 1, Weight: 1}})
	mol.Bodies()[0].Transform(1, 1, 1)

	assert.Equal(t, []bool{true}, mol.StateManager().GetInternallyModifiedBodies())
}

func TestAddBodyResizesStateManagerAtomically(t *testing.T) {
	mol := NewMolecule([][]atom.Atom{{{X: 0, Y: 0, Z: 0, Weight: 1}}})
	mol.StateManager().Reset()

	mol.AddBody([]atom.Atom{{X: 1, Y: 1, Z: 1, Weight: 1}})

	assert.Len(t, mol.Bodies(), 2)
	assert.Equal(t, []bool{false, true}, mol.StateManager().GetInternallyModifiedBodies())
}

func TestRemoveBodyShrinksStateManager(t *testing.T) {
	mol := NewMolecule([][]atom.Atom{
		{{X: 0, Y: 0, Z: 0, Weight: 1}},
		{{X: 1, Y: 1, Z: 1, Weight: 1}},
	})
	mol.RemoveBody(0)
	assert.Len(t, mol.Bodies(), 1)
	assert.Len(t, mol.StateManager().GetInternallyModifiedBodies(), 1)
}

func TestSetGlobalWatersMarksWatersChanged(t *testing.T) {
	mol := NewMolecule([][]atom.Atom{{{X: 0, Y: 0, Z: 0, Weight: 1}}})
	mol.StateManager().Reset()

	mol.SetGlobalWaters([]atom.Water{{X: 0, Y: 0, Z: 0, Weight: 1}})

	assert.True(t, mol.StateManager().WatersChanged())
	assert.Len(t, mol.GlobalWaters(), 1)
}

func TestTotalAtomsSumsAcrossBodies(t *testing.T) {
	mol := NewMolecule([][]atom.Atom{
		{{X: 0, Y: 0, Z: 0, Weight: 1}, {X: 1, Y: 0, Z: 0, Weight: 1}},
		{{X: 2, Y: 0, Z: 0, Weight: 1}},
	})
	assert.Equal(t, 3, mol.TotalAtoms())
}

func TestZeroSignallerIsANoOp(t *testing.T) {
	var sig Signaller
	assert.NotPanics(t, func() {
		sig.ExternallyModified()
		sig.InternallyModified()
	})
}
