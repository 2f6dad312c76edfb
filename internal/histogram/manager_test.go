package histogram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sarat-asymmetrica/saxscore/internal/atom"
	"github.com/sarat-asymmetrica/saxscore/internal/body"
)

func unitCubeCarbons() [][]atom.Atom {
	return [][]atom.Atom{{
		{X: 0, Y: 0, Z: 0, Weight: 1, FF: atom.C},
		{X: 1, Y: 0, Z: 0, Weight: 1, FF: atom.C},
		{X: 0, Y: 1, Z: 0, Weight: 1, FF: atom.C},
		{X: 0, Y: 0, Z: 1, Weight: 1, FF: atom.C},
	}}
}

func TestManagerSelfCorrelationInBinZero(t *testing.T) {
	mol := body.NewMolecule(unitCubeCarbons())
	mgr := NewManager(mol, DefaultBinWidth, false, NewPool(2))
	comp, err := mgr.CalculateAll()
	require.NoError(t, err)

	cc := comp.AA.Cell(int(atom.C), int(atom.C))
	require.Greater(t, cc.Len(), 0)
	assert.Equal(t, 4.0, cc.Bins()[0])
}

func TestManagerThreadCountInvariance(t *testing.T) {
	groups := unitCubeCarbons()

	mol1 := body.NewMolecule(groups)
	mgr1 := NewManager(mol1, DefaultBinWidth, false, NewPool(1))
	c1, err := mgr1.CalculateAll()
	require.NoError(t, err)

	mol8 := body.NewMolecule(groups)
	mgr8 := NewManager(mol8, DefaultBinWidth, false, NewPool(8))
	c8, err := mgr8.CalculateAll()
	require.NoError(t, err)

	assert.Equal(t, c1.Total.Bins(), c8.Total.Bins())
}

func TestManagerIncrementalUpdateMatchesFullRebuild(t *testing.T) {
	groups := unitCubeCarbons()

	mol := body.NewMolecule(groups)
	mgr := NewManager(mol, DefaultBinWidth, false, NewPool(2))
	_, err := mgr.CalculateAll()
	require.NoError(t, err)

	mol.Bodies()[0].Transform(2, 0, 0)
	incremental, err := mgr.CalculateAll()
	require.NoError(t, err)

	moved := [][]atom.Atom{{
		{X: 2, Y: 0, Z: 0, Weight: 1, FF: atom.C},
		{X: 3, Y: 0, Z: 0, Weight: 1, FF: atom.C},
		{X: 2, Y: 1, Z: 0, Weight: 1, FF: atom.C},
		{X: 2, Y: 0, Z: 1, Weight: 1, FF: atom.C},
	}}
	freshMol := body.NewMolecule(moved)
	freshMgr := NewManager(freshMol, DefaultBinWidth, false, NewPool(2))
	fresh, err := freshMgr.CalculateAll()
	require.NoError(t, err)

	assert.Equal(t, fresh.Total.Bins(), incremental.Total.Bins())
}

func TestManagerEmptyMoleculeProducesMinBinsFloor(t *testing.T) {
	mol := body.NewMolecule([][]atom.Atom{{}})
	mgr := NewManager(mol, DefaultBinWidth, false, NewPool(1))
	comp, err := mgr.CalculateAll()
	require.NoError(t, err)
	assert.Equal(t, MinBins, comp.Total.Len())
}
