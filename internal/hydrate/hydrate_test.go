package hydrate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sarat-asymmetrica/saxscore/internal/atom"
)

func TestHydrateEmptyAtomsReturnsNil(t *testing.T) {
	waters, err := Hydrate(nil, Config{Width: 1, Bins: 10, AtomRadius: 2, WaterRadius: 1})
	require.NoError(t, err)
	assert.Nil(t, waters)
}

func TestHydrateAxialProducesWaters(t *testing.T) {
	atoms := []atom.Atom{{X: 0, Y: 0, Z: 0, Weight: 1, FF: atom.C}}
	waters, err := Hydrate(atoms, Config{Width: 1, Bins: 20, AtomRadius: 2, WaterRadius: 1, Placement: Axial})
	require.NoError(t, err)
	assert.Len(t, waters, 6)
}

func TestHydrateNoHydrationProducesNoWaters(t *testing.T) {
	atoms := []atom.Atom{{X: 0, Y: 0, Z: 0, Weight: 1, FF: atom.C}}
	waters, err := Hydrate(atoms, Config{Width: 1, Bins: 20, AtomRadius: 2, WaterRadius: 1, Placement: NoHydration})
	require.NoError(t, err)
	assert.Empty(t, waters)
}

func TestHydrateAppliesCulling(t *testing.T) {
	atoms := []atom.Atom{
		{X: 0, Y: 0, Z: 0, Weight: 1, FF: atom.C},
		{X: 2, Y: 0, Z: 0, Weight: 1, FF: atom.C},
		{X: 0, Y: 2, Z: 0, Weight: 1, FF: atom.C},
		{X: 0, Y: 0, Z: 2, Weight: 1, FF: atom.C},
	}
	waters, err := Hydrate(atoms, Config{
		Width: 1, Bins: 30, AtomRadius: 2, WaterRadius: 1,
		Placement: Axial, Culling: StrideCulling{}, TargetCount: 2,
	})
	require.NoError(t, err)
	assert.LessOrEqual(t, len(waters), 24)
}
