package composite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sarat-asymmetrica/saxscore/internal/atom"
	"github.com/sarat-asymmetrica/saxscore/internal/body"
	"github.com/sarat-asymmetrica/saxscore/internal/formfactor"
	"github.com/sarat-asymmetrica/saxscore/internal/histogram"
)

func unitCube() [][]atom.Atom {
	return [][]atom.Atom{{
		{X: 0, Y: 0, Z: 0, Weight: 1, FF: atom.C},
		{X: 1, Y: 0, Z: 0, Weight: 1, FF: atom.C},
		{X: 0, Y: 1, Z: 0, Weight: 1, FF: atom.N},
		{X: 0, Y: 0, Z: 1, Weight: 1, FF: atom.O},
	}}
}

func buildComposite(t *testing.T, groups [][]atom.Atom, waters []atom.Water) *histogram.Composite {
	t.Helper()
	mol := body.NewMolecule(groups)
	if waters != nil {
		mol.SetGlobalWaters(waters)
	}
	mgr := histogram.NewManager(mol, histogram.DefaultBinWidth, false, histogram.NewPool(2))
	comp, err := mgr.CalculateAll()
	require.NoError(t, err)
	return comp
}

func TestDebyeSumIdentity(t *testing.T) {
	comp := buildComposite(t, unitCube(), []atom.Water{{X: 0.5, Y: 0.5, Z: 0.5, Weight: 1}})
	hist := NewAvg(comp, 0, 4)

	q := []float64{0, 0.05, 0.1, 0.2, 0.3, 0.5}
	prof := hist.Debye(q, Params{Cw: 1.0, Background: 0})

	sum := prof.Sum()
	for i := range q {
		assert.InDelta(t, prof.Total[i], sum[i], 1e-6*(1+abs(sum[i])))
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func TestDebyeZeroQNormalization(t *testing.T) {
	comp := buildComposite(t, unitCube(), nil)
	hist := NewAvg(comp, 0, 4)

	prof := hist.Debye([]float64{0}, Params{Cw: 0})

	expected := 0.0
	// at q=0 every sinc term is 1, so AA(0) equals the full ordered Debye
	// sum Σ_ij f_i(0)*f_j(0): each atom's self term (i=j) once, plus every
	// distinct pair counted twice (i,j) and (j,i).
	atoms := []atom.FormFactorType{atom.C, atom.C, atom.N, atom.O}
	for i := range atoms {
		fi := formfactor.ZeroQ(atoms[i])
		expected += fi * fi
		for j := i + 1; j < len(atoms); j++ {
			fj := formfactor.ZeroQ(atoms[j])
			expected += 2 * fi * fj
		}
	}
	assert.InDelta(t, expected, prof.AA[0], 1e-6*expected)
}

// carbonCube builds spec.md §8 scenario 1's 8 unit-weight carbons at
// (±1,±1,±1).
func carbonCube() []atom.Atom {
	atoms := make([]atom.Atom, 0, 8)
	for _, x := range []float64{-1, 1} {
		for _, y := range []float64{-1, 1} {
			for _, z := range []float64{-1, 1} {
				atoms = append(atoms, atom.Atom{X: x, Y: y, Z: z, Weight: 1, FF: atom.C})
			}
		}
	}
	return atoms
}

func TestDebyeCarbonCubeMatchesSpecScenarioOne(t *testing.T) {
	comp := buildComposite(t, [][]atom.Atom{carbonCube()}, nil)
	hist := NewAvg(comp, 0, 8)

	prof := hist.Debye([]float64{0}, Params{Cw: 0})

	// spec.md §8 scenario 1: I(0) = 64·f_C(0)² = 64, since f_C(0) = 1 and
	// every atom's weight is 1 (8 self-terms + 56 ordered distinct pairs).
	assert.InDelta(t, 64.0, prof.AA[0], 1e-6)
	assert.InDelta(t, 64.0, prof.Total[0], 1e-6)
}

func TestDebyeCarbonCubePlusWaterMatchesSpecScenarioTwo(t *testing.T) {
	comp := buildComposite(t, [][]atom.Atom{carbonCube()}, []atom.Water{{X: 0, Y: 0, Z: 0, Weight: 1}})
	hist := NewAvg(comp, 0, 8)

	prof := hist.Debye([]float64{0}, Params{Cw: 1.0})

	// spec.md §8 scenario 2: I(0) = (8+1)² = 81 with cw=1, cx=0.
	assert.InDelta(t, 81.0, prof.Total[0], 1e-6)
}

func TestDebyeSelfOnlyMoleculeHasNoCrossTerms(t *testing.T) {
	comp := buildComposite(t, unitCube(), nil)
	hist := NewAvg(comp, 0, 4)
	prof := hist.Debye([]float64{0.1}, Params{Cw: 1.0})
	assert.Zero(t, prof.AW[0])
	assert.Zero(t, prof.WW[0])
}

func TestVariantString(t *testing.T) {
	assert.Equal(t, "avg", Avg.String())
	assert.Equal(t, "explicit", Explicit.String())
	assert.Equal(t, "grid", Grid.String())
}

func TestZExvAvgFromVolume(t *testing.T) {
	assert.InDelta(t, 2.5, ZExvAvgFromVolume(100, 0.05, 2), 1e-9)
	assert.Zero(t, ZExvAvgFromVolume(100, 0.05, 0))
}
