package fitter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sarat-asymmetrica/saxscore/internal/atom"
	"github.com/sarat-asymmetrica/saxscore/internal/body"
	"github.com/sarat-asymmetrica/saxscore/internal/composite"
	"github.com/sarat-asymmetrica/saxscore/internal/fitter"
	"github.com/sarat-asymmetrica/saxscore/internal/histogram"
)

func unitCubeWithExcludedVolume(t *testing.T) *composite.Histogram {
	t.Helper()
	groups := [][]atom.Atom{{
		{X: 0, Y: 0, Z: 0, Weight: 1, FF: atom.C},
		{X: 1, Y: 0, Z: 0, Weight: 1, FF: atom.C},
		{X: 0, Y: 1, Z: 0, Weight: 1, FF: atom.N},
		{X: 0, Y: 0, Z: 1, Weight: 1, FF: atom.O},
	}}
	mol := body.NewMolecule(groups)
	mgr := histogram.NewManager(mol, histogram.DefaultBinWidth, false, histogram.NewPool(2))
	comp, err := mgr.CalculateAll()
	require.NoError(t, err)
	return composite.NewAvg(comp, 10.0, 4)
}

func TestExcludedVolumeFitterRecoversKnownCx(t *testing.T) {
	hist := unitCubeWithExcludedVolume(t)
	q := []float64{0.01, 0.05, 0.1, 0.15, 0.2, 0.3, 0.4}

	trueParams := composite.Params{Cw: 0, Cx: 1.1, MeanAtomicRadius: 1.5, Background: 0.01}
	prof := hist.Debye(q, trueParams)

	data := fitter.Dataset{Q: q, I: prof.Total, Sigma: make([]float64, len(q))}
	for i := range data.Sigma {
		data.Sigma[i] = 1e-3
	}

	ev := &fitter.ExcludedVolumeFitter{Hist: hist, Q: q, Data: data, MeanAtomicRadius: 1.5}
	res, err := ev.Fit()
	require.NoError(t, err)
	assert.InDelta(t, 1.1, res.Cx, 0.1)
}

func TestExcludedVolumeFitterRejectsTooFewPoints(t *testing.T) {
	hist := unitCubeWithExcludedVolume(t)
	ev := &fitter.ExcludedVolumeFitter{
		Hist: hist,
		Q:    []float64{0.1, 0.2, 0.3},
		Data: fitter.Dataset{Q: []float64{0.1, 0.2, 0.3}, I: []float64{1, 2, 3}, Sigma: []float64{1, 1, 1}},
	}
	_, err := ev.Fit()
	require.Error(t, err)
}
