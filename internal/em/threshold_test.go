package em

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSmoothLandscapeWindowOneIsIdentity(t *testing.T) {
	in := []LandscapePoint{{0, 5}, {1, 3}, {2, 9}}
	out := SmoothLandscape(in, 1)
	assert.Equal(t, in, out)
}

func TestSmoothLandscapeEvenWindowForcedOdd(t *testing.T) {
	in := []LandscapePoint{{0, 1}, {1, 2}, {2, 3}, {3, 4}, {4, 5}}
	out := SmoothLandscape(in, 2)
	// window forced to 3: center point averages its immediate neighbors
	assert.InDelta(t, 2.0, out[1].ChiSquare, 1e-9)
}

func TestInterpolateLandscapeProducesExpectedCount(t *testing.T) {
	in := []LandscapePoint{{0, 0}, {1, 10}, {2, 0}}
	out := InterpolateLandscape(in, 5)
	assert.Len(t, out, (len(in)-1)*5+1)
	assert.InDelta(t, in[0].Sigma, out[0].Sigma, 1e-9)
	assert.InDelta(t, in[len(in)-1].Sigma, out[len(out)-1].Sigma, 1e-9)
}

func TestInterpolateLandscapeTooFewPointsPassesThrough(t *testing.T) {
	in := []LandscapePoint{{0, 0}}
	out := InterpolateLandscape(in, 5)
	assert.Equal(t, in, out)
}

func TestLocalMinimaFindsSeparatedMinima(t *testing.T) {
	landscape := []LandscapePoint{
		{0, 9}, {1, 1}, {2, 9}, {3, 9}, {4, 2}, {5, 9},
	}
	minima := LocalMinima(landscape, 0.1)
	assert.Len(t, minima, 2)
	assert.InDelta(t, 1, minima[0].Sigma, 1e-9)
	assert.InDelta(t, 4, minima[1].Sigma, 1e-9)
}

func TestLocalMinimaDropsTooCloseMinima(t *testing.T) {
	landscape := []LandscapePoint{
		{0, 9}, {1, 1}, {2, 9}, {3, 0.5}, {4, 9},
	}
	// span is 4, minSeparationFrac 0.9 -> minSep 3.6, so the two minima at
	// sigma=1 and sigma=3 (distance 2) are too close; only the deeper one
	// survives.
	minima := LocalMinima(landscape, 0.9)
	assert.Len(t, minima, 1)
	assert.InDelta(t, 3, minima[0].Sigma, 1e-9)
}
