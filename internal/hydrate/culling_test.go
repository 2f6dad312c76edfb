package hydrate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sarat-asymmetrica/saxscore/internal/atom"
)

func waterSlice(n int) []atom.Water {
	out := make([]atom.Water, n)
	for i := range out {
		out[i] = atom.Water{X: float64(i), Weight: 1}
	}
	return out
}

func TestNoCullingReturnsUnchanged(t *testing.T) {
	in := waterSlice(10)
	out := NoCulling{}.Cull(in, 3)
	assert.Equal(t, in, out)
}

func TestStrideCullingReducesTowardTarget(t *testing.T) {
	in := waterSlice(20)
	out := StrideCulling{}.Cull(in, 5)
	assert.LessOrEqual(t, len(out), 20)
	assert.NotEqual(t, len(in), len(out))
}

func TestStrideCullingNoOpWhenAlreadyUnderTarget(t *testing.T) {
	in := waterSlice(3)
	out := StrideCulling{}.Cull(in, 5)
	assert.Equal(t, in, out)
}

func TestStrideCullingNoOpWhenFactorBelowTwo(t *testing.T) {
	in := waterSlice(6)
	out := StrideCulling{}.Cull(in, 5) // factor = 6/5 = 1
	assert.Equal(t, in, out)
}

func TestStrideCullingNoOpOnNonPositiveTarget(t *testing.T) {
	in := waterSlice(10)
	out := StrideCulling{}.Cull(in, 0)
	assert.Equal(t, in, out)
}
