package coords

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sarat-asymmetrica/saxscore/internal/atom"
)

func TestFromAtomsDistanceWeight1(t *testing.T) {
	cc := FromAtoms([]atom.Atom{
		{X: 0, Y: 0, Z: 0, Weight: 2},
		{X: 3, Y: 4, Z: 0, Weight: 5},
	})
	dist, w := cc.DistanceWeight1(0, 1)
	assert.InDelta(t, 5.0, dist, 1e-4)
	assert.InDelta(t, 10.0, w, 1e-4)
}

func TestUpdateReusesBackingArrayWhenSameLength(t *testing.T) {
	cc := FromAtoms([]atom.Atom{{X: 0, Y: 0, Z: 0, Weight: 1}, {X: 1, Y: 0, Z: 0, Weight: 1}})
	before := &cc.data[0]
	cc.Update([]atom.Atom{{X: 5, Y: 0, Z: 0, Weight: 1}, {X: 6, Y: 0, Z: 0, Weight: 1}})
	after := &cc.data[0]
	assert.Same(t, before, after)
	assert.InDelta(t, 5.0, float64(cc.data[0].X), 1e-4)
}

func TestUpdateReallocatesOnLengthChange(t *testing.T) {
	cc := FromAtoms([]atom.Atom{{X: 0, Y: 0, Z: 0, Weight: 1}})
	cc.Update([]atom.Atom{{X: 1, Y: 0, Z: 0, Weight: 1}, {X: 2, Y: 0, Z: 0, Weight: 1}})
	assert.Equal(t, 2, cc.Len())
}

func TestDistanceWeightBlock4HandlesShortTail(t *testing.T) {
	cc := FromAtoms([]atom.Atom{
		{X: 0, Y: 0, Z: 0, Weight: 1},
		{X: 1, Y: 0, Z: 0, Weight: 1},
		{X: 2, Y: 0, Z: 0, Weight: 1},
	})
	var out [4]DistWeight
	n := cc.DistanceWeightBlock4(0, 1, &out)
	assert.Equal(t, 2, n)
	assert.InDelta(t, 1.0, out[0].Dist, 1e-9)
	assert.InDelta(t, 2.0, out[1].Dist, 1e-9)
}
