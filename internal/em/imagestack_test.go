package em

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func smallStack() *ImageStack {
	h := Header{NX: 2, NY: 2, NZ: 2, VoxelSize: 1.0}
	s := NewImageStack(h)
	s.Set(0, 0, 0, 1.0)
	s.Set(1, 0, 0, 2.0)
	s.Set(0, 1, 0, 3.0)
	s.Set(0, 0, 1, 4.0)
	return s
}

func TestImageStackSetAtRoundTrip(t *testing.T) {
	s := smallStack()
	assert.Equal(t, 4.0, s.At(0, 0, 1))
	assert.Equal(t, 0.0, s.At(1, 1, 1))
}

func TestImageStackMinMaxDensity(t *testing.T) {
	s := smallStack()
	min, max, err := s.MinMaxDensity()
	require.NoError(t, err)
	assert.Equal(t, 0.0, min)
	assert.Equal(t, 4.0, max)
}

func TestImageStackMinMaxDensityRejectsEmpty(t *testing.T) {
	s := &ImageStack{}
	_, _, err := s.MinMaxDensity()
	require.Error(t, err)
}

func TestImageStackGenerateAtomsRespectsCutoff(t *testing.T) {
	s := smallStack()
	atoms := s.GenerateAtoms(2.0)
	for _, a := range atoms {
		assert.Greater(t, a.Density, 2.0)
	}
	assert.Len(t, atoms, 2)
}

func TestVoxelVolume(t *testing.T) {
	h := Header{VoxelSize: 2.0}
	assert.InDelta(t, 8.0, h.VoxelVolume(), 1e-9)
}
