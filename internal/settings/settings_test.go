package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSettings(t *testing.T) {
	s := Default()
	assert.Equal(t, "none", s.PlacementStrategy)
	assert.Equal(t, "mt", s.HistogramManager)
	assert.Equal(t, 0.5, s.QMax)
	assert.Equal(t, 50, s.ChargeLevels)
}

func TestLoadOverridesOnlyGivenKeys(t *testing.T) {
	data := []byte("q_max 1.2\nhydration_on true\n")
	s, err := Load(data)
	require.NoError(t, err)
	assert.Equal(t, 1.2, s.QMax)
	assert.True(t, s.HydrationOn)
	assert.Equal(t, "none", s.PlacementStrategy) // untouched, stays default
}

func TestLoadRejectsUnrecognizedKey(t *testing.T) {
	_, err := Load([]byte("bogus_key 1\n"))
	require.Error(t, err)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	in := Settings{
		PlacementStrategy: "axial",
		HistogramManager:  "st",
		FitExcludedVolume: true,
		QMin:              0.01,
		QMax:              0.4,
		GridWidth:         1.5,
		Threads:           4,
		OutputDir:         "/tmp/out",
		SampleFrequency:   2,
		ChargeLevels:      32,
		HydrationOn:       true,
		KeepHydrogens:     true,
		InputQUnit:        "nanometer",
	}
	out, err := Load(Save(in))
	require.NoError(t, err)
	assert.Equal(t, in, out)
}
