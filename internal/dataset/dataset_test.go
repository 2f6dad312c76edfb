package dataset

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadTwoColumnDefaultsSigmaToSqrtI(t *testing.T) {
	ds, err := Read(strings.NewReader("0.01 100\n0.02 400\n"))
	require.NoError(t, err)
	require.Len(t, ds.Q, 2)
	assert.InDelta(t, 10.0, ds.Sigma[0], 1e-9)
	assert.InDelta(t, 20.0, ds.Sigma[1], 1e-9)
}

func TestReadThreeColumnUsesExplicitSigma(t *testing.T) {
	ds, err := Read(strings.NewReader("0.01 100 5\n"))
	require.NoError(t, err)
	assert.InDelta(t, 5.0, ds.Sigma[0], 1e-9)
}

func TestReadFourColumnIgnoresModelColumn(t *testing.T) {
	ds, err := Read(strings.NewReader("0.01 100 5 99\n"))
	require.NoError(t, err)
	assert.Equal(t, 1, len(ds.Q))
	assert.InDelta(t, 100.0, ds.I[0], 1e-9)
}

func TestReadSkipsCommentsAndBlankLines(t *testing.T) {
	ds, err := Read(strings.NewReader("# header\n\n; also a comment\n0.01 100\n"))
	require.NoError(t, err)
	assert.Len(t, ds.Q, 1)
}

func TestReadAcceptsCommaSeparated(t *testing.T) {
	ds, err := Read(strings.NewReader("0.01,100,5\n0.02,200,7\n"))
	require.NoError(t, err)
	assert.Len(t, ds.Q, 2)
	assert.InDelta(t, 0.02, ds.Q[1], 1e-9)
}

func TestReadRejectsColumnCountChange(t *testing.T) {
	_, err := Read(strings.NewReader("0.01 100\n0.02 200 5\n"))
	require.Error(t, err)
}

func TestReadRejectsTooFewColumns(t *testing.T) {
	_, err := Read(strings.NewReader("0.01\n"))
	require.Error(t, err)
}

func TestReadRejectsNoRows(t *testing.T) {
	_, err := Read(strings.NewReader("# only a comment\n"))
	require.Error(t, err)
}

func TestReadZeroIntensityFallsBackToSigmaOne(t *testing.T) {
	ds, err := Read(strings.NewReader("0.01 0\n"))
	require.NoError(t, err)
	assert.InDelta(t, 1.0, ds.Sigma[0], 1e-9)
}
