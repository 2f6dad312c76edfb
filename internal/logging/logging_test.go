package logging

import (
	"os"
	"os/exec"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfiguresStderrAndTimestamps(t *testing.T) {
	l := New()
	assert.Equal(t, os.Stderr, l.Out)
	tf, ok := l.Formatter.(*logrus.TextFormatter)
	require.True(t, ok)
	assert.True(t, tf.FullTimestamp)
}

// TestFatalExitsNonZero runs Fatal in a subprocess, since it calls os.Exit
// directly and would otherwise kill the test binary.
func TestFatalExitsNonZero(t *testing.T) {
	if os.Getenv("LOGGING_FATAL_SUBPROCESS") == "1" {
		Fatal(New(), "boom", nil)
		return
	}
	cmd := exec.Command(os.Args[0], "-test.run=TestFatalExitsNonZero")
	cmd.Env = append(os.Environ(), "LOGGING_FATAL_SUBPROCESS=1")
	err := cmd.Run()
	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.False(t, exitErr.Success())
}
