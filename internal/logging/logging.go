// Package logging provides the shared logrus setup used across the fitting
// pipeline: colored warnings to stderr during interactive runs, and a
// fatal-exit helper for unrecoverable setup errors (spec.md §7's "ambient
// stack" — error reporting is in scope even where the Non-goals exclude a
// full CLI UX).
//
// Grounded on arx-os-arxos/services/tile-server/cmd/server/main.go's
// logrus.New()+WithFields idiom (cited in DESIGN.md's dependency ledger).
package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

// New returns a logger configured for interactive CLI use: colored text
// output to stderr, timestamps enabled.
func New() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return l
}

// Fatal logs msg with fields at error level and exits with a non-zero status
// (spec.md §6: "exit code 0 on success, non-zero otherwise").
func Fatal(l *logrus.Logger, msg string, fields logrus.Fields) {
	l.WithFields(fields).Error(msg)
	os.Exit(1)
}
