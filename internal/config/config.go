package config

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Verbose enables debug output when true
var Verbose bool

var logger = newLogger(os.Stderr)

func newLogger(out io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(out)
	l.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp:       true,
		DisableLevelTruncation: true,
	})
	l.SetLevel(logrus.InfoLevel)
	return l
}

// SetVerbose toggles debug output for the package-level logger.
func SetVerbose(v bool) {
	Verbose = v
	if v {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}
}

// SetLogOutput redirects diagnostics, which go to stderr by default.
func SetLogOutput(w io.Writer) {
	logger.SetOutput(w)
}

// Debugf prints debug messages when Verbose is true
func Debugf(format string, args ...any) {
	logger.Debugf(format, args...)
}

// Warnf reports a recoverable problem. Warnings are always printed.
func Warnf(format string, args ...any) {
	logger.Warnf(format, args...)
}
