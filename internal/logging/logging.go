// Package logging constructs the shared logrus logger.
package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Fields aliases logrus.Fields for callers.
type Fields = logrus.Fields

// NewLogger creates a JSON-formatted logger tagged with a service field. The
// level is read from FACET_LOG_LEVEL (default info).
func NewLogger(service string) logrus.FieldLogger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetLevel(logLevel())
	return logger.WithField("service", service)
}

func logLevel() logrus.Level {
	level, err := logrus.ParseLevel(os.Getenv("FACET_LOG_LEVEL"))
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}
