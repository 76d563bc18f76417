// Package logging builds the process logger and component-scoped children.
package logging

import (
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// New creates the base logger for the process.
func New(level string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
	})
	parsed, err := log.ParseLevel(level)
	if err != nil {
		parsed = log.InfoLevel
	}
	logger.SetLevel(parsed)
	return logger
}

// ForComponent returns a child logger tagged with the component name.
func ForComponent(base *log.Logger, component string) *log.Logger {
	return base.With("component", component)
}
