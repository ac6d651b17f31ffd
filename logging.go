package drake

import (
	"os"

	"github.com/charmbracelet/log"
)

// Package-level logger. Every recoverable failure in the engine — calls
// against a shut-down engine, resource load failures, shader compile errors —
// is reported here instead of surfacing an error to the caller.
//
// Lazy singleton without sync.Once: drake is single-threaded.
var logger *log.Logger

func getLogger() *log.Logger {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "drake",
		})
		logger.SetLevel(log.WarnLevel)
	}
	return logger
}

// SetLogLevel adjusts the engine log level. By default only warnings and
// errors are reported.
func SetLogLevel(level log.Level) {
	getLogger().SetLevel(level)
}

// SetDebugMode toggles debug-level logging, which includes per-frame draw
// stats.
func SetDebugMode(enabled bool) {
	if enabled {
		getLogger().SetLevel(log.DebugLevel)
		return
	}
	getLogger().SetLevel(log.WarnLevel)
}

func logWarn(msg string, args ...any) {
	getLogger().Warn(msg, args...)
}

func logError(msg string, args ...any) {
	getLogger().Error(msg, args...)
}

func logDebug(msg string, args ...any) {
	getLogger().Debug(msg, args...)
}
