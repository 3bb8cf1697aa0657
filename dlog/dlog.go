// Package dlog is the runtime's debug channel: cycle diagnostics,
// unknown-record resolution, and enum-parse misses are all reported here
// rather than surfaced as errors. It wraps zap the way a typical internal
// log layer wraps a structured logger, but keeps the surface minimal
// since this package has no use for log levels, sinks, or rotation.
package dlog

import (
	"sync"

	"go.uber.org/zap"
)

var (
	once   sync.Once
	logger *zap.SugaredLogger
)

// L returns the package-level debug logger, building a sensible
// development default on first use. Call SetLogger to install a
// caller-configured logger (e.g. from cmd/dcoredump) before any database
// or runtime calls are made.
func L() *zap.SugaredLogger {
	once.Do(func() {
		if logger == nil {
			base, err := zap.NewDevelopment()
			if err != nil {
				base = zap.NewNop()
			}
			logger = base.Sugar()
		}
	})
	return logger
}

// SetLogger installs l as the package-level debug logger. It must be
// called, if at all, before the first call to L.
func SetLogger(l *zap.SugaredLogger) {
	logger = l
}
