// Package logging provides the process-wide structured logger: a single
// zap-backed logger reached for as a package-level convenience
// (logging.Debugw, logging.Errorw, ...). Callers attach context as
// key/value pairs on each call (e.g. the subscription engine passes
// topicId/subscriberId); the package has no per-component constructor.
package logging

import (
	"go.uber.org/zap"
)

var std = mustBuild()

func mustBuild() *zap.SugaredLogger {
	cfg := zap.NewProductionConfig()
	cfg.DisableStacktrace = true
	l, err := cfg.Build()
	if err != nil {
		// Fall back to a no-op logger rather than panic at import time;
		// a broken logging pipeline must never take down the process.
		return zap.NewNop().Sugar()
	}
	return l.Sugar()
}

// Default returns the process-wide sugared logger.
func Default() *zap.SugaredLogger { return std }

// SetDefault swaps the process-wide logger for l.
func SetDefault(l *zap.SugaredLogger) { std = l }

func Debugw(msg string, kv ...interface{}) { std.Debugw(msg, kv...) }
func Infow(msg string, kv ...interface{})  { std.Infow(msg, kv...) }
func Warnw(msg string, kv ...interface{})  { std.Warnw(msg, kv...) }
func Errorw(msg string, kv ...interface{}) { std.Errorw(msg, kv...) }
