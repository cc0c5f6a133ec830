package ai

import "sync/atomic"

// decisionTrace switches on per-tick decision logs: behavior changes,
// attack outcomes, patrol picks and movement no-ops. Agents and the
// scheduler emit them many times per second per agent, so every call site
// checks the flag before building slog attributes.
var decisionTrace atomic.Bool

// EnableDebugLogging turns decision tracing on or off.
// The arena CLI sets it from the configured log level.
func EnableDebugLogging(enabled bool) {
	decisionTrace.Store(enabled)
}

// IsDebugEnabled reports whether decision tracing is on.
func IsDebugEnabled() bool {
	return decisionTrace.Load()
}
