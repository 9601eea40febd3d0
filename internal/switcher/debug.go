// Package switcher stages and commits a layout plan and drives a full preset switch.
package switcher

import (
	"log"
	"sync/atomic"
)

// debugLog controls whether verbose step logs are emitted.
var debugLog atomic.Bool

// SetDebugLogging enables/disables verbose switch logs.
func SetDebugLogging(enabled bool) {
	debugLog.Store(enabled)
}

// debugf logs a debug line when debug logging is enabled.
func debugf(format string, args ...any) {
	if debugLog.Load() {
		log.Printf("debug: "+format, args...)
	}
}
