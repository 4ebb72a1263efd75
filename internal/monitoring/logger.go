// Package monitoring holds the diagnostic logger shared by library packages.
package monitoring

import "log"

// Logf is the package-level diagnostic logger used by the sampling and storage
// packages. It defaults to log.Printf; binaries may redirect it and tests may
// mute it with SetLogger(nil).
var Logf func(format string, v ...interface{}) = log.Printf

// SetLogger replaces the package logger. Passing nil installs a no-op logger.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}

// Advisoryf logs a non-fatal condition with the [advisory] prefix so that
// operators can grep for sampling approximations separately from errors.
func Advisoryf(format string, v ...interface{}) {
	Logf("[advisory] "+format, v...)
}
