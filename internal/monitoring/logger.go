// Package monitoring holds the engine's diagnostic logging hook.
package monitoring

import "log"

// Logf is the package-level diagnostic logger used for snapshot swaps, cache
// backend failures, and poller retries. It defaults to log.Printf.
var Logf func(format string, v ...interface{}) = log.Printf

// SetLogger replaces the package logger. Passing nil installs a no-op logger,
// which quiets tests.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}
