package preflight

import "log"

// Observer receives progress and warning output from the pipeline. The gate
// never writes to the terminal directly.
type Observer interface {
	// Printf logs a progress message.
	Printf(format string, args ...interface{})

	// Warnf logs a non-fatal condition. Warnings are also recorded in the
	// snapshot by the gate.
	Warnf(format string, args ...interface{})
}

// ConsoleObserver implements Observer using the standard log package.
type ConsoleObserver struct{}

// Printf logs a progress message.
func (ConsoleObserver) Printf(format string, args ...interface{}) {
	log.Printf(format, args...)
}

// Warnf logs a warning message.
func (ConsoleObserver) Warnf(format string, args ...interface{}) {
	log.Printf("WARNING: "+format, args...)
}

// NopObserver discards all output. Used in tests.
type NopObserver struct{}

// Printf discards the message.
func (NopObserver) Printf(string, ...interface{}) {}

// Warnf discards the message.
func (NopObserver) Warnf(string, ...interface{}) {}
