// Package tui provides a Bubble Tea progress display for the preflight
// pipeline.
package tui

import "github.com/PowerPress/npk/internal/preflight"

// StateMsg carries the gate's current pipeline state.
type StateMsg struct {
	State preflight.State
}

// WarnMsg carries a warning emitted while probing.
type WarnMsg struct {
	Text string
}

// TickMsg is sent periodically to animate the spinner.
type TickMsg struct{}

// ErrMsg carries a fatal pipeline error.
type ErrMsg struct{ Err error }

// DoneMsg signals that the pipeline completed successfully.
type DoneMsg struct{}
