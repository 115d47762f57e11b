// Package ui implements the terminal-facing pieces of npk: the interactive
// confirmation prompt, the preflight report, and the live progress display.
package ui

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
)

// HuhConfirmer collects a yes/no acknowledgment with an interactive form.
// It implements preflight.Confirmer.
type HuhConfirmer struct{}

// Confirm shows the prompt and returns the operator's answer. When stdin is
// not a terminal there is nobody to ask; the answer is a refusal, matching
// the rule that anything other than an explicit yes means no.
func (HuhConfirmer) Confirm(ctx context.Context, prompt string) (bool, error) {
	if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		return false, fmt.Errorf("confirmation required but stdin is not a terminal")
	}

	var confirmed bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(prompt).
				Affirmative("Deploy").
				Negative("Abort").
				Value(&confirmed),
		),
	)

	if err := form.RunWithContext(ctx); err != nil {
		return false, fmt.Errorf("confirmation prompt failed: %w", err)
	}
	return confirmed, nil
}
