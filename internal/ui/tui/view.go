package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	doneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#22c55e"))
	activeStyle = lipgloss.NewStyle().Bold(true)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7280"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#eab308"))
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ef4444"))
)

var spinnerFrames = []string{"|", "/", "-", "\\"}

func renderView(m Model) string {
	var b strings.Builder

	b.WriteString(activeStyle.Render("npk preflight"))
	b.WriteString("\n\n")

	for _, step := range m.Steps {
		switch {
		case step.Done:
			fmt.Fprintf(&b, " %s %s\n", doneStyle.Render("[ok]"), step.Name)
		case step.Active && m.Err == nil && !m.Done:
			frame := spinnerFrames[m.SpinnerFrame%len(spinnerFrames)]
			fmt.Fprintf(&b, " [%s]  %s\n", frame, activeStyle.Render(step.Name))
		default:
			fmt.Fprintf(&b, " %s %s\n", dimStyle.Render("[  ]"), dimStyle.Render(step.Name))
		}
	}

	for _, warning := range m.Warnings {
		fmt.Fprintf(&b, "\n %s %s", warnStyle.Render("!"), warning)
	}
	if len(m.Warnings) > 0 {
		b.WriteString("\n")
	}

	if m.Err != nil {
		fmt.Fprintf(&b, "\n%s %v\n", failStyle.Render("preflight failed:"), m.Err)
	} else if m.Done {
		fmt.Fprintf(&b, "\n%s\n", doneStyle.Render("preflight complete"))
	} else {
		b.WriteString(dimStyle.Render("\npress q to abort\n"))
	}

	return b.String()
}
