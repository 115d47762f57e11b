package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/PowerPress/npk/internal/preflight"
)

// Step is one displayed pipeline step.
type Step struct {
	Name string
	// Reached is the gate state at which this step counts as done.
	Reached preflight.State
	Done    bool
	Active  bool
}

// Model is the Bubble Tea model for the preflight progress display.
type Model struct {
	Steps    []Step
	Warnings []string

	SpinnerFrame int
	Err          error
	Done         bool
}

// NewPreflightModel creates the model with the pipeline's step sequence.
func NewPreflightModel() Model {
	return Model{
		Steps: []Step{
			{Name: "Validate settings", Reached: preflight.StateSettingsValidated},
			{Name: "Enumerate regions", Reached: preflight.StateRegionsEnumerated},
			{Name: "Survey spot quotas", Reached: preflight.StateQuotasAggregated},
			{Name: "Check quota thresholds", Reached: preflight.StateQuotaThresholdPassed},
			{Name: "Survey availability zones", Reached: preflight.StateZonesAggregated},
			{Name: "Check spot service role", Reached: preflight.StateRoleChecked},
			{Name: "Resolve DNS zone", Reached: preflight.StateDNSChecked},
		},
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.Err = context.Canceled
			return m, tea.Quit
		}

	case StateMsg:
		m.applyState(msg.State)

	case WarnMsg:
		m.Warnings = append(m.Warnings, msg.Text)

	case TickMsg:
		m.SpinnerFrame++
		return m, tickCmd()

	case ErrMsg:
		m.Err = msg.Err
		return m, tea.Quit

	case DoneMsg:
		m.Done = true
		m.applyState(preflight.StateSnapshotReady)
		return m, tea.Quit
	}

	return m, nil
}

// applyState marks every step whose state has been reached as done and the
// first unfinished step as active.
func (m *Model) applyState(state preflight.State) {
	reached := true
	for i := range m.Steps {
		if reached {
			m.Steps[i].Done = true
			m.Steps[i].Active = false
		} else {
			m.Steps[i].Done = false
		}
		if m.Steps[i].Reached == state {
			reached = false
		}
	}
	// If the reported state precedes every step, nothing is done yet.
	if state == preflight.StateInit {
		for i := range m.Steps {
			m.Steps[i].Done = false
		}
	}
	for i := range m.Steps {
		if !m.Steps[i].Done {
			m.Steps[i].Active = true
			break
		}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(120*time.Millisecond, func(time.Time) tea.Msg {
		return TickMsg{}
	})
}

// View implements tea.Model.
func (m Model) View() string {
	return renderView(m)
}
