// Package deploy hands the validated snapshot to the external
// infrastructure-as-code stage. The templating and apply mechanics live in
// that external tool; this package only delivers the settings document and
// reports success or failure.
package deploy

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/PowerPress/npk/internal/preflight"
)

// SettingsFileName is the document name the IaC stage reads.
const SettingsFileName = "npk-settings.json"

// Sink consumes a validated snapshot and provisions infrastructure from it.
type Sink interface {
	Deploy(ctx context.Context, snapshot *preflight.Snapshot) error
}

// ExecSink invokes an external IaC tool with the snapshot written to its
// working directory.
type ExecSink struct {
	// Command is the IaC tool to run, with Args appended.
	Command string
	Args    []string

	// WorkDir is where the settings document is written and the tool is
	// executed. Empty means the current directory.
	WorkDir string

	Stdout io.Writer
	Stderr io.Writer
}

// Deploy writes the snapshot document and runs the IaC tool, streaming its
// output. The tool's exit status decides success.
func (s *ExecSink) Deploy(ctx context.Context, snapshot *preflight.Snapshot) error {
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	path := filepath.Join(s.WorkDir, SettingsFileName)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write settings document: %w", err)
	}

	cmd := exec.CommandContext(ctx, s.Command, s.Args...) // #nosec G204
	cmd.Dir = s.WorkDir
	cmd.Stdout = s.Stdout
	cmd.Stderr = s.Stderr
	cmd.Env = append(os.Environ(), "NPK_SETTINGS="+path)

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("deployment tool %s failed: %w", s.Command, err)
	}
	return nil
}
