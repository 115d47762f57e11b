package deploy

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PowerPress/npk/internal/preflight"
)

func TestExecSink_WritesSettingsAndRunsTool(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer
	sink := &ExecSink{
		Command: "sh",
		Args:    []string{"-c", `cat "$NPK_SETTINGS"`},
		WorkDir: dir,
		Stdout:  &out,
		Stderr:  os.Stderr,
	}

	snapshot := &preflight.Snapshot{
		MaxQuota:       8,
		SpotRoleExists: true,
		Quotas:         map[string]map[string]float64{"us-east-1": {"L-3819A6DF": 8}},
	}

	require.NoError(t, sink.Deploy(context.Background(), snapshot))

	// The tool saw the same document that was written.
	var seen preflight.Snapshot
	require.NoError(t, json.Unmarshal(out.Bytes(), &seen))
	assert.Equal(t, snapshot.MaxQuota, seen.MaxQuota)

	written, err := os.ReadFile(filepath.Join(dir, SettingsFileName))
	require.NoError(t, err)
	assert.JSONEq(t, out.String(), string(written))
}

func TestExecSink_ToolFailureSurfaces(t *testing.T) {
	sink := &ExecSink{
		Command: "sh",
		Args:    []string{"-c", "exit 3"},
		WorkDir: t.TempDir(),
	}

	err := sink.Deploy(context.Background(), &preflight.Snapshot{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "deployment tool sh failed")
}
