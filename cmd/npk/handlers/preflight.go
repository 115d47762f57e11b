package handlers

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"github.com/PowerPress/npk/internal/awsapi"
	"github.com/PowerPress/npk/internal/cache"
	"github.com/PowerPress/npk/internal/config"
	"github.com/PowerPress/npk/internal/preflight"
	"github.com/PowerPress/npk/internal/ui"
	"github.com/PowerPress/npk/internal/ui/tui"
)

// PreflightOptions carries the preflight command's flags.
type PreflightOptions struct {
	SettingsPath string
	NoCache      bool
	CachePath    string
	Plain        bool
}

// DefaultCachePath returns where probe results are cached between runs.
func DefaultCachePath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ".npk-probes.json"
	}
	return filepath.Join(dir, "npk", "probes.json")
}

// Preflight validates account capability and prints the resulting report.
// It returns the snapshot so the deploy handler can reuse it.
func Preflight(ctx context.Context, opts PreflightOptions) (*preflight.Snapshot, error) {
	raw, err := os.ReadFile(opts.SettingsPath) // #nosec G304
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	// Validate before anything else so a typo never reaches the network.
	settings, err := config.Parse(raw)
	if err != nil {
		return nil, err
	}

	catalog, err := config.LoadCatalog()
	if err != nil {
		return nil, err
	}

	api, err := awsapi.NewRealClient(ctx, settings.AWSProfile, settings.PrimaryRegion)
	if err != nil {
		return nil, err
	}

	var probeCache preflight.ProbeCache
	if !opts.NoCache {
		probeCache = cache.Open(opts.CachePath, 0)
	}

	var snapshot *preflight.Snapshot
	if interactive(opts.Plain) {
		snapshot, err = runWithProgress(ctx, api, catalog, probeCache, raw)
	} else {
		gate := preflight.NewGate(api, catalog, ui.HuhConfirmer{}, probeCache, preflight.ConsoleObserver{})
		snapshot, err = gate.Run(ctx, raw)
	}
	if err != nil {
		return nil, err
	}

	fmt.Println(ui.RenderReport(snapshot))
	return snapshot, nil
}

func interactive(plain bool) bool {
	return !plain && isatty.IsTerminal(os.Stdout.Fd()) && isatty.IsTerminal(os.Stdin.Fd())
}

// runWithProgress drives the gate under the live progress display. The gate
// runs in its own goroutine; its state is polled into the TUI, and the
// confirmation prompt temporarily takes the terminal back from Bubble Tea.
func runWithProgress(ctx context.Context, api awsapi.CloudAPI, catalog *config.Catalog, probeCache preflight.ProbeCache, raw []byte) (*preflight.Snapshot, error) {
	program := tea.NewProgram(tui.NewPreflightModel())

	gate := preflight.NewGate(api, catalog,
		&programConfirmer{program: program},
		probeCache,
		&programObserver{program: program})

	var snapshot *preflight.Snapshot
	var runErr error
	done := make(chan struct{})

	go func() {
		defer close(done)
		snapshot, runErr = gate.Run(ctx, raw)
	}()

	go func() {
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				if runErr != nil {
					program.Send(tui.ErrMsg{Err: runErr})
				} else {
					program.Send(tui.DoneMsg{})
				}
				return
			case <-ticker.C:
				program.Send(tui.StateMsg{State: gate.State()})
			}
		}
	}()

	final, err := program.Run()
	if err != nil {
		return nil, fmt.Errorf("progress display failed: %w", err)
	}
	<-done

	if runErr != nil {
		return nil, runErr
	}
	if m, ok := final.(tui.Model); ok && m.Err != nil {
		return nil, fmt.Errorf("preflight aborted")
	}
	return snapshot, nil
}

// programObserver forwards pipeline warnings into the TUI. Progress
// messages are dropped; the step display already covers them.
type programObserver struct {
	program *tea.Program
}

func (o *programObserver) Printf(string, ...interface{}) {}

func (o *programObserver) Warnf(format string, args ...interface{}) {
	o.program.Send(tui.WarnMsg{Text: fmt.Sprintf(format, args...)})
}

// programConfirmer hands the terminal back to the confirmation form while
// the TUI is running.
type programConfirmer struct {
	program *tea.Program
}

func (c *programConfirmer) Confirm(ctx context.Context, prompt string) (bool, error) {
	if err := c.program.ReleaseTerminal(); err != nil {
		return false, err
	}
	defer func() { _ = c.program.RestoreTerminal() }()
	return ui.HuhConfirmer{}.Confirm(ctx, prompt)
}
