// SPDX-License-Identifier: MPL-2.0

package reconcile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"makectl/internal/config"
	"makectl/internal/settings"
	"makectl/internal/state"
	"makectl/pkg/buildtool"
)

type countingReparser struct {
	calls int
}

func (r *countingReparser) RequestReparse(context.Context) { r.calls++ }

type fixture struct {
	root       string
	session    *state.Session
	settings   *settings.Store
	configs    *config.Store
	reparser   *countingReparser
	controller *Controller
	extLogs    []string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	root := t.TempDir()

	configs := config.NewStore(root, nil)
	sets := settings.NewStore(root, nil)
	session := state.NewSession(state.Config{
		ProjectRoot:    root,
		Configurations: configs,
		Settings:       sets,
	})
	if err := session.Activate(); err != nil {
		t.Fatalf("Activate: %v", err)
	}

	f := &fixture{
		root:     root,
		session:  session,
		settings: sets,
		configs:  configs,
		reparser: &countingReparser{},
	}
	f.controller = New(Config{
		Session:        session,
		Settings:       sets,
		Configurations: configs,
		Reparser:       f.reparser,
		OnExtensionLog: func(p string) { f.extLogs = append(f.extLogs, p) },
	})
	return f
}

// setExternally writes a settings key the way an outside editor would: the
// store content changes but the guard is not held.
func (f *fixture) setExternally(t *testing.T, key, value string) {
	t.Helper()
	if err := f.settings.Set(key, value); err != nil {
		t.Fatalf("Set %s: %v", key, err)
	}
}

func TestExtensionLogChangeDoesNotReparse(t *testing.T) {
	f := newFixture(t)

	f.setExternally(t, settings.KeyExtensionLog, "logs/ext.log")
	f.controller.HandleSettingsChange(context.Background())

	if f.reparser.calls != 0 {
		t.Errorf("reparse calls = %d, want 0", f.reparser.calls)
	}
	if len(f.extLogs) != 1 || f.extLogs[0] != "logs/ext.log" {
		t.Errorf("extension log callbacks = %v", f.extLogs)
	}
}

func TestBuildTargetChangeReparses(t *testing.T) {
	f := newFixture(t)

	f.setExternally(t, settings.KeyBuildTarget, "install")
	f.controller.HandleSettingsChange(context.Background())

	if f.reparser.calls != 1 {
		t.Errorf("reparse calls = %d, want 1", f.reparser.calls)
	}
	if got := f.session.Target(); got != buildtool.NamedTarget("install") {
		t.Errorf("Target = %v, want install", got)
	}
}

func TestSimultaneousChangesReparseOnce(t *testing.T) {
	f := newFixture(t)

	f.setExternally(t, settings.KeyBuildConfiguration, "Debug")
	f.setExternally(t, settings.KeyBuildTarget, "all")
	f.setExternally(t, settings.KeyMakePath, "/opt/make/bin/")
	f.controller.HandleSettingsChange(context.Background())

	if f.reparser.calls != 1 {
		t.Errorf("reparse calls = %d, want 1", f.reparser.calls)
	}
}

func TestLaunchConfigurationChangeRefreshesOnly(t *testing.T) {
	f := newFixture(t)

	f.setExternally(t, settings.KeyLaunchConfiguration, ">app()")
	f.controller.HandleSettingsChange(context.Background())

	if f.reparser.calls != 0 {
		t.Errorf("reparse calls = %d, want 0", f.reparser.calls)
	}
}

func TestGuardedWriteDoesNotReenter(t *testing.T) {
	f := newFixture(t)

	f.session.Guard().Hold(func() {
		f.setExternally(t, settings.KeyBuildTarget, "clean")
		// The store notification fires while the guard is still held.
		f.controller.HandleSettingsChange(context.Background())
	})

	if f.reparser.calls != 0 {
		t.Errorf("reparse calls = %d, want 0", f.reparser.calls)
	}
	if f.session.Target().IsSet() {
		t.Error("guarded notification must not refresh memory")
	}
}

func TestSelectionMirrorDoesNotReparse(t *testing.T) {
	f := newFixture(t)

	// A user selection mirrors into the store under the guard; the follow-up
	// notification arrives after release but finds nothing changed.
	f.session.SelectTarget(buildtool.NamedTarget("all"))
	f.controller.HandleSettingsChange(context.Background())

	if f.reparser.calls != 0 {
		t.Errorf("reparse calls = %d, want 0", f.reparser.calls)
	}
}

func TestConfigurationsSavedReloadsAndReparses(t *testing.T) {
	f := newFixture(t)
	f.session.SelectConfiguration("Perf")
	f.reparser.calls = 0

	dir := filepath.Join(f.root, config.DirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	content := `[{"name": "Perf", "makeCommand": "gmake", "makeArgs": ["-j16"]}]`
	if err := os.WriteFile(filepath.Join(dir, config.ConfigurationsFileName), []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	f.controller.HandleConfigurationsSaved(context.Background())

	if f.reparser.calls != 1 {
		t.Errorf("reparse calls = %d, want 1", f.reparser.calls)
	}
	if got := f.session.Effective().MakeCommand; got != "gmake" {
		t.Errorf("MakeCommand = %q, want gmake", got)
	}
}

func TestConfigurationsSavedSuppressedByGuard(t *testing.T) {
	f := newFixture(t)

	f.session.Guard().Hold(func() {
		f.controller.HandleConfigurationsSaved(context.Background())
	})

	if f.reparser.calls != 0 {
		t.Errorf("reparse calls = %d, want 0", f.reparser.calls)
	}
}

func TestMalformedConfigurationsSavedStillReparses(t *testing.T) {
	f := newFixture(t)

	dir := filepath.Join(f.root, config.DirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, config.ConfigurationsFileName), []byte("{{"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	f.controller.HandleConfigurationsSaved(context.Background())

	// The reload failure is reported, but downstream still re-derives from
	// the retained set.
	if f.reparser.calls != 1 {
		t.Errorf("reparse calls = %d, want 1", f.reparser.calls)
	}
}
