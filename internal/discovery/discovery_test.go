// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"makectl/internal/runner"
	"makectl/pkg/buildtool"
)

type fakeRunner struct {
	mu     sync.Mutex
	calls  int32
	specs  []runner.Spec
	result *runner.Result
	err    error
	// block, when non-nil, is closed by the test to release in-flight runs.
	block chan struct{}
}

func (f *fakeRunner) Run(_ context.Context, spec runner.Spec) (*runner.Result, error) {
	atomic.AddInt32(&f.calls, 1)
	f.mu.Lock()
	f.specs = append(f.specs, spec)
	f.mu.Unlock()
	if f.block != nil {
		<-f.block
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

type fakeParser struct {
	targets    []string
	candidates []buildtool.LaunchRecord
	lastText   string
}

func (f *fakeParser) Targets(text string) []string {
	f.lastText = text
	return slices.Clone(f.targets)
}

func (f *fakeParser) LaunchCandidates(text, _ string) []buildtool.LaunchRecord {
	f.lastText = text
	return slices.Clone(f.candidates)
}

func newTestEngine(r runner.Runner, p Parser) *Engine {
	return NewEngine(Config{ProjectRoot: "/proj", Runner: r, Parser: p})
}

func TestTargets_SortedAndDeduplicated(t *testing.T) {
	r := &fakeRunner{result: &runner.Result{Stdout: "whatever"}}
	p := &fakeParser{targets: []string{"clean", "all", "clean"}}

	got, err := newTestEngine(r, p).Targets(context.Background(), buildtool.EffectiveBuildSettings{MakeCommand: "make"})
	if err != nil {
		t.Fatalf("Targets: %v", err)
	}
	if !slices.Equal(got, []string{"all", "clean"}) {
		t.Errorf("Targets = %v, want [all clean]", got)
	}
}

func TestTargets_SpawnArguments(t *testing.T) {
	r := &fakeRunner{result: &runner.Result{}}
	p := &fakeParser{}

	eff := buildtool.EffectiveBuildSettings{
		MakeCommand: "/usr/bin/gmake",
		MakeArgs:    []string{"-f", "build.mk"},
	}
	if _, err := newTestEngine(r, p).Targets(context.Background(), eff); err != nil {
		t.Fatalf("Targets: %v", err)
	}

	if len(r.specs) != 1 {
		t.Fatalf("expected one spawn, got %d", len(r.specs))
	}
	spec := r.specs[0]
	if spec.Command != "/usr/bin/gmake" {
		t.Errorf("command = %q", spec.Command)
	}
	want := []string{"all", "--dry-run", "-p", "-f", "build.mk"}
	if !slices.Equal(spec.Args, want) {
		t.Errorf("args = %v, want %v", spec.Args, want)
	}
	if spec.Dir != "/proj" {
		t.Errorf("dir = %q, want /proj", spec.Dir)
	}
}

func TestTargets_BuildLogSkipsSpawn(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "build.log")
	if err := os.WriteFile(logPath, []byte("all:\nclean:\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	r := &fakeRunner{result: &runner.Result{Stdout: "should not be used"}}
	p := &fakeParser{targets: []string{"all", "clean"}}

	eff := buildtool.EffectiveBuildSettings{MakeCommand: "make", BuildLogPath: logPath}
	if _, err := newTestEngine(r, p).Targets(context.Background(), eff); err != nil {
		t.Fatalf("Targets: %v", err)
	}

	if atomic.LoadInt32(&r.calls) != 0 {
		t.Error("expected no process spawn when a build log is readable")
	}
	if p.lastText != "all:\nclean:\n" {
		t.Errorf("parser received %q, want build log text", p.lastText)
	}
}

func TestTargets_UnreadableBuildLogFallsBack(t *testing.T) {
	r := &fakeRunner{result: &runner.Result{Stdout: "dry-run text"}}
	p := &fakeParser{}

	eff := buildtool.EffectiveBuildSettings{
		MakeCommand:  "make",
		BuildLogPath: filepath.Join(t.TempDir(), "missing.log"),
	}
	if _, err := newTestEngine(r, p).Targets(context.Background(), eff); err != nil {
		t.Fatalf("Targets: %v", err)
	}

	if atomic.LoadInt32(&r.calls) != 1 {
		t.Error("expected fallback to process spawn")
	}
	if p.lastText != "dry-run text" {
		t.Errorf("parser received %q, want dry-run stdout", p.lastText)
	}
}

func TestTargets_NonZeroExitStillParsed(t *testing.T) {
	r := &fakeRunner{result: &runner.Result{Stdout: "partial", ExitCode: 2, Stderr: "boom"}}
	p := &fakeParser{targets: []string{"all"}}

	got, err := newTestEngine(r, p).Targets(context.Background(), buildtool.EffectiveBuildSettings{MakeCommand: "make"})
	if err != nil {
		t.Fatalf("Targets: %v", err)
	}
	if !slices.Equal(got, []string{"all"}) {
		t.Errorf("Targets = %v, want [all]", got)
	}
	if p.lastText != "partial" {
		t.Errorf("parser received %q, want partial stdout", p.lastText)
	}
}

func TestTargets_AbnormalExitWithoutResultsFails(t *testing.T) {
	r := &fakeRunner{result: &runner.Result{Stdout: "garbage", ExitCode: 2, Stderr: "no makefile"}}
	p := &fakeParser{}

	_, err := newTestEngine(r, p).Targets(context.Background(), buildtool.EffectiveBuildSettings{MakeCommand: "make"})
	var spawnErr *SpawnError
	if !errors.As(err, &spawnErr) {
		t.Fatalf("expected SpawnError, got %v", err)
	}
	if spawnErr.ExitCode != 2 {
		t.Errorf("ExitCode = %d, want 2", spawnErr.ExitCode)
	}
	if spawnErr.Stderr != "no makefile" {
		t.Errorf("Stderr = %q, want captured stderr", spawnErr.Stderr)
	}
}

func TestLaunchConfigurations_AbnormalExitWithoutResultsFails(t *testing.T) {
	r := &fakeRunner{result: &runner.Result{ExitCode: runner.SignalExitCode, Signal: "killed"}}
	p := &fakeParser{}

	_, err := newTestEngine(r, p).LaunchConfigurations(context.Background(), buildtool.EffectiveBuildSettings{MakeCommand: "make"}, buildtool.NoTarget())
	var spawnErr *SpawnError
	if !errors.As(err, &spawnErr) {
		t.Fatalf("expected SpawnError, got %v", err)
	}
	if spawnErr.Signal != "killed" {
		t.Errorf("Signal = %q, want killed", spawnErr.Signal)
	}
}

func TestTargets_InfrastructureErrorPropagates(t *testing.T) {
	r := &fakeRunner{err: errors.New("executable not found")}

	_, err := newTestEngine(r, &fakeParser{}).Targets(context.Background(), buildtool.EffectiveBuildSettings{MakeCommand: "nope"})
	if err == nil {
		t.Fatal("expected error when the spawn itself fails")
	}
}

func TestLaunchConfigurations_ArgsIncludeTarget(t *testing.T) {
	r := &fakeRunner{result: &runner.Result{}}
	p := &fakeParser{}

	eff := buildtool.EffectiveBuildSettings{MakeCommand: "make", MakeArgs: []string{"-j4"}}
	if _, err := newTestEngine(r, p).LaunchConfigurations(context.Background(), eff, buildtool.NamedTarget("app")); err != nil {
		t.Fatalf("LaunchConfigurations: %v", err)
	}

	want := []string{"-j4", "app", "--dry-run", "--always-make", "--keep-going", "--print-data-base"}
	if !slices.Equal(r.specs[0].Args, want) {
		t.Errorf("args = %v, want %v", r.specs[0].Args, want)
	}
}

func TestLaunchConfigurations_NoTargetOmitted(t *testing.T) {
	r := &fakeRunner{result: &runner.Result{}}
	p := &fakeParser{}

	eff := buildtool.EffectiveBuildSettings{MakeCommand: "make"}
	if _, err := newTestEngine(r, p).LaunchConfigurations(context.Background(), eff, buildtool.NoTarget()); err != nil {
		t.Fatalf("LaunchConfigurations: %v", err)
	}

	want := []string{"--dry-run", "--always-make", "--keep-going", "--print-data-base"}
	if !slices.Equal(r.specs[0].Args, want) {
		t.Errorf("args = %v, want %v", r.specs[0].Args, want)
	}
}

func TestLaunchConfigurations_DedupOnEncodedForm(t *testing.T) {
	rec := buildtool.LaunchRecord{Binary: "/proj/app", Cwd: "/proj", Args: []string{"-v"}}
	r := &fakeRunner{result: &runner.Result{}}
	p := &fakeParser{candidates: []buildtool.LaunchRecord{rec, rec}}

	got, err := newTestEngine(r, p).LaunchConfigurations(context.Background(), buildtool.EffectiveBuildSettings{MakeCommand: "make"}, buildtool.NoTarget())
	if err != nil {
		t.Fatalf("LaunchConfigurations: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("expected identical records to collapse, got %v", got)
	}
}

func TestTargets_SingleFlight(t *testing.T) {
	r := &fakeRunner{result: &runner.Result{}, block: make(chan struct{})}
	p := &fakeParser{targets: []string{"all"}}
	engine := newTestEngine(r, p)

	eff := buildtool.EffectiveBuildSettings{MakeCommand: "make"}

	var wg sync.WaitGroup
	results := make([][]string, 2)
	request := func(i int) {
		defer wg.Done()
		got, err := engine.Targets(context.Background(), eff)
		if err != nil {
			t.Errorf("Targets: %v", err)
			return
		}
		results[i] = got
	}

	wg.Add(1)
	go request(0)
	// Wait until the first request is blocked inside the runner, then issue
	// the second so it joins the in-progress flight.
	for atomic.LoadInt32(&r.calls) == 0 {
		runtime.Gosched()
	}
	wg.Add(1)
	go request(1)
	time.Sleep(50 * time.Millisecond)
	close(r.block)
	wg.Wait()

	if got := atomic.LoadInt32(&r.calls); got != 1 {
		t.Errorf("expected a single spawn across concurrent requests, got %d", got)
	}
	for i, res := range results {
		if !slices.Equal(res, []string{"all"}) {
			t.Errorf("result %d = %v, want [all]", i, res)
		}
	}
}
