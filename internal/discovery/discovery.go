// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"context"
	"fmt"
	"os"
	"slices"

	"makectl/internal/launch"
	"makectl/internal/runner"
	"makectl/pkg/buildtool"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/singleflight"
)

// targetArgPrefix is prepended to the effective args for target discovery:
// a dry-run of the default goal with the rule database printed.
var targetArgPrefix = []string{"all", "--dry-run", "-p"}

// launchArgSuffix is appended after the effective args (and target, when
// set) for launch discovery: every recipe printed regardless of timestamps,
// continuing past errors.
var launchArgSuffix = []string{"--dry-run", "--always-make", "--keep-going", "--print-data-base"}

// Single-flight keys, one per discovery kind.
const (
	flightTargets = "targets"
	flightLaunch  = "launch"
)

// SpawnError reports a discovery spawn that exited abnormally while its
// partial output yielded no results. Callers surface the underlying exit
// code; a failed dry-run with parseable partial output is not an error.
type SpawnError struct {
	ExitCode runner.ExitCode
	Signal   string
	Stderr   string
}

func (e *SpawnError) Error() string {
	if e.Signal != "" {
		return fmt.Sprintf("discovery: build tool terminated by signal %s", e.Signal)
	}
	return fmt.Sprintf("discovery: build tool exited with status %d", e.ExitCode)
}

type (
	// Parser extracts structured results from raw dry-run or build-log
	// text. The stock implementation lives in internal/parser; tests and
	// embedders may substitute their own.
	Parser interface {
		Targets(text string) []string
		LaunchCandidates(text, projectRoot string) []buildtool.LaunchRecord
	}

	// Config wires an Engine.
	Config struct {
		ProjectRoot string
		Runner      runner.Runner
		Parser      Parser
		Logger      *log.Logger
	}

	// Engine drives both discovery kinds. Safe for concurrent use; repeated
	// requests of one kind share a single in-flight operation.
	Engine struct {
		projectRoot string
		runner      runner.Runner
		parser      Parser
		logger      *log.Logger
		flights     singleflight.Group
	}
)

// NewEngine creates an Engine from cfg. Runner and Parser are required.
func NewEngine(cfg Config) *Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Engine{
		projectRoot: cfg.ProjectRoot,
		runner:      cfg.Runner,
		parser:      cfg.Parser,
		logger:      logger,
	}
}

// Targets returns the lexicographically sorted, deduplicated target names
// for the given effective settings.
func (e *Engine) Targets(ctx context.Context, eff buildtool.EffectiveBuildSettings) ([]string, error) {
	v, err, _ := e.flights.Do(flightTargets, func() (any, error) {
		args := append(append([]string(nil), targetArgPrefix...), eff.MakeArgs...)
		text, spawn, err := e.source(ctx, eff, args)
		if err != nil {
			return nil, err
		}

		targets := e.parser.Targets(text)
		slices.Sort(targets)
		targets = slices.Compact(targets)
		if len(targets) == 0 && spawn != nil {
			return nil, spawn
		}
		return targets, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]string), nil
}

// LaunchConfigurations returns the sorted, deduplicated encoded launch
// records for the given effective settings and active target. Deduplication
// happens on the encoded form: two records encoding identically are
// indistinguishable and collapse to one entry.
func (e *Engine) LaunchConfigurations(ctx context.Context, eff buildtool.EffectiveBuildSettings, target buildtool.Target) ([]string, error) {
	v, err, _ := e.flights.Do(flightLaunch, func() (any, error) {
		args := append([]string(nil), eff.MakeArgs...)
		if target.IsSet() {
			args = append(args, target.Name())
		}
		args = append(args, launchArgSuffix...)

		text, spawn, err := e.source(ctx, eff, args)
		if err != nil {
			return nil, err
		}

		records := e.parser.LaunchCandidates(text, e.projectRoot)
		encoded := make([]string, len(records))
		for i, rec := range records {
			encoded[i] = launch.Encode(rec)
		}
		slices.Sort(encoded)
		encoded = slices.Compact(encoded)
		if len(encoded) == 0 && spawn != nil {
			return nil, spawn
		}
		return encoded, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]string), nil
}

// source produces the raw text to parse: the build log when one is
// configured and readable, otherwise the stdout of a dry-run invocation.
// The returned SpawnError is non-nil when the dry-run exited abnormally;
// the caller decides whether the parsed results salvage the failure.
func (e *Engine) source(ctx context.Context, eff buildtool.EffectiveBuildSettings, args []string) (string, *SpawnError, error) {
	if eff.HasBuildLog() {
		data, err := os.ReadFile(eff.BuildLogPath)
		if err == nil {
			e.logger.Debug("parsing build log", "path", eff.BuildLogPath)
			return string(data), nil, nil
		}
		e.logger.Warn("build log not readable, falling back to dry-run",
			"path", eff.BuildLogPath, "err", err)
	}

	e.logger.Debug("spawning build tool for discovery",
		"command", eff.MakeCommand, "args", args, "cwd", e.projectRoot)

	result, err := e.runner.Run(ctx, runner.Spec{
		Command: eff.MakeCommand,
		Args:    args,
		Dir:     e.projectRoot,
	})
	if err != nil {
		return "", nil, fmt.Errorf("discovery: %w", err)
	}

	// Partial output from a failed dry-run is still parsed; the failure
	// only surfaces as a warning carrying the captured stderr.
	if !result.ExitCode.IsSuccess() {
		e.logger.Warn("build tool exited abnormally during discovery",
			"exitCode", result.ExitCode, "signal", result.Signal, "stderr", result.Stderr)
		return result.Stdout, &SpawnError{
			ExitCode: result.ExitCode,
			Signal:   result.Signal,
			Stderr:   result.Stderr,
		}, nil
	}

	return result.Stdout, nil, nil
}
