// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"makectl/internal/discovery"
)

func TestAsExitErrorConvertsSpawnFailure(t *testing.T) {
	spawn := &discovery.SpawnError{ExitCode: 2, Stderr: "no makefile"}
	err := asExitError(fmt.Errorf("listing targets: %w", spawn))

	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected ExitError, got %v", err)
	}
	if exitErr.Code != 2 {
		t.Errorf("Code = %d, want 2", exitErr.Code)
	}
	if !errors.As(exitErr, &spawn) {
		t.Error("ExitError should unwrap to the spawn failure")
	}
}

func TestAsExitErrorPassesOtherErrorsThrough(t *testing.T) {
	plain := errors.New("permission denied")
	if got := asExitError(plain); got != plain {
		t.Errorf("asExitError(plain) = %v, want the error unchanged", got)
	}
}

func TestTargetListPropagatesToolExitCode(t *testing.T) {
	root := t.TempDir()
	writeConfigurations(t, root, `[{"name": "Default", "makeCommand": "false"}]`)

	var stdout, stderr bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{"--project", root, "target", "list"})

	err := cmd.Execute()
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected ExitError, got %v", err)
	}
	if exitErr.Code != 1 {
		t.Errorf("Code = %d, want the tool's exit status 1", exitErr.Code)
	}
}
