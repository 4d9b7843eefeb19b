// SPDX-License-Identifier: MPL-2.0

package runner

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"
)

// readChunkSize is the buffer size for incremental stream reads. Chunks
// delivered to observers are at most this large; they carry no line or
// message framing.
const readChunkSize = 4096

type (
	// Spec describes one build-tool invocation.
	Spec struct {
		// Command is the resolved tool path or bare command name.
		Command string
		// Args are passed verbatim, in order.
		Args []string
		// Dir is the working directory; empty means the process inherits ours.
		Dir string
		// OnStdout, when non-nil, receives each stdout chunk in delivery
		// order before Run returns. Same for OnStderr on the other stream.
		OnStdout func(chunk string)
		OnStderr func(chunk string)
	}

	// Result is the completion outcome of a Run. Stdout and Stderr hold the
	// full accumulated streams even when the process failed.
	Result struct {
		Stdout   string
		Stderr   string
		ExitCode ExitCode
		// Signal is the terminating signal name (e.g. "killed") when the
		// process did not exit on its own; empty otherwise.
		Signal string
	}

	// Runner executes build-tool invocations. An interface so tests and the
	// discovery pipeline can substitute canned output.
	Runner interface {
		Run(ctx context.Context, spec Spec) (*Result, error)
	}

	execRunner struct{}
)

// New creates a Runner backed by os/exec.
func New() Runner {
	return &execRunner{}
}

// Run starts the process and blocks until it completes, streaming both pipes
// through the Spec observers. A non-zero exit or signal termination is not an
// error: the Result carries the exit status and whatever output was captured.
// Only infrastructure failures (pipe setup, process start) return an error.
func (r *execRunner) Run(ctx context.Context, spec Spec) (*Result, error) {
	if spec.Command == "" {
		return nil, fmt.Errorf("runner: empty command")
	}

	cmd := exec.CommandContext(ctx, spec.Command, spec.Args...)
	if spec.Dir != "" {
		cmd.Dir = spec.Dir
	}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("runner: stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("runner: stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("runner: start %q: %w", spec.Command, err)
	}

	var (
		wg         sync.WaitGroup
		outBuilder strings.Builder
		errBuilder strings.Builder
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		drain(stdout, &outBuilder, spec.OnStdout)
	}()
	go func() {
		defer wg.Done()
		drain(stderr, &errBuilder, spec.OnStderr)
	}()

	// Pipes must be fully drained before Wait closes them.
	wg.Wait()

	result := &Result{
		Stdout: outBuilder.String(),
		Stderr: errBuilder.String(),
	}

	if waitErr := cmd.Wait(); waitErr != nil {
		exitErr, ok := waitErr.(*exec.ExitError)
		if !ok {
			return nil, fmt.Errorf("runner: wait for %q: %w", spec.Command, waitErr)
		}
		code := exitErr.ExitCode()
		if code == -1 {
			// Terminated by a signal; ProcessState renders "signal: <name>".
			result.ExitCode = SignalExitCode
			result.Signal = strings.TrimPrefix(exitErr.ProcessState.String(), "signal: ")
		} else {
			result.ExitCode = ExitCode(code)
		}
	}

	return result, nil
}

// drain copies r into sink chunk by chunk, invoking observe per chunk.
// Read errors end the stream; the pipe close on process exit arrives as io.EOF.
func drain(r io.Reader, sink *strings.Builder, observe func(string)) {
	buf := make([]byte, readChunkSize)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			chunk := string(buf[:n])
			sink.WriteString(chunk)
			if observe != nil {
				observe(chunk)
			}
		}
		if err != nil {
			return
		}
	}
}
