// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"makectl/internal/config"
	"makectl/internal/discovery"
	"makectl/internal/issue"
	"makectl/internal/parser"
	"makectl/internal/runner"
	"makectl/internal/settings"
	"makectl/internal/state"
	"makectl/internal/status"
)

// App wires the CLI services and shared dependencies. It is the composition
// root for the CLI layer; all Cobra handlers receive an App reference.
type App struct {
	ProjectRoot    string
	Logger         *log.Logger
	Configurations *config.Store
	Settings       *settings.Store
	Session        *state.Session
	Status         *status.Line
	Discovery      *discovery.Engine

	stdout  io.Writer
	stderr  io.Writer
	logFile *os.File
}

// Dependencies defines the injection points for building an App. Nil fields
// are replaced with production defaults by NewApp.
type Dependencies struct {
	ProjectRoot string
	Verbose     bool
	Stdout      io.Writer
	Stderr      io.Writer
	Runner      runner.Runner
	Parser      discovery.Parser
}

// NewApp creates an App rooted at deps.ProjectRoot and activates its
// session. A malformed configurations file is reported on stderr but does
// not prevent startup.
func NewApp(deps Dependencies) (*App, error) {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Runner == nil {
		deps.Runner = runner.New()
	}
	if deps.Parser == nil {
		deps.Parser = parser.New()
	}

	root, err := filepath.Abs(deps.ProjectRoot)
	if err != nil {
		return nil, fmt.Errorf("resolve project root: %w", err)
	}

	logger := log.NewWithOptions(deps.Stderr, log.Options{
		ReportTimestamp: false,
	})
	if deps.Verbose {
		logger.SetLevel(log.DebugLevel)
	}

	configurations := config.NewStore(root, logger)
	sets := settings.NewStore(root, logger)
	line := status.NewLine()
	session := state.NewSession(state.Config{
		ProjectRoot:    root,
		Configurations: configurations,
		Settings:       sets,
		Display:        line,
		Logger:         logger,
	})

	app := &App{
		ProjectRoot:    root,
		Logger:         logger,
		Configurations: configurations,
		Settings:       sets,
		Session:        session,
		Status:         line,
		Discovery: discovery.NewEngine(discovery.Config{
			ProjectRoot: root,
			Runner:      deps.Runner,
			Parser:      deps.Parser,
			Logger:      logger,
		}),
		stdout: deps.Stdout,
		stderr: deps.Stderr,
	}

	if err := session.Activate(); err != nil {
		fmt.Fprintln(app.stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, deps.Verbose))
		renderIssue(app.stderr, issue.ConfigurationsParseErrorId)
	}
	app.ApplyExtensionLog(session.ExtensionLog())

	return app, nil
}

// ApplyExtensionLog redirects the logger to the given file, creating it if
// needed. Relative paths resolve against the project root; an empty path
// restores stderr output.
func (a *App) ApplyExtensionLog(logPath string) {
	if logPath == "" {
		a.Logger.SetOutput(a.stderr)
		a.closeLogFile()
		return
	}

	if !filepath.IsAbs(logPath) {
		logPath = filepath.Join(a.ProjectRoot, logPath)
	}
	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		a.Logger.Warn("cannot create log directory", "path", logPath, "err", err)
		return
	}
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		a.Logger.Warn("cannot open log file", "path", logPath, "err", err)
		return
	}

	a.Logger.SetOutput(f)
	a.closeLogFile()
	a.logFile = f
}

// Close releases resources held by the App.
func (a *App) Close() {
	a.Logger.SetOutput(a.stderr)
	a.closeLogFile()
}

func (a *App) closeLogFile() {
	if a.logFile != nil {
		if err := a.logFile.Close(); err != nil {
			fmt.Fprintf(a.stderr, "close log file: %v\n", err)
		}
		a.logFile = nil
	}
}

// formatErrorForDisplay formats an error for user display. ActionableErrors
// use their Format method; verbose mode shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}

// renderIssue writes the catalog entry's help text, if one exists for id.
func renderIssue(w io.Writer, id issue.Id) {
	entry := issue.Get(id)
	if entry == nil {
		return
	}
	rendered, err := entry.Render("dark")
	if err != nil {
		return
	}
	fmt.Fprint(w, rendered)
}
