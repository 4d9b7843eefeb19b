// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// appContext carries the persistent flag values and the App built from them
// once the root command's PersistentPreRunE has run.
type appContext struct {
	verbose     bool
	projectRoot string
	app         *App
}

// App returns the composition root. Valid only inside Run/RunE handlers.
func (c *appContext) App() *App {
	return c.app
}

// NewRootCommand builds the full makectl command tree.
func NewRootCommand() *cobra.Command {
	ctx := &appContext{}

	rootCmd := &cobra.Command{
		Use:   "makectl",
		Short: "Resolve and drive make-family build state",
		Long: TitleStyle.Render("makectl") + SubtitleStyle.Render(" - build driver state for make-family tools") + `

makectl resolves which make command, arguments and build log are in
effect for a project, layering the project's configurations file
(.makectl/configurations.json), the persistent settings store
(.makectl/settings.toml) and the current in-session selection.

Targets and launchable binaries are discovered from a captured build
log when one is configured, falling back to a live dry-run of the
build tool.

` + SubtitleStyle.Render("Quick Start:") + `
  1. Run 'makectl config init' to create the settings file
  2. Describe configurations in .makectl/configurations.json
  3. Inspect the outcome with 'makectl resolve'

` + SubtitleStyle.Render("Examples:") + `
  makectl resolve                 Show the effective build settings
  makectl configuration select    Pick the active configuration
  makectl target list             List discovered targets
  makectl watch                   Reconcile against on-disk edits`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			app, err := NewApp(Dependencies{
				ProjectRoot: ctx.projectRoot,
				Verbose:     ctx.verbose,
				Stdout:      cmd.OutOrStdout(),
				Stderr:      cmd.ErrOrStderr(),
			})
			if err != nil {
				return err
			}
			ctx.app = app
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if ctx.app != nil {
				ctx.app.Close()
			}
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&ctx.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&ctx.projectRoot, "project", "p", ".", "project root directory")

	rootCmd.AddCommand(newResolveCommand(ctx))
	rootCmd.AddCommand(newConfigurationCommand(ctx))
	rootCmd.AddCommand(newTargetCommand(ctx))
	rootCmd.AddCommand(newLaunchCommand(ctx))
	rootCmd.AddCommand(newStatusCommand(ctx))
	rootCmd.AddCommand(newWatchCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the command tree. It is called by main.main().
func Execute() {
	if err := fang.Execute(
		context.Background(),
		NewRootCommand(),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code))
		}
		os.Exit(1)
	}
}
