// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"makectl/internal/issue"
	"makectl/internal/settings"
	"makectl/pkg/buildtool"
)

// newResolveCommand creates `makectl resolve`: print the effective build
// settings for the active configuration.
func newResolveCommand(ctx *appContext) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve",
		Short: "Show the effective build command, arguments and build log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := ctx.App()
			eff := app.Session.Effective()
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, SubtitleStyle.Render("configuration: ")+ValueStyle.Render(app.Session.ConfigurationName()))
			fmt.Fprintln(out, SubtitleStyle.Render("command:       ")+ValueStyle.Render(eff.MakeCommand))
			fmt.Fprintln(out, SubtitleStyle.Render("args:          ")+ValueStyle.Render(formatArgs(eff.MakeArgs)))
			if eff.HasBuildLog() {
				fmt.Fprintln(out, SubtitleStyle.Render("build log:     ")+ValueStyle.Render(eff.BuildLogPath))
			} else {
				fmt.Fprintln(out, SubtitleStyle.Render("build log:     ")+SubtitleStyle.Render("(none)"))
			}

			// Everything defaulted: no record matched and no makePath is
			// set. Point at the catalog entry in verbose mode.
			if ctx.verbose && eff.MakeCommand == buildtool.DefaultTool &&
				app.Settings.GetString(settings.KeyMakePath) == "" {
				if _, found := app.Configurations.Lookup(app.Session.ConfigurationName()); !found {
					renderIssue(cmd.ErrOrStderr(), issue.ToolNotFoundId)
				}
			}
			return nil
		},
	}
}

func formatArgs(args []string) string {
	if len(args) == 0 {
		return "(none)"
	}
	return strings.Join(args, " ")
}
