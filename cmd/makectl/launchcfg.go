// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"makectl/internal/launch"
	"makectl/internal/tui"
)

// newLaunchCommand creates the `makectl launch` command tree.
func newLaunchCommand(ctx *appContext) *cobra.Command {
	launchCmd := &cobra.Command{
		Use:   "launch",
		Short: "List and select launch configurations",
		Long: `List and select launch configurations.

Launch configurations are the binaries a full dry-run of the build would
link, encoded as '<cwd>><binary>(<args>)'. They are discovered from the
configured build log when one exists, otherwise from a live dry-run.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	launchCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List discovered launch configurations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := ctx.App()
			encoded, err := app.Discovery.LaunchConfigurations(cmd.Context(), app.Session.Effective(), app.Session.Target())
			if err != nil {
				return asExitError(err)
			}

			out := cmd.OutOrStdout()
			if len(encoded) == 0 {
				fmt.Fprintln(out, SubtitleStyle.Render("no launch configurations discovered"))
				return nil
			}
			for _, entry := range encoded {
				fmt.Fprintln(out, "  "+ValueStyle.Render(entry))
			}
			return nil
		},
	})

	launchCmd.AddCommand(&cobra.Command{
		Use:   "select [encoded]",
		Short: "Activate a launch configuration, prompting when none is given",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := ctx.App()

			var encoded string
			if len(args) == 1 {
				encoded = args[0]
			} else {
				candidates, err := app.Discovery.LaunchConfigurations(cmd.Context(), app.Session.Effective(), app.Session.Target())
				if err != nil {
					return asExitError(err)
				}
				choice, ok, err := tui.ChooseString(tui.ChooseOptions{
					Title:   "Launch configuration",
					Options: candidates,
				})
				if err != nil {
					return err
				}
				if !ok {
					return nil
				}
				encoded = choice
			}

			rec, ok := launch.Decode(encoded)
			if !ok {
				return fmt.Errorf("not a launch configuration: %q", encoded)
			}
			app.Session.SelectLaunchConfiguration(rec)
			fmt.Fprintln(cmd.OutOrStdout(), SuccessStyle.Render("launch configuration set to ")+ValueStyle.Render(encoded))
			return nil
		},
	})

	return launchCmd
}
