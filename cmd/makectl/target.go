// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"makectl/internal/tui"
	"makectl/pkg/buildtool"
)

// newTargetCommand creates the `makectl target` command tree.
func newTargetCommand(ctx *appContext) *cobra.Command {
	targetCmd := &cobra.Command{
		Use:   "target",
		Short: "List and select build targets",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	targetCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List targets discovered from the build log or a dry-run",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := ctx.App()
			targets, err := app.Discovery.Targets(cmd.Context(), app.Session.Effective())
			if err != nil {
				return asExitError(err)
			}

			out := cmd.OutOrStdout()
			if len(targets) == 0 {
				fmt.Fprintln(out, SubtitleStyle.Render("no targets discovered"))
				return nil
			}
			active := app.Session.Target()
			for _, name := range targets {
				marker := "  "
				if active.IsSet() && name == active.Name() {
					marker = SuccessStyle.Render("* ")
				}
				fmt.Fprintln(out, marker+ValueStyle.Render(name))
			}
			return nil
		},
	})

	var clear bool
	selectCmd := &cobra.Command{
		Use:   "select [name]",
		Short: "Activate a target, prompting when no name is given",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := ctx.App()

			if clear {
				app.Session.SelectTarget(buildtool.NoTarget())
				fmt.Fprintln(cmd.OutOrStdout(), SuccessStyle.Render("target cleared"))
				return nil
			}

			var name string
			if len(args) == 1 {
				name = args[0]
			} else {
				targets, err := app.Discovery.Targets(cmd.Context(), app.Session.Effective())
				if err != nil {
					return asExitError(err)
				}
				choice, ok, err := tui.ChooseString(tui.ChooseOptions{
					Title:       "Build target",
					Options:     targets,
					Placeholder: buildtool.DefaultConfigurationName,
				})
				if err != nil {
					return err
				}
				if !ok {
					return nil
				}
				name = choice
			}

			app.Session.SelectTarget(buildtool.NamedTarget(name))
			fmt.Fprintln(cmd.OutOrStdout(), SuccessStyle.Render("target set to ")+ValueStyle.Render(name))
			return nil
		},
	}
	selectCmd.Flags().BoolVar(&clear, "none", false, "clear the target selection")
	targetCmd.AddCommand(selectCmd)

	return targetCmd
}
