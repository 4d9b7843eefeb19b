// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"makectl/internal/tui"
	"makectl/pkg/buildtool"
)

// newConfigurationCommand creates the `makectl configuration` command tree.
func newConfigurationCommand(ctx *appContext) *cobra.Command {
	configurationCmd := &cobra.Command{
		Use:     "configuration",
		Aliases: []string{"cfg"},
		Short:   "List and select build configurations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	configurationCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List the configurations defined in the project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := ctx.App()
			names := app.Configurations.Set().Names()
			active := app.Session.ConfigurationName()
			out := cmd.OutOrStdout()

			if len(names) == 0 {
				fmt.Fprintln(out, SubtitleStyle.Render("no configurations defined; the built-in default applies"))
				return nil
			}
			for _, name := range names {
				marker := "  "
				if name == active {
					marker = SuccessStyle.Render("* ")
				}
				fmt.Fprintln(out, marker+ValueStyle.Render(name))
			}
			return nil
		},
	})

	configurationCmd.AddCommand(&cobra.Command{
		Use:   "select [name]",
		Short: "Activate a configuration, prompting when no name is given",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := ctx.App()

			var name string
			if len(args) == 1 {
				name = args[0]
			} else {
				choice, ok, err := tui.ChooseString(tui.ChooseOptions{
					Title:       "Build configuration",
					Options:     app.Configurations.Set().Names(),
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

			app.Session.SelectConfiguration(name)
			fmt.Fprintln(cmd.OutOrStdout(), SuccessStyle.Render("configuration set to ")+ValueStyle.Render(name))
			return nil
		},
	})

	return configurationCmd
}
