// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"makectl/internal/issue"
	"makectl/internal/settings"
)

// newConfigCommand creates the `makectl config` command tree for the
// persistent settings file.
func newConfigCommand(ctx *appContext) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the makectl settings file",
		Long: `Manage the makectl settings file.

Settings are stored per project in .makectl/settings.toml under the
'make' namespace and survive across sessions. Selections made through
'makectl configuration', 'makectl target' and 'makectl launch' are
mirrored there.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the resolved settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := ctx.App()
			out := cmd.OutOrStdout()
			for _, key := range settings.TrackedKeys {
				value := app.Settings.GetString(key)
				if value == "" {
					value = SubtitleStyle.Render("(unset)")
				} else {
					value = ValueStyle.Render(value)
				}
				fmt.Fprintf(out, "%s = %s\n", SubtitleStyle.Render(key), value)
			}
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create a commented default settings file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := ctx.App()
			path, created, err := settings.WriteDefault(app.ProjectRoot)
			if err != nil {
				renderIssue(cmd.ErrOrStderr(), issue.SettingsWriteFailedId)
				return err
			}
			if !created {
				fmt.Fprintln(cmd.OutOrStdout(), WarningStyle.Render("settings file already exists: ")+ValueStyle.Render(path))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), SuccessStyle.Render("created ")+ValueStyle.Render(path))
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show the settings file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), ctx.App().Settings.Path())
			return nil
		},
	})

	return cfgCmd
}
