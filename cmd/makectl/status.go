// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"github.com/spf13/cobra"
)

// newStatusCommand creates `makectl status`: render the one-line selection
// summary.
func newStatusCommand(ctx *appContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the active configuration, target and launch configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := ctx.App().Status.WriteTo(cmd.OutOrStdout())
			return err
		},
	}
}
