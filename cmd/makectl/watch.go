// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"makectl/internal/reconcile"
)

// newWatchCommand creates `makectl watch`: run the reconciliation loop
// until interrupted, re-deriving targets whenever an external edit calls
// for a reparse.
func newWatchCommand(ctx *appContext) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Reconcile the session against on-disk edits until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := ctx.App()
			out := cmd.OutOrStdout()

			controller := reconcile.New(reconcile.Config{
				Session:        app.Session,
				Settings:       app.Settings,
				Configurations: app.Configurations,
				Logger:         app.Logger,
				OnExtensionLog: app.ApplyExtensionLog,
				Reparser: reconcile.ReparseFunc(func(rctx context.Context) {
					targets, err := app.Discovery.Targets(rctx, app.Session.Effective())
					if err != nil {
						app.Logger.Warn("target rediscovery failed", "err", err)
						return
					}
					app.Logger.Info("reparsed after external change", "targets", len(targets))
					if _, err := app.Status.WriteTo(out); err != nil {
						app.Logger.Warn("status write failed", "err", err)
					}
				}),
			})

			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			if _, err := app.Status.WriteTo(out); err != nil {
				return err
			}
			return controller.Run(runCtx)
		},
	}
}
