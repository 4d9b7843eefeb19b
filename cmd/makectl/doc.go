// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for makectl.
//
// This package implements the Cobra command hierarchy: the root command,
// subcommands for resolving effective build settings, selecting
// configurations, targets and launch configurations, and the watch loop
// that keeps the session reconciled with on-disk edits.
package cmd
