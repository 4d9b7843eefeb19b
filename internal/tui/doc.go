// SPDX-License-Identifier: MPL-2.0

// Package tui implements the interactive selection prompt used by the
// configuration, target and launch pickers.
package tui
