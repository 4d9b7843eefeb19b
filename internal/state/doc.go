// SPDX-License-Identifier: MPL-2.0

// Package state holds the per-project session: the active configuration,
// target and launch selection, the cached effective build settings, and the
// reconciliation guard.
//
// The session is the single source of truth for "what is active now". The
// settings store is a durable mirror of it: every selection made through the
// session is written back to the store under the guard, and on activation or
// on a detected external edit the store wins and memory is refreshed.
package state
