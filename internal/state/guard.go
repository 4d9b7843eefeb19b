// SPDX-License-Identifier: MPL-2.0

package state

import "sync/atomic"

// Guard marks settings-store writes made by this process so that the store's
// own change notification can be told apart from a genuine external edit.
// It is a marker, not a mutual-exclusion lock.
type Guard struct {
	suppressed atomic.Bool
}

// Hold runs fn with the guard suppressed. Notifications observed while
// suppressed must be dropped by the reconciliation side.
func (g *Guard) Hold(fn func()) {
	g.suppressed.Store(true)
	defer g.suppressed.Store(false)
	fn()
}

// Suppressed reports whether a guarded write is in progress.
func (g *Guard) Suppressed() bool {
	return g.suppressed.Load()
}
