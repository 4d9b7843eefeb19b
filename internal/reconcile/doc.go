// SPDX-License-Identifier: MPL-2.0

// Package reconcile keeps the session consistent when the configurations
// file or the settings file changes on disk.
//
// Two triggers feed the controller: a save of the configurations file and a
// settings-store change notification. Both are dropped while the
// reconciliation guard is held, so the session's own mirror writes never
// re-enter the state machine. A settings notification is diffed key by key
// against session memory; of the tracked keys, all but the launch
// configuration and the log file influence build-command derivation and
// request a single downstream reparse no matter how many of them changed at
// once.
package reconcile
