// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// Most failures in makectl degrade silently to the next precedence tier and
// are only logged. The few that the user must fix immediately (a malformed
// configurations file, chiefly) are built through the ErrorContext builder
// and rendered as Markdown before being shown.
package issue
