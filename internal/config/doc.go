// SPDX-License-Identifier: MPL-2.0

// Package config loads the named configuration records from the project
// configurations file.
//
// A missing file is a normal, supported state and yields an empty set. A
// file that exists but fails to parse keeps the previous in-memory set and
// surfaces an actionable error; a malformed configurations file is the one
// failure the user must fix immediately rather than read about in a log.
package config
