// SPDX-License-Identifier: MPL-2.0

// Package buildtool defines the leaf domain types shared across makectl:
// configuration records loaded from the project configurations file, the
// effective build settings derived from them, and the tagged target value.
//
// The package is dependency-free so that every other package (resolution,
// discovery, reconciliation, CLI) can import it without cycles.
package buildtool
