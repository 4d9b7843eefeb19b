// SPDX-License-Identifier: MPL-2.0

// Package discovery produces the selectable build targets and launch
// configurations for the current effective build settings.
//
// Both discovery kinds share the same shape: when a usable build log is
// configured its text is parsed directly and no process is spawned;
// otherwise the build tool runs in a diagnostic dry-run mode and whatever
// stdout accumulated by completion is parsed, even after a non-zero exit.
// Partial dry-run output from a failed build is still useful, so process
// failure only downgrades to a logged warning with the captured stderr.
//
// Discovery is single-flight per kind: a request started while one of the
// same kind is in flight joins it and shares its result instead of spawning
// a second build-tool process.
package discovery
