// SPDX-License-Identifier: MPL-2.0

// Package runner spawns the build tool and captures its output.
//
// A Run suspends the caller until the process completes, while per-stream
// observers fire for each chunk as it arrives. Ordering within one stream is
// preserved; no ordering is guaranteed across stdout and stderr. Output
// captured before a failure is retained in the Result, so callers can parse
// partial dry-run output from a failed build.
package runner
