// SPDX-License-Identifier: MPL-2.0

// Package launch implements the single-line textual form of a launch record,
// used for both status display and settings persistence:
//
//	<cwd>><binary-relative-to-cwd>(<arg1,arg2,...>)
//
// Encode and Decode are inverse operations for any record whose fields
// contain none of '>', '(', ')'. A string that does not match the grammar
// decodes to "no record", never an error: a stale or hand-edited settings
// value must degrade to an absent launch configuration.
package launch

import (
	"path/filepath"
	"regexp"
	"strings"

	"makectl/pkg/buildtool"
)

// grammar captures cwd (no '>'), the relative binary (no '('), and the
// comma-joined argument list inside the trailing parentheses.
var grammar = regexp.MustCompile(`^([^>]*)>([^(]*)\((.*)\)$`)

// Encode renders the canonical single-line form of r. The binary is written
// relative to the working directory, climbing with ".." when it lives
// outside that tree; only when no relative form exists (different volume,
// mixed absolute and relative inputs) does it keep its absolute form.
func Encode(r buildtool.LaunchRecord) string {
	bin := r.Binary
	if rel, err := filepath.Rel(r.Cwd, r.Binary); err == nil {
		bin = rel
	}
	return r.Cwd + ">" + bin + "(" + strings.Join(r.Args, ",") + ")"
}

// Decode parses the single-line form back into a record. The second return
// is false when the string does not match the grammar; callers must treat
// that as "no launch configuration" rather than an error.
func Decode(encoded string) (buildtool.LaunchRecord, bool) {
	m := grammar.FindStringSubmatch(encoded)
	if m == nil {
		return buildtool.LaunchRecord{}, false
	}

	cwd, bin, argList := m[1], m[2], m[3]
	if !filepath.IsAbs(bin) {
		bin = filepath.Join(cwd, bin)
	}

	var args []string
	if argList != "" {
		args = strings.Split(argList, ",")
	}

	return buildtool.LaunchRecord{
		Binary: bin,
		Cwd:    cwd,
		Args:   args,
	}, true
}
