// SPDX-License-Identifier: MPL-2.0

// Package parser extracts target names and launch-candidate binaries from
// make dry-run / database output.
//
// The discovery pipeline only depends on the interface it declares; this
// package is the stock implementation handed to it by the CLI layer. Parsing
// is deliberately tolerant: unrecognized lines are skipped, and partial
// output from a failed dry-run still yields whatever was parseable.
package parser

import (
	"path/filepath"
	"regexp"
	"strings"

	"makectl/pkg/buildtool"
)

var (
	// targetLine matches rule lines of the `make -p` database: a name
	// followed by a colon that is not a := assignment. Pattern rules and
	// .SPECIAL targets are rejected separately.
	targetLine = regexp.MustCompile(`^([^.#%\s][^:#=%\s]*)\s*:(.*)$`)

	// enterDir and leaveDir track the working directory of recursive make
	// invocations so relative binaries resolve against the right base.
	enterDir = regexp.MustCompile(`^make(?:\[\d+\])?: Entering directory ['"` + "`" + `](.+)['"` + "`" + `]$`)
	leaveDir = regexp.MustCompile(`^make(?:\[\d+\])?: Leaving directory ['"` + "`" + `](.+)['"` + "`" + `]$`)
)

// linkerNames are command base names treated as producing a launchable
// binary when invoked with -o.
var linkerNames = map[string]bool{
	"cc": true, "c++": true, "gcc": true, "g++": true,
	"clang": true, "clang++": true, "ld": true, "gold": true,
}

// MakeParser parses GNU-make-compatible dry-run and database output.
type MakeParser struct{}

// New creates a MakeParser.
func New() *MakeParser {
	return &MakeParser{}
}

// Targets returns the target names found in text, in encounter order and
// without deduplication; the discovery pipeline sorts and dedups.
func (p *MakeParser) Targets(text string) []string {
	var targets []string

	notATarget := false
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")

		// The database marks non-target rules with a comment on the
		// preceding line.
		if strings.HasPrefix(line, "# Not a target") {
			notATarget = true
			continue
		}

		m := targetLine.FindStringSubmatch(line)
		if m == nil {
			notATarget = false
			continue
		}
		if notATarget {
			notATarget = false
			continue
		}

		name, rest := m[1], m[2]
		if strings.HasPrefix(rest, "=") { // := assignment, not a rule
			continue
		}
		targets = append(targets, name)
	}

	return targets
}

// LaunchCandidates returns a record for every linker-style invocation with
// an -o output in text. Relative binaries resolve against the directory of
// the innermost "Entering directory" scope, defaulting to projectRoot.
func (p *MakeParser) LaunchCandidates(text, projectRoot string) []buildtool.LaunchRecord {
	var records []buildtool.LaunchRecord

	dirStack := []string{projectRoot}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")

		if m := enterDir.FindStringSubmatch(line); m != nil {
			dirStack = append(dirStack, m[1])
			continue
		}
		if leaveDir.MatchString(line) && len(dirStack) > 1 {
			dirStack = dirStack[:len(dirStack)-1]
			continue
		}

		cwd := dirStack[len(dirStack)-1]
		if bin, ok := linkOutput(line); ok {
			if !filepath.IsAbs(bin) {
				bin = filepath.Join(cwd, bin)
			}
			records = append(records, buildtool.LaunchRecord{
				Binary: bin,
				Cwd:    cwd,
			})
		}
	}

	return records
}

// linkOutput reports the -o argument of a linker-style command line.
func linkOutput(line string) (string, bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", false
	}

	tool := filepath.Base(fields[0])
	if !linkerNames[tool] && !strings.HasSuffix(tool, "-gcc") && !strings.HasSuffix(tool, "-g++") {
		return "", false
	}

	compileOnly := false
	output := ""
	for i, f := range fields[1:] {
		switch f {
		case "-c", "-S", "-E":
			compileOnly = true
		case "-o":
			// fields[1:][i] is fields[i+1]; the value follows at fields[i+2].
			if i+2 < len(fields) {
				output = fields[i+2]
			}
		}
	}

	if compileOnly || output == "" {
		return "", false
	}
	return output, true
}
