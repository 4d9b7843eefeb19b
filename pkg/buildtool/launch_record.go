// SPDX-License-Identifier: MPL-2.0

package buildtool

import "slices"

// LaunchRecord describes one launchable binary discovered from dry-run
// output: the binary path, the working directory it is linked/run from, and
// its argument list. Binary and Cwd are absolute once a record leaves the
// codec or the parser.
type LaunchRecord struct {
	Binary string
	Cwd    string
	Args   []string
}

// Equal reports field-wise equality, treating nil and empty Args alike.
func (r LaunchRecord) Equal(other LaunchRecord) bool {
	if r.Binary != other.Binary || r.Cwd != other.Cwd {
		return false
	}
	if len(r.Args) != len(other.Args) {
		return false
	}
	return slices.Equal(r.Args, other.Args)
}
