// SPDX-License-Identifier: MPL-2.0

package buildtool

const (
	// DefaultTool is the command assumed when neither a configuration record
	// nor the makePath setting supplies one.
	DefaultTool = "make"

	// DefaultConfigurationName is the active configuration name assumed when
	// the settings store has no buildConfiguration entry. It doubles as the
	// display placeholder for an unset target.
	DefaultConfigurationName = "Default"
)

type (
	// MakeConfigurationRecord is one named entry of the project configurations
	// file. All fields except Name are optional; absent fields fall through to
	// the next precedence tier during resolution.
	MakeConfigurationRecord struct {
		// Name is the unique key of the record within the set.
		Name string `json:"name"`
		// MakeCommand is the build tool invocation, either a bare command
		// name, a directory, or a full path.
		MakeCommand string `json:"makeCommand,omitempty"`
		// MakeArgs are passed to the build tool after the discovery argument
		// prefix, in order.
		MakeArgs []string `json:"makeArgs,omitempty"`
		// BuildLog is a previously captured dry-run transcript to parse
		// instead of spawning the build tool. Relative paths are resolved
		// against the project root.
		BuildLog string `json:"buildLog,omitempty"`
	}

	// ConfigurationSet is the ordered collection of records from the
	// configurations file. Order is file order; Lookup is first-match, so a
	// duplicated name resolves to the earliest record (first-wins).
	ConfigurationSet []MakeConfigurationRecord
)

// Lookup returns the first record whose Name equals name. The second return
// is false when no record matches.
func (s ConfigurationSet) Lookup(name string) (MakeConfigurationRecord, bool) {
	for _, rec := range s {
		if rec.Name == name {
			return rec, true
		}
	}
	return MakeConfigurationRecord{}, false
}

// Names returns the record names in file order, without deduplication.
func (s ConfigurationSet) Names() []string {
	names := make([]string, len(s))
	for i, rec := range s {
		names[i] = rec.Name
	}
	return names
}

// EffectiveBuildSettings is the fully resolved command, argument list, and
// build-log path for one configuration after applying precedence across the
// configurations file and the settings store. It is derived state: recompute
// it whenever the active configuration, the configuration set, or the
// relevant settings change. MakeCommand is never empty; absent all sources
// it is DefaultTool.
type EffectiveBuildSettings struct {
	MakeCommand string
	MakeArgs    []string
	// BuildLogPath is absolute when set. Empty means no usable build log and
	// discovery falls back to spawning the build tool.
	BuildLogPath string
}

// HasBuildLog reports whether a build log path resolved.
func (e EffectiveBuildSettings) HasBuildLog() bool {
	return e.BuildLogPath != ""
}
