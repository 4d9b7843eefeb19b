// SPDX-License-Identifier: MPL-2.0

package buildtool

type (
	// Target is the tagged "currently active build target" value. The zero
	// value means no target: the build tool is invoked without a target
	// argument. This is distinct from the DisplayName placeholder, which is
	// purely presentational.
	Target struct {
		name string
	}
)

// NoTarget returns the unset target.
func NoTarget() Target { return Target{} }

// NamedTarget returns a target for the given name. An empty name collapses
// to NoTarget; a named-but-empty target is not representable, matching the
// settings-store encoding where the empty string is the "no target" sentinel.
func NamedTarget(name string) Target { return Target{name: name} }

// ParseTarget decodes the settings-store form of a target.
func ParseTarget(encoded string) Target { return Target{name: encoded} }

// IsSet reports whether a target name is configured.
func (t Target) IsSet() bool { return t.name != "" }

// Name returns the target name, or the empty string when unset.
func (t Target) Name() string { return t.name }

// Encode returns the settings-store form: the name, or the empty string for
// the unset target.
func (t Target) Encode() string { return t.name }

// DisplayName returns the name for status rendering, substituting the
// placeholder for the unset target.
func (t Target) DisplayName() string {
	if t.name == "" {
		return DefaultConfigurationName
	}
	return t.name
}
