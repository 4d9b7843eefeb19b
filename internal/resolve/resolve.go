// SPDX-License-Identifier: MPL-2.0

// Package resolve computes the effective build settings for a configuration
// name by merging the configuration record with global settings under fixed
// precedence rules.
//
// Directory and base name of the build tool resolve independently: a record
// can supply only the tool name while the makePath setting supplies the
// directory, and vice versa. The record wins each part it supplies.
package resolve

import (
	"os"
	"path/filepath"
	"strings"

	"makectl/pkg/buildtool"

	"github.com/charmbracelet/log"
)

// Options carries the settings-store inputs of a resolution.
type Options struct {
	// MakePath is the global makePath setting: bare name, directory
	// (trailing separator), or full path. Empty when unset.
	MakePath string
	// BuildLog is the global buildLog setting, possibly relative to the
	// project root. Empty when unset.
	BuildLog string
	// ProjectRoot anchors relative build-log paths.
	ProjectRoot string
	// Logger receives the non-fatal resolution diagnostics. Nil silences them.
	Logger *log.Logger
}

// Resolve merges the first record matching configurationName with the
// options and returns the effective settings. MakeCommand in the result is
// never empty: absent all sources it is buildtool.DefaultTool.
func Resolve(set buildtool.ConfigurationSet, configurationName string, opts Options) buildtool.EffectiveBuildSettings {
	rec, found := set.Lookup(configurationName)

	recDir, recBase := splitTool(rec.MakeCommand)
	setDir, setBase := splitTool(opts.MakePath)

	dir := recDir
	if dir == "" {
		dir = setDir
	}
	base := recBase
	if base == "" {
		base = setBase
	}

	effective := buildtool.EffectiveBuildSettings{
		BuildLogPath: resolveBuildLog(rec.BuildLog, opts.BuildLog, opts.ProjectRoot),
	}
	if found && len(rec.MakeArgs) > 0 {
		effective.MakeArgs = append([]string(nil), rec.MakeArgs...)
	}

	diagnose(effective.BuildLogPath, found, rec, base, dir, opts)

	if base == "" {
		base = buildtool.DefaultTool
	}
	if dir != "" {
		effective.MakeCommand = filepath.Join(dir, base)
	} else {
		effective.MakeCommand = base
	}

	return effective
}

// splitTool breaks a tool setting into (directory, base name). The split is
// purely lexical: a trailing separator marks a directory-only value, a bare
// name has no directory. Empty input yields both parts empty.
func splitTool(tool string) (dir, base string) {
	if tool == "" {
		return "", ""
	}
	if strings.HasSuffix(tool, string(filepath.Separator)) || strings.HasSuffix(tool, "/") {
		return filepath.Clean(tool), ""
	}
	if filepath.Base(tool) == tool {
		return "", tool
	}
	return filepath.Dir(tool), filepath.Base(tool)
}

// resolveBuildLog applies build-log precedence: the per-configuration log
// wins over the global setting. Relative paths are joined against the
// project root. Empty means no build log is configured.
func resolveBuildLog(recLog, globalLog, projectRoot string) string {
	path := recLog
	if path == "" {
		path = globalLog
	}
	if path == "" {
		return ""
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(projectRoot, path)
	}
	return path
}

// diagnose logs the missing-resource warnings of a resolution. All of them
// are suppressed when a usable build log is present, because no process
// invocation will happen.
func diagnose(buildLogPath string, found bool, rec buildtool.MakeConfigurationRecord, base, dir string, opts Options) {
	if opts.Logger == nil {
		return
	}
	if buildLogPath != "" && fileExists(buildLogPath) {
		return
	}

	if base == "" {
		opts.Logger.Warn("no build tool name resolved, assuming the default",
			"default", buildtool.DefaultTool)
	}
	if dir == "" {
		opts.Logger.Warn("no build tool directory resolved; the tool must be reachable from the default search path")
	}
	if !found && opts.MakePath == "" && opts.BuildLog == "" && rec.MakeCommand == "" {
		opts.Logger.Warn("neither a configuration record nor settings supply build data; consider an explicit configuration",
			"configuration", "makectl configuration select")
	}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
