// SPDX-License-Identifier: MPL-2.0

package settings

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

type (
	fileDefaults struct {
		Make makeSection `toml:"make"`
	}

	makeSection struct {
		BuildConfiguration  string `toml:"buildConfiguration" comment:"Active configuration record from .makectl/configurations.json"`
		BuildTarget         string `toml:"buildTarget" comment:"Active build target; empty means no target argument is appended"`
		LaunchConfiguration string `toml:"launchConfiguration" comment:"Encoded launch record: <cwd>><binary>(<args>)"`
		BuildLog            string `toml:"buildLog" comment:"Dry-run transcript parsed instead of spawning the build tool"`
		ExtensionLog        string `toml:"extensionLog" comment:"File the makectl log is written to"`
		MakePath            string `toml:"makePath" comment:"Build tool path: bare name, directory, or full path"`
	}
)

// WriteDefault creates the settings file with commented defaults. An
// existing file is left untouched; the returned bool reports whether a file
// was written.
func WriteDefault(projectRoot string) (string, bool, error) {
	path := filepath.Join(projectRoot, dirName, FileName)

	if _, err := os.Stat(path); err == nil {
		return path, false, nil
	}

	defaults := fileDefaults{
		Make: makeSection{
			BuildConfiguration: "",
		},
	}

	data, err := toml.Marshal(defaults)
	if err != nil {
		return "", false, fmt.Errorf("settings: marshal defaults: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", false, fmt.Errorf("settings: create directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", false, fmt.Errorf("settings: write %s: %w", path, err)
	}

	return path, true, nil
}
