// SPDX-License-Identifier: MPL-2.0

package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"makectl/internal/issue"
	"makectl/pkg/buildtool"
	"makectl/pkg/cueutil"

	"github.com/charmbracelet/log"
)

const (
	// DirName is the project-relative directory holding the configurations
	// and settings files.
	DirName = ".makectl"
	// ConfigurationsFileName is the configurations file name inside DirName.
	ConfigurationsFileName = "configurations.json"
)

//go:embed configurations_schema.cue
var configurationsSchema []byte

// Store holds the configuration set loaded from the project configurations
// file. Safe for concurrent use: settings notifications and file-save
// notifications arrive on separate watcher goroutines, so reads of the set
// can overlap a reload.
type Store struct {
	projectRoot string
	logger      *log.Logger

	mu  sync.RWMutex
	set buildtool.ConfigurationSet
}

// NewStore creates a Store for the given project root. The set is empty
// until the first Load.
func NewStore(projectRoot string, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.Default()
	}
	return &Store{projectRoot: projectRoot, logger: logger}
}

// Path returns the absolute path of the configurations file.
func (s *Store) Path() string {
	return filepath.Join(s.projectRoot, DirName, ConfigurationsFileName)
}

// Load reads and validates the configurations file.
//
// A missing file resets the set to empty and logs at info level. A file that
// exists but does not parse or validate leaves the previous set in place and
// returns an ActionableError for immediate user display.
func (s *Store) Load() error {
	path := s.Path()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Info("no configurations file, using settings-only resolution", "path", path)
			s.mu.Lock()
			s.set = nil
			s.mu.Unlock()
			return nil
		}
		// Unreadable is as actionable as malformed: the previous set stays.
		return issue.NewErrorContext().
			WithOperation("load configurations file").
			WithResource(path).
			WithSuggestion("Check the file permissions").
			Wrap(err).
			BuildError()
	}

	set, err := parseConfigurations(data, path)
	if err != nil {
		return issue.NewErrorContext().
			WithOperation("load configurations file").
			WithResource(path).
			WithSuggestion("Check the file contains a JSON array of configuration records").
			WithSuggestion("Remove the file to fall back to settings-only resolution").
			Wrap(err).
			BuildError()
	}

	s.mu.Lock()
	s.set = set
	s.mu.Unlock()
	s.logger.Debug("configurations loaded", "path", path, "records", len(set))
	return nil
}

// Set returns the current in-memory configuration set.
func (s *Store) Set() buildtool.ConfigurationSet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.set
}

// Lookup returns the first record whose name matches, per the first-wins
// collision policy of the underlying set.
func (s *Store) Lookup(name string) (buildtool.MakeConfigurationRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.set.Lookup(name)
}

// parseConfigurations validates data against the embedded schema and decodes
// the record list. JSON is valid CUE, so no separate JSON decode pass exists:
// schema unification is the parse.
func parseConfigurations(data []byte, filename string) (buildtool.ConfigurationSet, error) {
	result, err := cueutil.ParseAndDecode[[]buildtool.MakeConfigurationRecord](
		configurationsSchema,
		data,
		"#Configurations",
		cueutil.WithFilename(filename),
	)
	if err != nil {
		return nil, fmt.Errorf("parse configurations: %w", err)
	}
	return buildtool.ConfigurationSet(*result.Value), nil
}
