// SPDX-License-Identifier: MPL-2.0

// Package settings wraps the persistent settings store: a TOML file under
// the project's .makectl directory, read and watched through Viper.
//
// The store is a durable mirror of the in-memory selection state, not the
// authority while the process runs — except on external edits, where the
// store wins and memory is refreshed (see internal/reconcile). Change
// notifications carry no payload; subscribers re-read the keys they track
// and diff against memory.
package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// FileName is the settings file name inside the project .makectl directory.
const FileName = "settings.toml"

// Settings keys, all under the "make" namespace of the TOML file.
const (
	KeyBuildConfiguration  = "make.buildConfiguration"
	KeyBuildTarget         = "make.buildTarget"
	KeyLaunchConfiguration = "make.launchConfiguration"
	KeyBuildLog            = "make.buildLog"
	KeyExtensionLog        = "make.extensionLog"
	KeyMakePath            = "make.makePath"
)

// TrackedKeys lists every key the reconciliation controller compares on a
// change notification, in a fixed order so diffs are deterministic.
var TrackedKeys = []string{
	KeyBuildConfiguration,
	KeyBuildTarget,
	KeyLaunchConfiguration,
	KeyBuildLog,
	KeyExtensionLog,
	KeyMakePath,
}

// Store is the persistent key/value settings store. Reads and writes go
// through Viper; Watch delivers change notifications fired by external
// edits of the settings file.
type Store struct {
	v      *viper.Viper
	path   string
	logger *log.Logger

	mu          sync.Mutex
	subscribers []func()
	watching    bool
}

// NewStore creates a Store rooted at the given project directory. Call Load
// before the first read.
func NewStore(projectRoot string, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.Default()
	}

	path := filepath.Join(projectRoot, dirName, FileName)

	v := viper.New()
	v.SetConfigFile(path)
	v.SetDefault(KeyBuildConfiguration, "")
	v.SetDefault(KeyBuildTarget, "")
	v.SetDefault(KeyLaunchConfiguration, "")
	v.SetDefault(KeyBuildLog, "")
	v.SetDefault(KeyExtensionLog, "")
	v.SetDefault(KeyMakePath, "")

	return &Store{v: v, path: path, logger: logger}
}

// dirName mirrors config.DirName without importing it; the two packages are
// peers and the directory layout is fixed.
const dirName = ".makectl"

// Path returns the absolute path of the settings file.
func (s *Store) Path() string {
	return s.path
}

// Load reads the settings file. A missing file is a supported state: all
// keys fall back to their defaults.
func (s *Store) Load() error {
	if err := s.v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			s.logger.Debug("no settings file, using defaults", "path", s.path)
			return nil
		}
		return fmt.Errorf("settings: read %s: %w", s.path, err)
	}
	return nil
}

// GetString returns the current value for key, or the empty string when the
// key is unset and has no default.
func (s *Store) GetString(key string) string {
	return s.v.GetString(key)
}

// Set updates key in memory and persists the whole store to disk. The write
// fires the store's own change notification through the file watcher; it is
// the caller's job to hold the reconciliation guard around Set so that
// notification is recognized as self-inflicted.
func (s *Store) Set(key, value string) error {
	s.v.Set(key, value)

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("settings: create directory: %w", err)
	}
	if err := s.v.WriteConfig(); err != nil {
		return fmt.Errorf("settings: write %s: %w", s.path, err)
	}
	return nil
}

// Subscribe registers fn to run on every settings-file change notification.
// Notifications are delivered on the watcher goroutine; subscribers that
// touch shared state must serialize themselves.
func (s *Store) Subscribe(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// Watch starts delivering change notifications. Safe to call once; later
// calls are no-ops. The settings file must exist before watching starts,
// otherwise Viper's watcher has nothing to attach to.
func (s *Store) Watch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.watching {
		return
	}
	s.watching = true

	s.v.OnConfigChange(func(_ fsnotify.Event) {
		s.notify()
	})
	s.v.WatchConfig()
}

func (s *Store) notify() {
	s.mu.Lock()
	subs := make([]func(), len(s.subscribers))
	copy(subs, s.subscribers)
	s.mu.Unlock()

	for _, fn := range subs {
		fn()
	}
}
