// SPDX-License-Identifier: MPL-2.0

package state

import (
	"sync"

	"github.com/charmbracelet/log"

	"makectl/internal/config"
	"makectl/internal/launch"
	"makectl/internal/resolve"
	"makectl/internal/settings"
	"makectl/pkg/buildtool"
)

// StatusDisplay receives the active selection whenever it changes. It is
// purely observational and feeds nothing back into the session.
type StatusDisplay interface {
	SetConfiguration(name string)
	SetTarget(name string)
	SetLaunchConfiguration(encoded string)
}

// NopDisplay discards all updates.
type NopDisplay struct{}

func (NopDisplay) SetConfiguration(string)       {}
func (NopDisplay) SetTarget(string)              {}
func (NopDisplay) SetLaunchConfiguration(string) {}

// Config wires a Session.
type Config struct {
	ProjectRoot    string
	Configurations *config.Store
	Settings       *settings.Store
	Display        StatusDisplay
	Logger         *log.Logger
}

// Session is the explicit per-project context object. It lives from
// activation to shutdown and serializes access to the selection internally,
// since settings-store notifications arrive on a watcher goroutine.
type Session struct {
	projectRoot string
	configs     *config.Store
	settings    *settings.Store
	display     StatusDisplay
	logger      *log.Logger
	guard       Guard

	mu                sync.Mutex
	configurationName string
	target            buildtool.Target
	launchRecord      buildtool.LaunchRecord
	launchSet         bool
	encodedLaunch     string
	buildLog          string
	extensionLog      string
	makePath          string
	effective         buildtool.EffectiveBuildSettings
}

// NewSession creates a Session from cfg. Configurations and Settings are
// required; Display defaults to NopDisplay.
func NewSession(cfg Config) *Session {
	display := cfg.Display
	if display == nil {
		display = NopDisplay{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Session{
		projectRoot:       cfg.ProjectRoot,
		configs:           cfg.Configurations,
		settings:          cfg.Settings,
		display:           display,
		logger:            logger,
		configurationName: buildtool.DefaultConfigurationName,
		target:            buildtool.NoTarget(),
	}
}

// Guard returns the session's reconciliation guard.
func (s *Session) Guard() *Guard {
	return &s.guard
}

// ProjectRoot returns the project root the session was created for.
func (s *Session) ProjectRoot() string {
	return s.projectRoot
}

// Activate loads both stores, pulls every tracked settings key into memory
// and computes the initial effective settings. A malformed configurations
// file is reported through the returned error but does not prevent
// activation; the session starts from an empty configuration set.
func (s *Session) Activate() error {
	if err := s.settings.Load(); err != nil {
		return err
	}
	configErr := s.configs.Load()

	s.mu.Lock()
	for _, key := range settings.TrackedKeys {
		s.applySettingLocked(key)
	}
	s.recomputeLocked()
	s.updateDisplayLocked()
	s.mu.Unlock()

	return configErr
}

// ConfigurationName returns the active configuration name.
func (s *Session) ConfigurationName() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.configurationName
}

// Target returns the active target.
func (s *Session) Target() buildtool.Target {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.target
}

// LaunchConfiguration returns the active launch configuration, if any.
func (s *Session) LaunchConfiguration() (buildtool.LaunchRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.launchRecord, s.launchSet
}

// Effective returns the cached effective build settings.
func (s *Session) Effective() buildtool.EffectiveBuildSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.effective
}

// ExtensionLog returns the configured log file path, empty when unset.
func (s *Session) ExtensionLog() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.extensionLog
}

// SelectConfiguration activates the named configuration, mirrors it into
// the settings store and recomputes the effective settings.
func (s *Session) SelectConfiguration(name string) {
	if name == "" {
		name = buildtool.DefaultConfigurationName
	}

	s.mu.Lock()
	s.configurationName = name
	s.recomputeLocked()
	s.updateDisplayLocked()
	s.mu.Unlock()

	s.persist(settings.KeyBuildConfiguration, name)
}

// SelectTarget activates the given target and mirrors it into the settings
// store. The effective settings are unaffected.
func (s *Session) SelectTarget(t buildtool.Target) {
	s.mu.Lock()
	s.target = t
	s.updateDisplayLocked()
	s.mu.Unlock()

	s.persist(settings.KeyBuildTarget, t.Encode())
}

// SelectLaunchConfiguration activates the given launch record and mirrors
// its encoded form into the settings store.
func (s *Session) SelectLaunchConfiguration(rec buildtool.LaunchRecord) {
	encoded := launch.Encode(rec)

	s.mu.Lock()
	s.launchRecord = rec
	s.launchSet = true
	s.encodedLaunch = encoded
	s.updateDisplayLocked()
	s.mu.Unlock()

	s.persist(settings.KeyLaunchConfiguration, encoded)
}

// ReloadConfigurations reloads the configurations file and recomputes the
// effective settings. The returned error reports a malformed file; the
// previously loaded set stays in effect in that case.
func (s *Session) ReloadConfigurations() error {
	err := s.configs.Load()

	s.mu.Lock()
	s.recomputeLocked()
	s.updateDisplayLocked()
	s.mu.Unlock()

	return err
}

// ApplySetting re-reads one tracked settings key from the store into memory,
// following the rule that the store wins over memory on external change.
// It reports whether the in-memory value actually changed.
func (s *Session) ApplySetting(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.applySettingLocked(key)
}

// RefreshDisplay pushes the current selection to the status display without
// recomputing the effective settings.
func (s *Session) RefreshDisplay() {
	s.mu.Lock()
	s.updateDisplayLocked()
	s.mu.Unlock()
}

// Recompute recomputes the effective settings from the current stores and
// selection, refreshing the status display.
func (s *Session) Recompute() {
	s.mu.Lock()
	s.recomputeLocked()
	s.updateDisplayLocked()
	s.mu.Unlock()
}

func (s *Session) applySettingLocked(key string) bool {
	value := s.settings.GetString(key)

	switch key {
	case settings.KeyBuildConfiguration:
		if value == "" {
			value = buildtool.DefaultConfigurationName
		}
		if value == s.configurationName {
			return false
		}
		s.configurationName = value
	case settings.KeyBuildTarget:
		t := buildtool.ParseTarget(value)
		if t == s.target {
			return false
		}
		s.target = t
	case settings.KeyLaunchConfiguration:
		if value == s.encodedLaunch {
			return false
		}
		s.encodedLaunch = value
		s.launchRecord, s.launchSet = launch.Decode(value)
	case settings.KeyBuildLog:
		if value == s.buildLog {
			return false
		}
		s.buildLog = value
	case settings.KeyExtensionLog:
		if value == s.extensionLog {
			return false
		}
		s.extensionLog = value
	case settings.KeyMakePath:
		if value == s.makePath {
			return false
		}
		s.makePath = value
	default:
		return false
	}
	return true
}

func (s *Session) recomputeLocked() {
	s.effective = resolve.Resolve(s.configs.Set(), s.configurationName, resolve.Options{
		MakePath:    s.makePath,
		BuildLog:    s.buildLog,
		ProjectRoot: s.projectRoot,
		Logger:      s.logger,
	})
}

func (s *Session) updateDisplayLocked() {
	s.display.SetConfiguration(s.configurationName)
	s.display.SetTarget(s.target.DisplayName())
	s.display.SetLaunchConfiguration(s.encodedLaunch)
}

// persist mirrors one key into the settings store with the guard held, so
// the write's own change notification is not treated as an external edit.
func (s *Session) persist(key, value string) {
	s.guard.Hold(func() {
		if err := s.settings.Set(key, value); err != nil {
			s.logger.Error("failed to persist selection", "key", key, "err", err)
		}
	})
}
