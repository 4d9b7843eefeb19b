// SPDX-License-Identifier: MPL-2.0

package reconcile

import (
	"context"
	"path"
	"time"

	"github.com/charmbracelet/log"

	"makectl/internal/config"
	"makectl/internal/settings"
	"makectl/internal/state"
	"makectl/internal/watch"
)

// Reparser receives the single downstream reparse request a reconciliation
// pass may emit.
type Reparser interface {
	RequestReparse(ctx context.Context)
}

// ReparseFunc adapts a function to the Reparser interface.
type ReparseFunc func(ctx context.Context)

func (f ReparseFunc) RequestReparse(ctx context.Context) { f(ctx) }

// Config wires a Controller.
type Config struct {
	Session        *state.Session
	Settings       *settings.Store
	Configurations *config.Store
	Reparser       Reparser

	// OnExtensionLog is invoked when the log-file setting changes, with the
	// new value. Optional.
	OnExtensionLog func(logPath string)

	// Debounce overrides the configuration-file watch debounce. Zero keeps
	// the watcher default.
	Debounce time.Duration

	Logger *log.Logger
}

// Controller reacts to external edits of the two on-disk sources, refreshing
// session memory from the store and requesting reparses downstream.
type Controller struct {
	session  *state.Session
	settings *settings.Store
	configs  *config.Store
	reparser Reparser
	onExtLog func(string)
	debounce time.Duration
	logger   *log.Logger
}

// New creates a Controller from cfg. Session, Settings and Configurations
// are required; a nil Reparser drops reparse requests.
func New(cfg Config) *Controller {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	reparser := cfg.Reparser
	if reparser == nil {
		reparser = ReparseFunc(func(context.Context) {})
	}
	return &Controller{
		session:  cfg.Session,
		settings: cfg.Settings,
		configs:  cfg.Configurations,
		reparser: reparser,
		onExtLog: cfg.OnExtensionLog,
		debounce: cfg.Debounce,
		logger:   logger,
	}
}

// HandleSettingsChange processes one settings-store change notification. It
// re-reads every tracked key whose stored value differs from session memory
// and requests at most one reparse, no matter how many keys changed.
func (c *Controller) HandleSettingsChange(ctx context.Context) {
	if c.session.Guard().Suppressed() {
		c.logger.Debug("ignoring self-inflicted settings change")
		return
	}

	reparse := false
	refreshed := false
	for _, key := range settings.TrackedKeys {
		if !c.session.ApplySetting(key) {
			continue
		}
		refreshed = true
		c.logger.Debug("settings key changed externally", "key", key)

		switch key {
		case settings.KeyLaunchConfiguration:
			// Display refresh only.
		case settings.KeyExtensionLog:
			if c.onExtLog != nil {
				c.onExtLog(c.session.ExtensionLog())
			}
		default:
			reparse = true
		}
	}

	if reparse {
		c.session.Recompute()
		c.reparser.RequestReparse(ctx)
		return
	}
	if refreshed {
		c.session.RefreshDisplay()
	}
}

// HandleConfigurationsSaved processes a save of the configurations file:
// reload, recompute and request a reparse unconditionally, since the file
// can change anything.
func (c *Controller) HandleConfigurationsSaved(ctx context.Context) {
	if c.session.Guard().Suppressed() {
		c.logger.Debug("ignoring self-inflicted configurations change")
		return
	}

	if err := c.session.ReloadConfigurations(); err != nil {
		c.logger.Error("configurations reload failed", "err", err)
	}
	c.reparser.RequestReparse(ctx)
}

// Run attaches both triggers and blocks until ctx is cancelled: the settings
// store's own change notifications, and a filesystem watch on the
// configurations file.
func (c *Controller) Run(ctx context.Context) error {
	c.settings.Subscribe(func() {
		c.HandleSettingsChange(ctx)
	})
	c.settings.Watch()

	pattern := path.Join(config.DirName, config.ConfigurationsFileName)
	w, err := watch.New(watch.Config{
		BaseDir:  c.session.ProjectRoot(),
		Patterns: []string{pattern},
		Debounce: c.debounce,
		Logger:   c.logger,
		OnChange: func(ctx context.Context, _ []string) {
			c.HandleConfigurationsSaved(ctx)
		},
	})
	if err != nil {
		return err
	}

	c.logger.Info("reconciliation running",
		"configurations", c.configs.Path(),
		"settings", c.settings.Path())
	return w.Run(ctx)
}
