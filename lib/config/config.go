// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/widgets/lib/throttle"
)

// EnvConfig names the environment variable holding the config path.
const EnvConfig = "WIDGETS_CONFIG"

// Environment represents the deployment environment.
type Environment string

const (
	// Development is for local development machines. Reloads are not
	// throttled.
	Development Environment = "development"
	// Staging is for pre-release testing.
	Staging Environment = "staging"
	// Production is for released builds.
	Production Environment = "production"
)

// Debug reports whether e is a debug build environment.
func (e Environment) Debug() bool { return e == Development }

// Platform selects the host behaviour of the bridge.
type Platform string

const (
	// Desktop hosts render widgets in their own windows and deliver
	// actions through the poller.
	Desktop Platform = "desktop"
	// Mobile hosts hand rendering to the OS widget extension and
	// throttle timeline reloads.
	Mobile Platform = "mobile"
)

// Config is the configuration of the widget daemon and CLI.
type Config struct {
	// Environment identifies the deployment type (development, staging, production).
	Environment Environment `yaml:"environment"`

	// Platform is desktop or mobile.
	Platform Platform `yaml:"platform"`

	Paths   PathsConfig   `yaml:"paths"`
	Daemon  DaemonConfig  `yaml:"daemon"`
	Reload  ReloadConfig  `yaml:"reload"`
	Actions ActionsConfig `yaml:"actions"`
	Events  EventsConfig  `yaml:"events"`

	// Per-environment overrides, applied after the base config is
	// loaded.
	Development *ConfigOverrides `yaml:"development,omitempty"`
	Staging     *ConfigOverrides `yaml:"staging,omitempty"`
	Production  *ConfigOverrides `yaml:"production,omitempty"`
}

// ConfigOverrides contains fields that can be overridden per environment.
type ConfigOverrides struct {
	Paths   *PathsConfig   `yaml:"paths,omitempty"`
	Daemon  *DaemonConfig  `yaml:"daemon,omitempty"`
	Reload  *ReloadConfig  `yaml:"reload,omitempty"`
	Actions *ActionsConfig `yaml:"actions,omitempty"`
	Events  *EventsConfig  `yaml:"events,omitempty"`
}

// PathsConfig configures directory locations.
type PathsConfig struct {
	// Root is the base directory for widget data.
	Root string `yaml:"root"`

	// Data is the directory holding per-group data files
	// (<data>/widgets/<group>.json). Default: ${WIDGETS_ROOT}/data
	Data string `yaml:"data"`

	// SharedContainers maps groups to directories shared with a native
	// widget process. A group listed here stores its data in
	// <dir>/widget_data.json instead of under Data.
	SharedContainers map[string]string `yaml:"shared_containers"`
}

// DaemonConfig configures widgetd.
type DaemonConfig struct {
	// SocketPath is the Unix socket widgetd listens on.
	SocketPath string `yaml:"socket_path"`

	// MetricsAddress is the TCP address serving /metrics. Empty
	// disables the endpoint.
	MetricsAddress string `yaml:"metrics_address"`
}

// ReloadConfig configures the timeline reload throttle.
type ReloadConfig struct {
	// MinInterval is the minimum time between reloads on mobile, as a
	// Go duration. Empty selects the environment default: 0 in
	// development, 15m otherwise. WIDGETS_MIN_RELOAD_SECS overrides it.
	MinInterval string `yaml:"min_interval"`
}

// ActionsConfig configures pending action delivery.
type ActionsConfig struct {
	// PollInterval is the period between polls. Default: 500ms
	PollInterval string `yaml:"poll_interval"`

	// Watch also polls when a data file changes on disk.
	Watch bool `yaml:"watch"`
}

// EventsConfig configures event fan-out.
type EventsConfig struct {
	// NATSURL, when set, forwards every event to this NATS server.
	NATSURL string `yaml:"nats_url"`

	// SubjectPrefix is the NATS subject root. Default: widgets
	SubjectPrefix string `yaml:"subject_prefix"`

	// Buffer is the channel capacity of each in-process subscriber.
	Buffer int `yaml:"buffer"`
}

// Default returns the default configuration, used as the base the
// config file is merged into.
func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	defaultRoot := filepath.Join(homeDir, ".local", "share", "widgets")

	return &Config{
		Environment: Development,
		Platform:    Desktop,
		Paths: PathsConfig{
			Root: defaultRoot,
			Data: filepath.Join(defaultRoot, "data"),
		},
		Daemon: DaemonConfig{
			SocketPath: filepath.Join(defaultRoot, "widgetd.sock"),
		},
		Actions: ActionsConfig{
			PollInterval: "500ms",
		},
		Events: EventsConfig{
			SubjectPrefix: "widgets",
			Buffer:        64,
		},
	}
}

// Load loads configuration from the WIDGETS_CONFIG environment
// variable. There is no fallback search: if the variable is unset,
// Load fails.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvConfig)
	if configPath == "" {
		return nil, fmt.Errorf("%s environment variable not set; "+
			"set it to the path of your widgets.yaml config file, or use --config flag", EnvConfig)
	}

	return LoadFile(configPath)
}

// Resolve loads the configuration for a binary: path when non-empty,
// else the file named by WIDGETS_CONFIG, else the defaults.
func Resolve(path string) (*Config, error) {
	if path != "" {
		return LoadFile(path)
	}
	if os.Getenv(EnvConfig) != "" {
		return Load()
	}
	cfg := Default()
	cfg.expandVariables()
	return cfg, nil
}

// LoadFile loads configuration from a specific file path. Environment
// variables do not override config values; only ${VAR} references in
// path fields are expanded.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}

	cfg.applyEnvironmentOverrides()
	cfg.expandVariables()

	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

// applyEnvironmentOverrides applies the section matching Environment.
func (c *Config) applyEnvironmentOverrides() {
	var overrides *ConfigOverrides

	switch c.Environment {
	case Development:
		overrides = c.Development
	case Staging:
		overrides = c.Staging
	case Production:
		overrides = c.Production
	}

	if overrides == nil {
		return
	}

	if overrides.Paths != nil {
		if overrides.Paths.Root != "" {
			c.Paths.Root = overrides.Paths.Root
		}
		if overrides.Paths.Data != "" {
			c.Paths.Data = overrides.Paths.Data
		}
		for group, directory := range overrides.Paths.SharedContainers {
			if c.Paths.SharedContainers == nil {
				c.Paths.SharedContainers = make(map[string]string)
			}
			c.Paths.SharedContainers[group] = directory
		}
	}

	if overrides.Daemon != nil {
		if overrides.Daemon.SocketPath != "" {
			c.Daemon.SocketPath = overrides.Daemon.SocketPath
		}
		if overrides.Daemon.MetricsAddress != "" {
			c.Daemon.MetricsAddress = overrides.Daemon.MetricsAddress
		}
	}

	if overrides.Reload != nil && overrides.Reload.MinInterval != "" {
		c.Reload.MinInterval = overrides.Reload.MinInterval
	}

	if overrides.Actions != nil {
		if overrides.Actions.PollInterval != "" {
			c.Actions.PollInterval = overrides.Actions.PollInterval
		}
		// Watch is a bool, so it is always taken from the override.
		c.Actions.Watch = overrides.Actions.Watch
	}

	if overrides.Events != nil {
		if overrides.Events.NATSURL != "" {
			c.Events.NATSURL = overrides.Events.NATSURL
		}
		if overrides.Events.SubjectPrefix != "" {
			c.Events.SubjectPrefix = overrides.Events.SubjectPrefix
		}
		if overrides.Events.Buffer != 0 {
			c.Events.Buffer = overrides.Events.Buffer
		}
	}
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in paths.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"WIDGETS_ROOT": c.Paths.Root,
		"HOME":         os.Getenv("HOME"),
	}

	c.Paths.Root = expandVars(c.Paths.Root, vars)
	vars["WIDGETS_ROOT"] = c.Paths.Root

	c.Paths.Data = expandVars(c.Paths.Data, vars)
	for group, directory := range c.Paths.SharedContainers {
		c.Paths.SharedContainers[group] = expandVars(directory, vars)
	}
	c.Daemon.SocketPath = expandVars(c.Daemon.SocketPath, vars)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandVars expands ${VAR} and ${VAR:-default} patterns, preferring
// vars over the process environment.
func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// ReloadInterval returns the configured minimum reload interval, or
// the environment default when none is set.
func (c *Config) ReloadInterval() (time.Duration, error) {
	if c.Reload.MinInterval == "" {
		return throttle.DefaultInterval(c.Environment.Debug()), nil
	}
	interval, err := time.ParseDuration(c.Reload.MinInterval)
	if err != nil {
		return 0, fmt.Errorf("reload.min_interval: %w", err)
	}
	if interval < 0 {
		return 0, fmt.Errorf("reload.min_interval must not be negative: %s", c.Reload.MinInterval)
	}
	return interval, nil
}

// PollInterval returns the pending action poll period.
func (c *Config) PollInterval() (time.Duration, error) {
	if c.Actions.PollInterval == "" {
		return 500 * time.Millisecond, nil
	}
	interval, err := time.ParseDuration(c.Actions.PollInterval)
	if err != nil {
		return 0, fmt.Errorf("actions.poll_interval: %w", err)
	}
	if interval <= 0 {
		return 0, fmt.Errorf("actions.poll_interval must be positive: %s", c.Actions.PollInterval)
	}
	return interval, nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if c.Environment != Development && c.Environment != Staging && c.Environment != Production {
		errs = append(errs, fmt.Errorf("invalid environment: %s", c.Environment))
	}

	if c.Platform != Desktop && c.Platform != Mobile {
		errs = append(errs, fmt.Errorf("invalid platform: %s (want desktop or mobile)", c.Platform))
	}

	if c.Paths.Root == "" {
		errs = append(errs, fmt.Errorf("paths.root is required"))
	}

	if c.Paths.Data == "" {
		errs = append(errs, fmt.Errorf("paths.data is required"))
	}

	for group, directory := range c.Paths.SharedContainers {
		if directory == "" {
			errs = append(errs, fmt.Errorf("paths.shared_containers[%s] is empty", group))
		}
	}

	if c.Daemon.SocketPath == "" {
		errs = append(errs, fmt.Errorf("daemon.socket_path is required"))
	}

	if _, err := c.ReloadInterval(); err != nil {
		errs = append(errs, err)
	}

	if _, err := c.PollInterval(); err != nil {
		errs = append(errs, err)
	}

	if c.Events.Buffer < 0 {
		errs = append(errs, fmt.Errorf("events.buffer must not be negative: %d", c.Events.Buffer))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// EnsurePaths creates the configured directories if they don't exist.
func (c *Config) EnsurePaths() error {
	paths := []string{
		c.Paths.Root,
		c.Paths.Data,
		filepath.Dir(c.Daemon.SocketPath),
	}

	for _, path := range paths {
		if path == "" {
			continue
		}
		if err := os.MkdirAll(path, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", path, err)
		}
	}

	return nil
}

// SharedContainerPath returns the shared directory configured for
// group.
func (c *Config) SharedContainerPath(group string) (string, bool) {
	directory, ok := c.Paths.SharedContainers[group]
	return directory, ok && directory != ""
}
