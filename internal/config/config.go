package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/oshokin/defender-tray/internal/logger"
)

// Config holds the tunables of the defender-tray agent.
type Config struct {
	// PollInterval is the delay between two protection status observations.
	PollInterval time.Duration `yaml:"poll_interval"`
	// SettleDelay is how long the toggle script waits before re-reading the preference.
	SettleDelay time.Duration `yaml:"settle_delay"`
	// ScriptDir is where toggle scripts are materialized; empty means the OS temp dir.
	ScriptDir string `yaml:"script_dir"`
	// LogLevel is one of debug, info, warn or error.
	LogLevel string `yaml:"log_level"`
	// Notifications enables desktop notifications for status and toggle reports.
	Notifications bool `yaml:"notifications"`
	// AllowMultiple disables the single-instance guard.
	AllowMultiple bool `yaml:"allow_multiple"`
}

const (
	// DefaultConfigFilename is the default filename for agent settings.
	DefaultConfigFilename = "defender-tray-settings.yaml"

	// DefaultPollInterval is the default delay between status observations.
	DefaultPollInterval = 10 * time.Second

	// DefaultSettleDelay is the default wait before the toggle script verifies its write.
	DefaultSettleDelay = 2 * time.Second

	// DefaultLogLevel is used when no level is configured.
	DefaultLogLevel = "info"

	// DefaultFilePermissions is the default file permission for config files.
	DefaultFilePermissions = 0o600
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errNegativeDuration is returned when a duration setting is below zero.
	errNegativeDuration = errors.New("duration must not be negative")
	// errUnknownLogLevel is returned for log levels ParseLogLevel does not accept.
	errUnknownLogLevel = errors.New("unknown log level")
)

// Default returns the settings used when no configuration file exists.
func Default() *Config {
	return &Config{
		PollInterval:  DefaultPollInterval,
		SettleDelay:   DefaultSettleDelay,
		ScriptDir:     os.TempDir(),
		LogLevel:      DefaultLogLevel,
		Notifications: true,
	}
}

// Load reads configuration from the provided path and validates it.
// A missing file at the default location yields Default().
func Load(path string) (*Config, error) {
	isDefaultPath := path == "" || path == DefaultConfigFilename
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if isDefaultPath && errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}

		return nil, fmt.Errorf("read settings: %w", err)
	}

	cfg := Default()
	if err = yaml.Unmarshal(contents, cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err = Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the settings to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	if err = os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate checks the settings and fills zero values with defaults.
// A zero settle_delay is kept: it means verify right after the write.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if cfg.PollInterval < 0 {
		return fmt.Errorf("poll_interval %s: %w", cfg.PollInterval, errNegativeDuration)
	}

	if cfg.SettleDelay < 0 {
		return fmt.Errorf("settle_delay %s: %w", cfg.SettleDelay, errNegativeDuration)
	}

	if cfg.PollInterval == 0 {
		cfg.PollInterval = DefaultPollInterval
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}

	if _, ok := logger.ParseLogLevel(cfg.LogLevel); !ok {
		return fmt.Errorf("%w: %q", errUnknownLogLevel, cfg.LogLevel)
	}

	if cfg.ScriptDir == "" {
		cfg.ScriptDir = os.TempDir()
		return nil
	}

	info, err := os.Stat(cfg.ScriptDir)
	if err != nil {
		return fmt.Errorf("script_dir: %w", err)
	}

	if !info.IsDir() {
		return fmt.Errorf("script_dir %q is not a directory", cfg.ScriptDir)
	}

	return nil
}
