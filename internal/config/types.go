// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"slices"

	"github.com/sprockets/sprockets/internal/logging"
)

// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
var ErrInvalidConfig = errors.New("invalid config")

var (
	consoleFormats = []logging.Format{logging.FormatText, logging.FormatLogfmt, logging.FormatJSON}
	syslogNetworks = []string{"", "udp", "tcp", "unix", "unixgram"}
)

type (
	// Config is the sprockets configuration.
	Config struct {
		// IndexPaths lists the directories scanned for plugin manifests, in order.
		IndexPaths []string `json:"index_paths" mapstructure:"index_paths"`
		// Log configures logging before and during a run.
		Log LogConfig `json:"log" mapstructure:"log"`
		// Syslog addresses the syslog handler.
		Syslog SyslogConfig `json:"syslog" mapstructure:"syslog"`
	}

	// LogConfig configures logging.
	LogConfig struct {
		BootstrapLevel string `json:"bootstrap_level" mapstructure:"bootstrap_level"`
		ConsoleFormat  string `json:"console_format" mapstructure:"console_format"`
	}

	// SyslogConfig addresses the system logger.
	SyslogConfig struct {
		Network string `json:"network" mapstructure:"network"`
		Address string `json:"address" mapstructure:"address"`
		Tag     string `json:"tag" mapstructure:"tag"`
	}

	// InvalidConfigError is returned when a config value is not recognized.
	// It wraps ErrInvalidConfig for errors.Is() compatibility.
	InvalidConfigError struct {
		Field string
		Value string
	}
)

// DefaultConfig returns the defaults for a config directory.
func DefaultConfig(configDir string) *Config {
	return &Config{
		IndexPaths: DefaultIndexPaths(configDir),
		Log: LogConfig{
			BootstrapLevel: string(logging.LevelWarn),
			ConsoleFormat:  string(logging.FormatText),
		},
		Syslog: SyslogConfig{
			Network: "udp",
			Address: "localhost:514",
			Tag:     AppName,
		},
	}
}

// Validate checks values that environment overrides can set without passing
// through the CUE schema.
func (c *Config) Validate() error {
	if _, err := logging.ParseLevel(c.Log.BootstrapLevel); err != nil {
		return &InvalidConfigError{Field: "log.bootstrap_level", Value: c.Log.BootstrapLevel}
	}
	if !slices.Contains(consoleFormats, logging.Format(c.Log.ConsoleFormat)) {
		return &InvalidConfigError{Field: "log.console_format", Value: c.Log.ConsoleFormat}
	}
	if !slices.Contains(syslogNetworks, c.Syslog.Network) {
		return &InvalidConfigError{Field: "syslog.network", Value: c.Syslog.Network}
	}
	return nil
}

// BootstrapLevel returns the parsed bootstrap level. Call Validate first.
func (c *Config) BootstrapLevel() logging.Level {
	l, _ := logging.ParseLevel(c.Log.BootstrapLevel)
	return l
}

// Error implements the error interface.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid value %q for %s", e.Value, e.Field)
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }
