// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"mvdan.cc/sh/v3/shell"

	"github.com/sprockets/sprockets/internal/cueutil"
	"github.com/sprockets/sprockets/internal/issue"
)

const (
	// AppName is the application name.
	AppName = "sprockets"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "cue"
	// EnvPrefix prefixes environment overrides (SPROCKETS_LOG_BOOTSTRAP_LEVEL, ...).
	EnvPrefix = "SPROCKETS"
	// EnvConfigFile names an explicit config file.
	EnvConfigFile = "SPROCKETS_CONFIG"
	// IndexDirName is the manifest directory inside the config directory.
	IndexDirName = "index.d"
	// SystemIndexDir is the manifest directory packages install into.
	SystemIndexDir = "/usr/share/sprockets/index.d"
)

//go:embed config_schema.cue
var configSchema []byte

// ConfigDir returns the sprockets configuration directory
// ($XDG_CONFIG_HOME/sprockets on Linux, the platform equivalent elsewhere).
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate config directory: %w", err)
	}
	return filepath.Join(dir, AppName), nil
}

// DefaultIndexPaths returns the user index directory followed by the system one.
func DefaultIndexPaths(configDir string) []string {
	paths := []string{filepath.Join(configDir, IndexDirName)}
	if filepath.Separator == '/' {
		paths = append(paths, SystemIndexDir)
	}
	return paths
}

// envKeys lists the keys that SPROCKETS_* variables override.
var envKeys = []string{
	"index_paths",
	"log.bootstrap_level",
	"log.console_format",
	"syslog.network",
	"syslog.address",
	"syslog.tag",
}

// EnvKey returns the environment variable overriding a config key.
func EnvKey(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// loadWithOptions loads defaults, then the config file, then environment
// overrides read through opts.Getenv.
func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	cfgDir := opts.ConfigDirPath
	if cfgDir == "" {
		dir, err := ConfigDir()
		if err != nil {
			return nil, err
		}
		cfgDir = dir
	}

	getenv := opts.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}

	v := viper.New()
	defaults := DefaultConfig(cfgDir)
	v.SetDefault("index_paths", defaults.IndexPaths)
	v.SetDefault("log.bootstrap_level", defaults.Log.BootstrapLevel)
	v.SetDefault("log.console_format", defaults.Log.ConsoleFormat)
	v.SetDefault("syslog.network", defaults.Syslog.Network)
	v.SetDefault("syslog.address", defaults.Syslog.Address)
	v.SetDefault("syslog.tag", defaults.Syslog.Tag)

	resolvedPath := opts.ConfigFilePath
	if resolvedPath == "" {
		if p := filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt); fileExists(p) {
			resolvedPath = p
		}
	} else if !fileExists(resolvedPath) {
		return nil, issue.NewErrorContext().
			WithOperation("load configuration").
			WithResource(resolvedPath).
			WithSuggestion("Verify the file path is correct").
			WithSuggestion("Unset " + EnvConfigFile + " to use " + filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt)).
			Wrap(fmt.Errorf("config file not found: %s", resolvedPath)).
			BuildError()
	}

	if resolvedPath != "" {
		if err := loadCUEIntoViper(v, resolvedPath); err != nil {
			return nil, issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(resolvedPath).
				WithSuggestion("Check that the file contains valid CUE syntax").
				WithSuggestion("Verify the configuration values match the expected schema").
				Wrap(err).
				BuildError()
		}
	}

	for _, key := range envKeys {
		if val := getenv(EnvKey(key)); val != "" {
			v.Set(key, val)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	expanded, err := expandPaths(cfg.IndexPaths, getenv)
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("expand index_paths").
			WithSuggestion("Quote literal $ characters in index_paths").
			Wrap(err).
			BuildError()
	}
	cfg.IndexPaths = expanded

	if err := cfg.Validate(); err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("validate configuration").
			WithSuggestion("Check the " + EnvPrefix + "_* environment variables").
			Wrap(err).
			BuildError()
	}

	return &cfg, nil
}

// loadCUEIntoViper validates a CUE file against #Config and merges it into v.
// Fields are optional, so the document is not required to be concrete.
func loadCUEIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	configMap, err := cueutil.Decode[map[string]any](configSchema, data, "#Config",
		cueutil.WithFilename(path), cueutil.WithConcrete(false))
	if err != nil {
		return err
	}

	if err := v.MergeConfigMap(*configMap); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}
	return nil
}

// expandPaths shell-expands each path. A leading ~ expands to $HOME.
func expandPaths(paths []string, getenv func(string) string) ([]string, error) {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if p == "~" || strings.HasPrefix(p, "~/") {
			p = "$HOME" + p[1:]
		}
		expanded, err := shell.Expand(p, getenv)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", p, err)
		}
		if expanded == "" {
			continue
		}
		out = append(out, filepath.Clean(expanded))
	}
	return out, nil
}

// fileExists checks if a file exists and is not a directory
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
