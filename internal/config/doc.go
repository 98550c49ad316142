// SPDX-License-Identifier: MPL-2.0

// Package config handles sprockets configuration using Viper with CUE as the file format.
//
// Configuration is read from config.cue in the sprockets config directory
// ($XDG_CONFIG_HOME/sprockets on Linux) or from the file named by
// SPROCKETS_CONFIG, validated against an embedded CUE schema
// (config_schema.cue), and overridden by SPROCKETS_* environment variables.
// It controls where plugin manifests are looked up, the bootstrap log level,
// the console log format, and the syslog destination.
package config
