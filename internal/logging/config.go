// SPDX-License-Identifier: MPL-2.0

package logging

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
)

const (
	// BaseLogger is the logger every application logger is cloned from.
	BaseLogger = "sprockets"

	// ConsoleHandler writes to the console stream.
	ConsoleHandler = "console"
	// SyslogHandler writes to the system logger.
	SyslogHandler = "syslog"

	// VerboseFormatter is the console formatter of the base template.
	VerboseFormatter = "verbose"
	// SyslogFormatter is the syslog formatter of the base template.
	SyslogFormatter = "syslog"

	timestampFormat = "2006-01-02 15:04:05"
)

const (
	// LevelNotSet makes a logger inherit the level of its nearest ancestor and
	// lets a handler pass every record.
	LevelNotSet Level = ""
	LevelDebug  Level = "debug"
	LevelInfo   Level = "info"
	LevelWarn   Level = "warn"
	LevelError  Level = "error"
	LevelFatal  Level = "fatal"
)

const (
	FormatText   Format = "text"
	FormatLogfmt Format = "logfmt"
	FormatJSON   Format = "json"
)

const (
	ClassStream HandlerClass = "stream"
	ClassSyslog HandlerClass = "syslog"
)

type (
	// Level is a severity threshold name.
	Level string

	// Format selects a charmbracelet/log formatter.
	Format string

	// HandlerClass selects the kind of sink a handler writes to.
	HandlerClass string

	// Config is a complete logging configuration.
	Config struct {
		Version     int
		Incremental bool
		Filters     map[string]FilterConfig
		Formatters  map[string]FormatterConfig
		Handlers    map[string]HandlerConfig
		Loggers     map[string]LoggerConfig
		Root        LoggerConfig
	}

	// FilterConfig admits records from the logger Name and its dotted descendants.
	// An empty Name admits everything.
	FilterConfig struct {
		Name string
	}

	// FormatterConfig controls how a record is rendered.
	FormatterConfig struct {
		Format          Format
		TimeFormat      string
		ReportTimestamp bool
		ReportCaller    bool
		// ReportPID adds the process id to every record.
		ReportPID bool
	}

	// HandlerConfig describes one sink.
	HandlerConfig struct {
		Class     HandlerClass
		Formatter string
		Filters   []string
		Level     Level
	}

	// LoggerConfig configures a named logger.
	LoggerConfig struct {
		Handlers  []string
		Level     Level
		Propagate bool
	}
)

var baseTemplate = Config{
	Version: 1,
	Formatters: map[string]FormatterConfig{
		VerboseFormatter: {
			Format:          FormatText,
			TimeFormat:      timestampFormat,
			ReportTimestamp: true,
			ReportCaller:    true,
			ReportPID:       true,
		},
		SyslogFormatter: {
			Format:       FormatLogfmt,
			ReportCaller: true,
			ReportPID:    true,
		},
	},
	Handlers: map[string]HandlerConfig{
		ConsoleHandler: {Class: ClassStream, Formatter: VerboseFormatter},
		SyslogHandler:  {Class: ClassSyslog, Formatter: SyslogFormatter},
	},
	Loggers: map[string]LoggerConfig{
		BaseLogger: {
			Handlers:  []string{ConsoleHandler},
			Level:     LevelWarn,
			Propagate: true,
		},
	},
	Root: LoggerConfig{
		Level:     LevelFatal,
		Propagate: true,
	},
}

// BaseTemplate returns a copy of the base configuration. Callers may modify
// the result freely.
func BaseTemplate() Config {
	return baseTemplate.Clone()
}

// Clone returns a deep copy of c.
func (c Config) Clone() Config {
	out := c
	out.Filters = maps.Clone(c.Filters)
	out.Formatters = maps.Clone(c.Formatters)
	out.Handlers = make(map[string]HandlerConfig, len(c.Handlers))
	for name, h := range c.Handlers {
		h.Filters = slices.Clone(h.Filters)
		out.Handlers[name] = h
	}
	out.Loggers = make(map[string]LoggerConfig, len(c.Loggers))
	for name, l := range c.Loggers {
		out.Loggers[name] = l.Clone()
	}
	out.Root = c.Root.Clone()
	return out
}

// Clone returns a copy of l that shares no memory with it.
func (l LoggerConfig) Clone() LoggerConfig {
	l.Handlers = slices.Clone(l.Handlers)
	return l
}

// ParseLevel parses a level name. "warning" and "critical" are accepted as
// aliases of "warn" and "fatal"; "" and "notset" give LevelNotSet.
func ParseLevel(s string) (Level, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	switch name {
	case "", "notset":
		return LevelNotSet, nil
	case "warning":
		return LevelWarn, nil
	case "critical":
		return LevelFatal, nil
	}
	l, err := log.ParseLevel(name)
	if err != nil {
		return LevelNotSet, err
	}
	return Level(l.String()), nil
}

// charm converts l to a charmbracelet/log level. LevelNotSet maps to DebugLevel.
func (l Level) charm() (log.Level, error) {
	if l == LevelNotSet {
		return log.DebugLevel, nil
	}
	return log.ParseLevel(string(l))
}

func (f Format) formatter() (log.Formatter, error) {
	switch f {
	case FormatText, "":
		return log.TextFormatter, nil
	case FormatLogfmt:
		return log.LogfmtFormatter, nil
	case FormatJSON:
		return log.JSONFormatter, nil
	default:
		return 0, fmt.Errorf("unknown format %q", f)
	}
}

// admits reports whether records from loggerName pass f.
func (f FilterConfig) admits(loggerName string) bool {
	return f.Name == "" || loggerName == f.Name || strings.HasPrefix(loggerName, f.Name+".")
}
