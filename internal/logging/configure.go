// SPDX-License-Identifier: MPL-2.0

package logging

// Build derives the configuration for one run from the base template.
//
// Verbosity 1 lowers the base logger to info and 2 to debug; any other value
// keeps the template level. With syslog set the syslog handler is appended to
// the base logger. The base logger entry is then cloned under app.
// Build has no side effects.
func Build(app string, verbosity int, syslog bool) Config {
	cfg := BaseTemplate()

	base := cfg.Loggers[BaseLogger]
	switch verbosity {
	case 1:
		base.Level = LevelInfo
	case 2:
		base.Level = LevelDebug
	}
	if syslog {
		base.Handlers = append(base.Handlers, SyslogHandler)
	}
	cfg.Loggers[BaseLogger] = base
	cfg.Loggers[app] = base.Clone()

	return cfg
}

// Configurator applies the configuration of a run. It is called once, after
// the application has been resolved and before the controller runs.
type Configurator struct {
	Options Options
	// ConsoleFormat, when set, replaces the format of the console formatter.
	ConsoleFormat Format
}

// Configure builds and applies the configuration for app.
func (c Configurator) Configure(app string, verbosity int, syslog bool) (*Manager, error) {
	cfg := Build(app, verbosity, syslog)
	if c.ConsoleFormat != "" {
		f := cfg.Formatters[VerboseFormatter]
		f.Format = c.ConsoleFormat
		cfg.Formatters[VerboseFormatter] = f
	}
	return Apply(cfg, c.Options)
}
