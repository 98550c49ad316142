// SPDX-License-Identifier: MPL-2.0

package controller

import (
	"context"
	"log/slog"

	"github.com/spf13/pflag"
)

type (
	// Controller starts an application. Run is called synchronously and is
	// expected to block for the lifetime of the application.
	Controller interface {
		Run(ctx context.Context, application string, inv *Invocation) error
	}

	// FlagContributor is implemented by controllers that add flags to their
	// subcommand. Flag name conflicts panic inside pflag.
	FlagContributor interface {
		AddFlags(flags *pflag.FlagSet)
	}

	// Describer is implemented by controllers that provide a one-line help text.
	Describer interface {
		Help() string
	}

	// Loggers resolves named loggers from the active logging configuration.
	Loggers interface {
		Logger(name string) *slog.Logger
	}

	// Factory creates a controller instance for a registered module.
	Factory func() Controller

	// Invocation is the parsed command line handed to a controller.
	Invocation struct {
		// Controller is the selected controller name.
		Controller string
		// Verbosity is the number of -v flags given.
		Verbosity int
		// Syslog reports whether -s/--syslog was given.
		Syslog bool
		// List reports whether -l/--list was given.
		List bool
		// Application is the application token as typed by the user.
		Application string
		// Args holds positional arguments following the application.
		Args []string
		// Flags is the controller subcommand's flag set, including contributed flags.
		Flags *pflag.FlagSet

		// Logger is the logger configured for the resolved application.
		Logger *slog.Logger
		// Loggers resolves other named loggers.
		Loggers Loggers
	}
)

// ContributeFlags calls AddFlags when c implements FlagContributor and
// reports whether it did.
func ContributeFlags(c Controller, flags *pflag.FlagSet) bool {
	fc, ok := c.(FlagContributor)
	if !ok {
		return false
	}
	fc.AddFlags(flags)
	return true
}

// HelpOf returns the help text of c, or "" when c does not implement Describer.
func HelpOf(c Controller) string {
	if d, ok := c.(Describer); ok {
		return d.Help()
	}
	return ""
}
