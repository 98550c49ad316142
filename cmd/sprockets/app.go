// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/fang"

	"github.com/sprockets/sprockets/internal/config"
	"github.com/sprockets/sprockets/internal/issue"
	"github.com/sprockets/sprockets/internal/logging"
	"github.com/sprockets/sprockets/internal/registry"
)

type (
	// App wires the CLI services. It is the composition root of a sprockets run.
	App struct {
		Config  ConfigProvider
		Index   registry.Index
		Loader  registry.Loader
		Logging LoggingConfigurator
		stdout  io.Writer
		stderr  io.Writer
		getenv  func(string) string
		dial    func(logging.SyslogOptions) (logging.PriorityWriter, error)
	}

	// Dependencies defines the injection points for building an App. Nil fields
	// are replaced with production defaults; Index and Logging defaults are
	// derived from the loaded configuration on every Run.
	Dependencies struct {
		Config  ConfigProvider
		Index   registry.Index
		Loader  registry.Loader
		Logging LoggingConfigurator
		Stdout  io.Writer
		Stderr  io.Writer
		Getenv  func(string) string

		// DialSyslog connects the default configurator's syslog handler.
		DialSyslog func(logging.SyslogOptions) (logging.PriorityWriter, error)
	}

	// ConfigProvider loads configuration using explicit options.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error)
	}

	// LoggingConfigurator applies the logging configuration of a run.
	LoggingConfigurator interface {
		Configure(app string, verbosity int, syslog bool) (*logging.Manager, error)
	}
)

// NewApp creates an App with defaults for every nil dependency.
func NewApp(deps Dependencies) (*App, error) {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Getenv == nil {
		deps.Getenv = os.Getenv
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}

	return &App{
		Config:  deps.Config,
		Index:   deps.Index,
		Loader:  deps.Loader,
		Logging: deps.Logging,
		stdout:  deps.Stdout,
		stderr:  deps.Stderr,
		getenv:  deps.Getenv,
		dial:    deps.DialSyslog,
	}, nil
}

// Run discovers controllers, builds the command line and executes args.
func (a *App) Run(ctx context.Context, args []string) error {
	cfg := a.loadConfigWithFallback(ctx)
	bootstrap := logging.Bootstrap(a.stderr, cfg.BootstrapLevel())

	index := a.Index
	if index == nil {
		index = registry.MultiIndex{
			registry.BuiltinIndex{},
			registry.FileIndex{Dirs: cfg.IndexPaths},
		}
	}
	reg := registry.New(index, a.Loader, bootstrap)

	configurator := a.Logging
	if configurator == nil {
		configurator = a.defaultConfigurator(cfg, bootstrap)
	}

	controllers := reg.ListControllers(ctx)
	d := &dispatcher{
		registry:    reg,
		controllers: controllers,
		logging:     configurator,
		stdout:      a.stdout,
		stderr:      a.stderr,
	}
	g := buildGrammar(controllers, d.dispatch, bootstrap)
	if args == nil {
		args = []string{}
	}
	g.root.SetArgs(args)
	g.root.SetOut(a.stdout)
	g.root.SetErr(a.stderr)

	return fang.Execute(ctx, g.root, fangOptions()...)
}

// defaultConfigurator logs to stderr and, with --syslog, to the configured
// syslog address. An unreachable syslog daemon only costs the syslog handler.
func (a *App) defaultConfigurator(cfg *config.Config, bootstrap *slog.Logger) logging.Configurator {
	sysOpts := logging.SyslogOptions{
		Network: cfg.Syslog.Network,
		Address: cfg.Syslog.Address,
		Tag:     cfg.Syslog.Tag,
	}
	return logging.Configurator{
		Options: logging.Options{
			Stream:     a.stderr,
			Syslog:     sysOpts,
			DialSyslog: a.dial,
			OnSyslogError: func(handler string, err error) {
				bootstrap.Warn("syslog unavailable, continuing without it",
					"handler", handler, "network", sysOpts.Network, "address", sysOpts.Address, "error", err)
				renderIssue(a.stderr, issue.SyslogUnavailableId)
			},
		},
		ConsoleFormat: logging.Format(cfg.Log.ConsoleFormat),
	}
}

// loadConfigWithFallback loads the configuration, falling back to the defaults
// with a warning on stderr when it cannot be loaded.
func (a *App) loadConfigWithFallback(ctx context.Context) *config.Config {
	opts := config.LoadOptions{
		ConfigFilePath: a.getenv(config.EnvConfigFile),
		Getenv:         a.getenv,
	}
	cfg, err := a.Config.Load(ctx, opts)
	if err == nil {
		return cfg
	}

	fmt.Fprintln(a.stderr, WarningStyle.Render("warning: ")+formatErrorForDisplay(err))
	renderIssue(a.stderr, issue.ConfigLoadFailedId)

	dir, dirErr := config.ConfigDir()
	if dirErr != nil {
		dir = "."
	}
	return config.DefaultConfig(dir)
}

// formatErrorForDisplay formats an error for user display, including the
// suggestions of an ActionableError.
func formatErrorForDisplay(err error) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(false)
	}
	return err.Error()
}
