// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/sprockets/sprockets/internal/issue"
	"github.com/sprockets/sprockets/internal/registry"
	"github.com/sprockets/sprockets/pkg/controller"
	"github.com/sprockets/sprockets/pkg/types"
)

// dispatcher runs a parsed invocation: list mode prints the applications of
// the controller; otherwise the application is resolved, logging is
// configured, and the controller runs synchronously.
type dispatcher struct {
	registry    *registry.Registry
	controllers map[string]registry.Descriptor
	logging     LoggingConfigurator
	stdout      io.Writer
	stderr      io.Writer
}

func (d *dispatcher) dispatch(cmd *cobra.Command, inv *controller.Invocation) error {
	ctx := cmd.Context()

	if inv.List {
		return d.list(ctx, inv.Controller)
	}

	if inv.Application == "" {
		fmt.Fprint(d.stderr, "\n"+ErrorStyle.Render("error:")+" application not specified\n\n")
		_ = cmd.Help()
		return &ExitError{Code: types.ExitUsage}
	}

	c, ok := d.controller(inv.Controller)
	if !ok {
		return controllerNotFound(inv.Controller)
	}

	module := d.registry.ResolveApplication(ctx, inv.Controller, inv.Application)

	manager, err := d.logging.Configure(module, inv.Verbosity, inv.Syslog)
	if err != nil {
		return &ExitError{
			Code: types.ExitFailure,
			Err: issue.NewErrorContext().
				WithOperation("configure logging").
				WithResource(module).
				WithSuggestion("Check the logging settings in the config file").
				Wrap(err).
				BuildError(),
		}
	}
	defer func() { _ = manager.Close() }()

	inv.Logger = manager.Logger(module)
	inv.Loggers = manager

	err = c.Run(ctx, module, inv)
	if errors.Is(err, controller.ErrContractMismatch) {
		fmt.Fprintf(d.stderr, "%s could not start the %s controller for %s: %s\n\n",
			ErrorStyle.Render("error:"), inv.Controller, module, err)
		return &ExitError{Code: types.ExitUsage}
	}
	return err
}

// controller returns the loaded controller called name.
func (d *dispatcher) controller(name string) (controller.Controller, bool) {
	desc, ok := d.controllers[name]
	return desc.Controller, ok && desc.Controller != nil
}
