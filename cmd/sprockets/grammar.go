// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/sprockets/sprockets/internal/issue"
	"github.com/sprockets/sprockets/internal/registry"
	"github.com/sprockets/sprockets/pkg/controller"
	"github.com/sprockets/sprockets/pkg/types"
)

// reservedNames cannot be used as controller names.
var reservedNames = map[string]bool{"help": true}

type (
	// dispatchFunc runs a parsed invocation of a controller subcommand.
	dispatchFunc func(cmd *cobra.Command, inv *controller.Invocation) error

	// grammar is the sprockets command line: global flags on the root command
	// and one subcommand per controller.
	grammar struct {
		root      *cobra.Command
		list      bool
		syslog    bool
		verbosity int
	}
)

// buildGrammar creates the command tree for controllers. Flags a controller
// contributes are registered on its own subcommand; a name clash panics in pflag.
func buildGrammar(controllers map[string]registry.Descriptor, dispatch dispatchFunc, logger *slog.Logger) *grammar {
	g := &grammar{}

	g.root = &cobra.Command{
		Use:   "sprockets <controller> [controller flags] <application>",
		Short: "Run sprockets applications under an installed controller",
		Long: TitleStyle.Render("sprockets") + SubtitleStyle.Render(" - run applications under an installed controller") + `

The first argument selects a controller; the second names the application,
either an alias registered for that controller or a module identifier.

` + SubtitleStyle.Render("Examples:") + `
  ` + CmdStyle.Render("sprockets web blog") + `               run the blog application
  ` + CmdStyle.Render("sprockets -vv -s web myapp.custom") + `  debug logging, also to syslog
  ` + CmdStyle.Render("sprockets --list web") + `             list the web applications`,
		Args: func(_ *cobra.Command, args []string) error {
			switch {
			case len(args) == 0:
				return nil
			case len(controllers) == 0:
				return noControllers()
			default:
				return controllerNotFound(args[0])
			}
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			if len(controllers) == 0 {
				return noControllers()
			}
			if g.list {
				return usageError(errors.New("--list requires a controller"))
			}
			return usageError(errors.New("controller not specified"))
		},
	}
	g.root.SetVersionTemplate(versionTemplate)
	g.root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})

	pf := g.root.PersistentFlags()
	pf.BoolVarP(&g.list, "list", "l", false, "list installed sprockets apps")
	pf.BoolVarP(&g.syslog, "syslog", "s", false, "log to syslog")
	pf.CountVarP(&g.verbosity, "verbose", "v", "verbose logging output, use -vv for DEBUG level logging")

	for _, name := range registry.Names(controllers) {
		if reservedNames[name] {
			logger.Warn("ignoring controller with reserved name", "controller", name)
			continue
		}
		g.root.AddCommand(g.controllerCommand(controllers[name], dispatch, logger))
	}

	return g
}

func (g *grammar) controllerCommand(desc registry.Descriptor, dispatch dispatchFunc, logger *slog.Logger) *cobra.Command {
	name := desc.Name
	sub := &cobra.Command{
		Use:   name + " <application> [args...]",
		Short: desc.Help(),
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return dispatch(cmd, g.invocation(name, cmd, args))
		},
	}

	if !desc.ContributeFlags(sub.Flags()) {
		logger.Debug("controller does not contribute flags", "controller", name)
	}
	return sub
}

// invocation captures the parsed command line for controller name.
func (g *grammar) invocation(name string, cmd *cobra.Command, args []string) *controller.Invocation {
	inv := &controller.Invocation{
		Controller: name,
		Verbosity:  g.verbosity,
		Syslog:     g.syslog,
		List:       g.list,
		Flags:      cmd.Flags(),
	}
	if len(args) > 0 {
		inv.Application = args[0]
		inv.Args = args[1:]
	}
	return inv
}

// noControllers explains that nothing is installed.
func noControllers() *ExitError {
	return &ExitError{Code: types.ExitUsage, IssueID: issue.NoControllersInstalledId}
}
