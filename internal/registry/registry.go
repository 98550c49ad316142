// SPDX-License-Identifier: MPL-2.0

package registry

import (
	"context"
	"iter"
	"log/slog"
	"maps"
	"slices"

	"github.com/spf13/pflag"

	"github.com/sprockets/sprockets/pkg/controller"
)

type (
	// Descriptor is a discovered and loaded controller.
	// It is not modified after discovery.
	Descriptor struct {
		Name       string
		Module     string
		Controller controller.Controller
	}

	// Application maps an alias to a module identifier within one controller's namespace.
	Application struct {
		Name   string
		Module string
	}

	// Registry discovers controllers and applications from an Index.
	Registry struct {
		index  Index
		loader Loader
		logger *slog.Logger
	}
)

// Help returns the controller's help text, or "" when it has none.
func (d Descriptor) Help() string { return controller.HelpOf(d.Controller) }

// ContributeFlags lets the controller add flags to fs and reports whether it
// supports doing so.
func (d Descriptor) ContributeFlags(fs *pflag.FlagSet) bool {
	return controller.ContributeFlags(d.Controller, fs)
}

// New creates a Registry. A nil loader uses controller.Load; a nil logger
// discards diagnostics.
func New(index Index, loader Loader, logger *slog.Logger) *Registry {
	if loader == nil {
		loader = LoaderFunc(controller.Load)
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Registry{index: index, loader: loader, logger: logger}
}

// ListControllers loads every controller in the index.
//
// A controller whose module fails to load is logged as a *LoadError and
// omitted. When two entries share a name the later one wins.
func (r *Registry) ListControllers(ctx context.Context) map[string]Descriptor {
	controllers := make(map[string]Descriptor)

	for ep, err := range r.index.EntryPoints(ctx, controller.ControllerGroup) {
		if err != nil {
			r.logger.Warn("skipping unreadable plugin index entry", "group", controller.ControllerGroup, "err", err)
			continue
		}

		c, err := r.loader.Load(ep.Module)
		if err == nil && c == nil {
			err = controller.ErrModuleNotFound
		}
		if err != nil {
			loadErr := &LoadError{Name: ep.Name, Module: ep.Module, Err: err}
			r.logger.Warn("failed to load controller", "controller", ep.Name, "module", ep.Module, "err", loadErr)
			continue
		}

		if prev, dup := controllers[ep.Name]; dup {
			r.logger.Debug("controller registered twice, later entry wins",
				"controller", ep.Name, "previous", prev.Module, "module", ep.Module)
		}
		controllers[ep.Name] = Descriptor{Name: ep.Name, Module: ep.Module, Controller: c}
	}

	return controllers
}

// ListApplications returns the applications registered for the named controller.
// The index is enumerated anew on every iteration; nothing is cached.
func (r *Registry) ListApplications(ctx context.Context, controllerName string) iter.Seq[Application] {
	group := controller.ApplicationGroup(controllerName)

	return func(yield func(Application) bool) {
		for ep, err := range r.index.EntryPoints(ctx, group) {
			if err != nil {
				r.logger.Warn("skipping unreadable plugin index entry", "group", group, "err", err)
				continue
			}
			if !yield(Application{Name: ep.Name, Module: ep.Module}) {
				return
			}
		}
	}
}

// ResolveApplication returns the module of the first application of
// controllerName named app. Unregistered names are returned unchanged, so a
// literal module identifier can be used in place of an alias.
func (r *Registry) ResolveApplication(ctx context.Context, controllerName, app string) string {
	for a := range r.ListApplications(ctx, controllerName) {
		if a.Name == app {
			r.logger.Debug("resolved application alias", "application", app, "module", a.Module)
			return a.Module
		}
	}
	return app
}

// Names returns the controller names in sorted order.
func Names(controllers map[string]Descriptor) []string {
	return slices.Sorted(maps.Keys(controllers))
}
