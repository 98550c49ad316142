// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"log/slog"
	"slices"
	"testing"

	"github.com/spf13/cobra"
	"pgregory.net/rapid"

	"github.com/sprockets/sprockets/internal/registry"
	"github.com/sprockets/sprockets/pkg/controller"
	"github.com/sprockets/sprockets/pkg/types"
)

var discardLogger = slog.New(slog.DiscardHandler)

func noDispatch(*cobra.Command, *controller.Invocation) error { return nil }

func descriptors(ctrls map[string]controller.Controller) map[string]registry.Descriptor {
	out := make(map[string]registry.Descriptor, len(ctrls))
	for name, c := range ctrls {
		out[name] = registry.Descriptor{Name: name, Module: "mod." + name, Controller: c}
	}
	return out
}

func subcommandNames(root *cobra.Command) []string {
	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	slices.Sort(names)
	return names
}

func TestBuildGrammar_OneSubcommandPerController(t *testing.T) {
	t.Parallel()

	g := buildGrammar(descriptors(map[string]controller.Controller{
		"web":    &fakeController{help: "Run a web application"},
		"worker": &flagController{fakeController: &fakeController{}},
		"help":   &fakeController{},
	}), noDispatch, discardLogger)

	if got, want := subcommandNames(g.root), []string{"web", "worker"}; !slices.Equal(got, want) {
		t.Fatalf("subcommands = %v, want %v", got, want)
	}

	web, _, err := g.root.Find([]string{"web"})
	if err != nil {
		t.Fatalf("Find(web) error = %v", err)
	}
	if web.Short != "Run a web application" {
		t.Errorf("web Short = %q, want the controller help", web.Short)
	}
	if web.Flags().Lookup("port") != nil {
		t.Error("web has a flag contributed by another controller")
	}

	worker, _, err := g.root.Find([]string{"worker"})
	if err != nil {
		t.Fatalf("Find(worker) error = %v", err)
	}
	if worker.Flags().Lookup("port") == nil {
		t.Error("worker is missing its contributed --port flag")
	}
}

func TestBuildGrammar_GlobalFlags(t *testing.T) {
	t.Parallel()

	g := buildGrammar(nil, noDispatch, discardLogger)
	pf := g.root.PersistentFlags()

	for name, short := range map[string]string{"list": "l", "syslog": "s", "verbose": "v"} {
		f := pf.Lookup(name)
		if f == nil {
			t.Errorf("missing --%s", name)
			continue
		}
		if f.Shorthand != short {
			t.Errorf("--%s shorthand = %q, want %q", name, f.Shorthand, short)
		}
	}
}

func TestBuildGrammar_Invocation(t *testing.T) {
	t.Parallel()

	var got *controller.Invocation
	dispatch := func(_ *cobra.Command, inv *controller.Invocation) error {
		got = inv
		return nil
	}
	g := buildGrammar(descriptors(map[string]controller.Controller{"web": &fakeController{}}), dispatch, discardLogger)
	g.root.SetArgs([]string{"-v", "web", "blog", "a", "b"})

	if err := g.root.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if got == nil {
		t.Fatal("dispatch was not called")
	}
	if got.Controller != "web" || got.Application != "blog" || got.Verbosity != 1 {
		t.Errorf("invocation = %+v", got)
	}
	if !slices.Equal(got.Args, []string{"a", "b"}) {
		t.Errorf("Args = %v, want [a b]", got.Args)
	}
	if got.List || got.Syslog {
		t.Errorf("List/Syslog = %v/%v, want false/false", got.List, got.Syslog)
	}
}

// The grammar accepts a controller token exactly when it names a discovered controller.
func TestGrammar_AcceptsExactlyDiscoveredControllers(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		name := rapid.StringMatching(`[a-z]{1,6}`).Filter(func(s string) bool { return s != "help" })
		names := rapid.SliceOfNDistinct(name, 0, 4, rapid.ID[string]).Draw(t, "controllers")
		token := rapid.OneOf(name, rapid.SampledFrom(append([]string{"zzzzzzz"}, names...))).Draw(t, "token")

		var dispatched []string
		dispatch := func(_ *cobra.Command, inv *controller.Invocation) error {
			dispatched = append(dispatched, inv.Controller)
			return nil
		}
		ctrls := make(map[string]controller.Controller, len(names))
		for _, n := range names {
			ctrls[n] = &fakeController{}
		}
		g := buildGrammar(descriptors(ctrls), dispatch, discardLogger)
		g.root.SilenceErrors = true
		g.root.SilenceUsage = true
		g.root.SetArgs([]string{token, "app"})

		err := g.root.Execute()

		if slices.Contains(names, token) {
			if err != nil {
				t.Fatalf("Execute(%q) error = %v, want nil", token, err)
			}
			if !slices.Equal(dispatched, []string{token}) {
				t.Fatalf("dispatched = %v, want [%s]", dispatched, token)
			}
			return
		}

		var exitErr *ExitError
		if !errors.As(err, &exitErr) || exitErr.Code != types.ExitUsage {
			t.Fatalf("Execute(%q) error = %v, want usage error", token, err)
		}
		if len(dispatched) != 0 {
			t.Fatalf("dispatched = %v for unknown controller %q", dispatched, token)
		}
	})
}
