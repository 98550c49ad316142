// SPDX-License-Identifier: MPL-2.0

package logging

import (
	"reflect"
	"slices"
	"testing"

	"pgregory.net/rapid"

	"github.com/sprockets/sprockets/internal/testutil"
)

func TestBuild_Verbosity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		verbosity int
		want      Level
	}{
		{0, LevelWarn},
		{1, LevelInfo},
		{2, LevelDebug},
		{3, LevelWarn},
		{-1, LevelWarn},
	}

	for _, tt := range tests {
		cfg := Build("myapp.blog", tt.verbosity, false)
		if got := cfg.Loggers[BaseLogger].Level; got != tt.want {
			t.Errorf("Build(verbosity=%d) base level = %q, want %q", tt.verbosity, got, tt.want)
		}
		if got := cfg.Loggers["myapp.blog"].Level; got != tt.want {
			t.Errorf("Build(verbosity=%d) app level = %q, want %q", tt.verbosity, got, tt.want)
		}
	}
}

func TestBuild_Syslog(t *testing.T) {
	t.Parallel()

	without := Build("myapp.blog", 0, false)
	if got := without.Loggers["myapp.blog"].Handlers; !slices.Equal(got, []string{ConsoleHandler}) {
		t.Errorf("handlers without syslog = %v", got)
	}

	with := Build("myapp.custom", 2, true)
	want := []string{ConsoleHandler, SyslogHandler}
	if got := with.Loggers[BaseLogger].Handlers; !slices.Equal(got, want) {
		t.Errorf("base handlers with syslog = %v, want %v", got, want)
	}
	if got := with.Loggers["myapp.custom"].Handlers; !slices.Equal(got, want) {
		t.Errorf("app handlers with syslog = %v, want %v", got, want)
	}
}

func TestBuild_AppEntryIsIndependent(t *testing.T) {
	t.Parallel()

	cfg := Build("myapp", 1, true)
	app := cfg.Loggers["myapp"]
	app.Handlers[0] = "changed"

	if cfg.Loggers[BaseLogger].Handlers[0] != ConsoleHandler {
		t.Error("app logger entry shares its handler list with the base logger")
	}
}

func TestBuild_DoesNotContaminateTemplate(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		before := BaseTemplate()

		for range rapid.IntRange(1, 4).Draw(t, "calls") {
			app := rapid.StringMatching(`[a-z]+(\.[a-z]+){0,2}`).Draw(t, "app")
			verbosity := rapid.IntRange(-1, 4).Draw(t, "verbosity")
			syslog := rapid.Bool().Draw(t, "syslog")

			cfg := Build(app, verbosity, syslog)
			base := cfg.Loggers[BaseLogger]
			base.Handlers = append(base.Handlers, "scribble")
			cfg.Loggers[BaseLogger] = base
		}

		if after := BaseTemplate(); !reflect.DeepEqual(before, after) {
			t.Fatalf("template changed:\nbefore %+v\nafter  %+v", before, after)
		}
	})
}

func TestConfigurator_Configure(t *testing.T) {
	t.Parallel()

	fake := &testutil.SyslogRecorder{}
	c := Configurator{
		Options: Options{
			Stream:     &testutil.Buffer{},
			DialSyslog: func(SyslogOptions) (PriorityWriter, error) { return fake, nil },
		},
		ConsoleFormat: FormatJSON,
	}

	m, err := c.Configure("myapp.custom", 2, true)
	if err != nil {
		t.Fatalf("Configure() error = %v", err)
	}
	defer testutil.MustClose(t, m)

	if got := m.EffectiveLevel("myapp.custom"); got != LevelDebug {
		t.Errorf("EffectiveLevel() = %q, want debug", got)
	}
	if got := m.Config().Formatters[VerboseFormatter].Format; got != FormatJSON {
		t.Errorf("console format = %q, want json", got)
	}
	if !slices.Contains(m.Handlers("myapp.custom"), SyslogHandler) {
		t.Error("syslog handler should be attached")
	}
}
