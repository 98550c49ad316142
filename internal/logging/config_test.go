// SPDX-License-Identifier: MPL-2.0

package logging

import (
	"errors"
	"slices"
	"testing"

	"github.com/charmbracelet/log"
)

func TestBaseTemplate(t *testing.T) {
	t.Parallel()

	cfg := BaseTemplate()

	base, ok := cfg.Loggers[BaseLogger]
	if !ok {
		t.Fatalf("template has no %s logger", BaseLogger)
	}
	if base.Level != LevelWarn || !base.Propagate || !slices.Equal(base.Handlers, []string{ConsoleHandler}) {
		t.Errorf("base logger = %+v", base)
	}
	if cfg.Root.Level != LevelFatal || len(cfg.Root.Handlers) != 0 {
		t.Errorf("root logger = %+v", cfg.Root)
	}
	if cfg.Handlers[ConsoleHandler].Class != ClassStream || cfg.Handlers[SyslogHandler].Class != ClassSyslog {
		t.Errorf("handlers = %+v", cfg.Handlers)
	}
	if f := cfg.Formatters[VerboseFormatter]; f.TimeFormat != "2006-01-02 15:04:05" || !f.ReportCaller {
		t.Errorf("verbose formatter = %+v", f)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("template should validate: %v", err)
	}
}

func TestBaseTemplate_ReturnsIndependentCopies(t *testing.T) {
	t.Parallel()

	a := BaseTemplate()
	base := a.Loggers[BaseLogger]
	base.Handlers[0] = "mutated"
	base.Level = LevelDebug
	a.Loggers[BaseLogger] = base
	a.Loggers["extra"] = LoggerConfig{}
	a.Formatters[VerboseFormatter] = FormatterConfig{Format: FormatJSON}

	b := BaseTemplate()
	if b.Loggers[BaseLogger].Handlers[0] != ConsoleHandler || b.Loggers[BaseLogger].Level != LevelWarn {
		t.Errorf("template was mutated through a copy: %+v", b.Loggers[BaseLogger])
	}
	if _, ok := b.Loggers["extra"]; ok {
		t.Error("template gained a logger through a copy")
	}
	if b.Formatters[VerboseFormatter].Format != FormatText {
		t.Error("template formatter was mutated through a copy")
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"", LevelNotSet, false},
		{"notset", LevelNotSet, false},
		{"debug", LevelDebug, false},
		{"INFO", LevelInfo, false},
		{"warn", LevelWarn, false},
		{"warning", LevelWarn, false},
		{" error ", LevelError, false},
		{"critical", LevelFatal, false},
		{"fatal", LevelFatal, false},
		{"loud", LevelNotSet, true},
	}

	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if tt.wantErr {
			if !errors.Is(err, log.ErrInvalidLevel) {
				t.Errorf("ParseLevel(%q) error = %v, want ErrInvalidLevel", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseLevel(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
		}
	}
}

func TestFilterConfig_Admits(t *testing.T) {
	t.Parallel()

	tests := []struct {
		filter string
		logger string
		want   bool
	}{
		{"", "anything", true},
		{"myapp", "myapp", true},
		{"myapp", "myapp.blog", true},
		{"myapp", "myapplication", false},
		{"myapp.blog", "myapp", false},
	}
	for _, tt := range tests {
		if got := (FilterConfig{Name: tt.filter}).admits(tt.logger); got != tt.want {
			t.Errorf("filter %q admits %q = %v, want %v", tt.filter, tt.logger, got, tt.want)
		}
	}
}
