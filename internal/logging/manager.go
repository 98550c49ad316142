// SPDX-License-Identifier: MPL-2.0

package logging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
)

// ErrInvalidConfig is returned (wrapped) by Apply for configurations that
// reference unknown handlers, formatters or filters, or use unknown values.
var ErrInvalidConfig = errors.New("invalid logging configuration")

type (
	// Options holds the destinations a configuration is applied to.
	Options struct {
		// Stream receives stream handler output. Defaults to os.Stderr.
		Stream io.Writer
		// Syslog addresses the system logger.
		Syslog SyslogOptions
		// DialSyslog connects syslog handlers. Defaults to log/syslog.
		DialSyslog func(SyslogOptions) (PriorityWriter, error)
		// OnSyslogError, when set, receives syslog dial failures. The failing
		// handler is then left out and Apply carries on with the others.
		// When nil a dial failure fails Apply.
		OnSyslogError func(handler string, err error)
	}

	// Manager hands out loggers for an applied configuration.
	// It is immutable and safe for concurrent use.
	Manager struct {
		cfg   Config
		sinks map[string]*sink
	}

	// sink is one built handler. newHandler returns the handler bound to a logger name.
	sink struct {
		newHandler func(prefix string) slog.Handler
		filters    []FilterConfig
		closer     io.Closer
	}

	// fanoutHandler dispatches each record to every handler of a logger.
	fanoutHandler struct {
		level    slog.Level
		handlers []slog.Handler
	}
)

// Validate checks that every reference in c resolves and every value is known.
func (c Config) Validate() error {
	if c.Version != 1 {
		return fmt.Errorf("%w: unsupported version %d", ErrInvalidConfig, c.Version)
	}
	if c.Incremental {
		return fmt.Errorf("%w: incremental configuration is not supported", ErrInvalidConfig)
	}

	for name, f := range c.Formatters {
		if _, err := f.Format.formatter(); err != nil {
			return fmt.Errorf("%w: formatter %s: %w", ErrInvalidConfig, name, err)
		}
	}

	for name, h := range c.Handlers {
		switch h.Class {
		case ClassStream, ClassSyslog:
		default:
			return fmt.Errorf("%w: handler %s: unknown class %q", ErrInvalidConfig, name, h.Class)
		}
		if _, ok := c.Formatters[h.Formatter]; h.Formatter != "" && !ok {
			return fmt.Errorf("%w: handler %s: unknown formatter %q", ErrInvalidConfig, name, h.Formatter)
		}
		for _, f := range h.Filters {
			if _, ok := c.Filters[f]; !ok {
				return fmt.Errorf("%w: handler %s: unknown filter %q", ErrInvalidConfig, name, f)
			}
		}
		if _, err := h.Level.charm(); err != nil {
			return fmt.Errorf("%w: handler %s: %w", ErrInvalidConfig, name, err)
		}
	}

	check := func(name string, l LoggerConfig) error {
		if _, err := l.Level.charm(); err != nil {
			return fmt.Errorf("%w: logger %s: %w", ErrInvalidConfig, name, err)
		}
		for _, h := range l.Handlers {
			if _, ok := c.Handlers[h]; !ok {
				return fmt.Errorf("%w: logger %s: unknown handler %q", ErrInvalidConfig, name, h)
			}
		}
		return nil
	}
	for name, l := range c.Loggers {
		if err := check(name, l); err != nil {
			return err
		}
	}
	return check("root", c.Root)
}

// Apply validates cfg and builds a sink for every handler a logger uses.
// Unused handlers are not built, so an unused syslog handler never dials.
// On error nothing stays open and no Manager is returned.
func Apply(cfg Config, opts Options) (*Manager, error) {
	cfg = cfg.Clone()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if opts.Stream == nil {
		opts.Stream = os.Stderr
	}
	if opts.DialSyslog == nil {
		opts.DialSyslog = dialSyslog
	}

	m := &Manager{cfg: cfg, sinks: make(map[string]*sink)}
	for _, name := range cfg.usedHandlers() {
		s, err := buildSink(cfg, cfg.Handlers[name], opts)
		if err != nil && cfg.Handlers[name].Class == ClassSyslog && opts.OnSyslogError != nil {
			opts.OnSyslogError(name, err)
			continue
		}
		if err != nil {
			_ = m.Close()
			return nil, fmt.Errorf("handler %s: %w", name, err)
		}
		m.sinks[name] = s
	}
	return m, nil
}

func buildSink(cfg Config, h HandlerConfig, opts Options) (*sink, error) {
	fc := cfg.Formatters[h.Formatter]
	formatter, _ := fc.Format.formatter()
	level, _ := h.Level.charm()

	s := &sink{}
	for _, f := range h.Filters {
		s.filters = append(s.filters, cfg.Filters[f])
	}

	var w io.Writer = opts.Stream
	var out *syslogOutput
	if h.Class == ClassSyslog {
		pw, err := opts.DialSyslog(opts.Syslog)
		if err != nil {
			return nil, err
		}
		out = &syslogOutput{w: pw}
		w = &out.buf
		s.closer = pw
	}

	var fields []any
	if fc.ReportPID {
		fields = []any{"pid", os.Getpid()}
	}

	base := log.NewWithOptions(w, log.Options{
		Level:           level,
		Formatter:       formatter,
		TimeFormat:      fc.TimeFormat,
		ReportTimestamp: fc.ReportTimestamp,
		ReportCaller:    fc.ReportCaller,
		Fields:          fields,
	})

	s.newHandler = func(prefix string) slog.Handler {
		l := base.WithPrefix(prefix)
		if out != nil {
			return &syslogHandler{logger: l, out: out}
		}
		return l
	}
	return s, nil
}

// usedHandlers returns the handler names referenced by any logger, sorted.
func (c Config) usedHandlers() []string {
	var names []string
	for _, l := range c.Loggers {
		names = append(names, l.Handlers...)
	}
	names = append(names, c.Root.Handlers...)
	slices.Sort(names)
	return slices.Compact(names)
}

// Logger returns the logger called name. The empty name is the root logger.
func (m *Manager) Logger(name string) *slog.Logger {
	level, _ := m.EffectiveLevel(name).charm()

	h := &fanoutHandler{level: slog.Level(level)}
	for _, hn := range m.Handlers(name) {
		s, ok := m.sinks[hn]
		if !ok || !s.admits(name) {
			continue
		}
		h.handlers = append(h.handlers, s.newHandler(name))
	}
	return slog.New(h)
}

// EffectiveLevel returns the level of the nearest configured ancestor of name
// (name itself included), falling back to the root level and then to warn.
func (m *Manager) EffectiveLevel(name string) Level {
	for _, n := range lineage(name) {
		if l, ok := m.cfg.Loggers[n]; ok && l.Level != LevelNotSet {
			return l.Level
		}
	}
	if m.cfg.Root.Level != LevelNotSet {
		return m.cfg.Root.Level
	}
	return LevelWarn
}

// Handlers returns the handlers records logged to name reach: those of name
// and its ancestors, stopping after the first logger that does not propagate,
// then those of the root logger.
func (m *Manager) Handlers(name string) []string {
	var names []string
	for _, n := range lineage(name) {
		l, ok := m.cfg.Loggers[n]
		if !ok {
			continue
		}
		names = append(names, l.Handlers...)
		if !l.Propagate {
			return names
		}
	}
	return append(names, m.cfg.Root.Handlers...)
}

// Config returns a copy of the applied configuration.
func (m *Manager) Config() Config {
	return m.cfg.Clone()
}

// Close releases syslog connections.
func (m *Manager) Close() error {
	var errs []error
	for _, s := range m.sinks {
		if s.closer != nil {
			errs = append(errs, s.closer.Close())
		}
	}
	return errors.Join(errs...)
}

func (s *sink) admits(name string) bool {
	for _, f := range s.filters {
		if !f.admits(name) {
			return false
		}
	}
	return true
}

// lineage returns name followed by its dotted ancestors, nearest first.
func lineage(name string) []string {
	var out []string
	for name != "" {
		out = append(out, name)
		i := strings.LastIndexByte(name, '.')
		if i < 0 {
			break
		}
		name = name[:i]
	}
	return out
}

func (h *fanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	if level < h.level {
		return false
	}
	for _, hh := range h.handlers {
		if hh.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h *fanoutHandler) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, hh := range h.handlers {
		if hh.Enabled(ctx, r.Level) {
			errs = append(errs, hh.Handle(ctx, r.Clone()))
		}
	}
	return errors.Join(errs...)
}

func (h *fanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := &fanoutHandler{level: h.level, handlers: make([]slog.Handler, len(h.handlers))}
	for i, hh := range h.handlers {
		out.handlers[i] = hh.WithAttrs(attrs)
	}
	return out
}

func (h *fanoutHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	out := &fanoutHandler{level: h.level, handlers: make([]slog.Handler, len(h.handlers))}
	for i, hh := range h.handlers {
		out.handlers[i] = hh.WithGroup(name)
	}
	return out
}
