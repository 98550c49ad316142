// SPDX-License-Identifier: MPL-2.0

package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

// ErrSyslogUnsupported is returned when the platform has no syslog.
var ErrSyslogUnsupported = errors.New("syslog is not supported on this platform")

type (
	// SyslogOptions addresses the system logger. An empty Network selects
	// the local syslog socket and ignores Address.
	SyslogOptions struct {
		Network string
		Address string
		Tag     string
	}

	// PriorityWriter writes messages at a syslog priority. *syslog.Writer implements it.
	PriorityWriter interface {
		Debug(m string) error
		Info(m string) error
		Warning(m string) error
		Err(m string) error
		Crit(m string) error
		Close() error
	}

	// syslogHandler renders records with a charm logger and sends each one to
	// syslog at the priority matching its level.
	syslogHandler struct {
		logger *log.Logger
		out    *syslogOutput
	}

	// syslogOutput is shared by all handlers derived from one sink.
	syslogOutput struct {
		mu  sync.Mutex
		buf bytes.Buffer
		w   PriorityWriter
	}
)

func (h *syslogHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.logger.Enabled(ctx, level)
}

func (h *syslogHandler) Handle(ctx context.Context, r slog.Record) error {
	h.out.mu.Lock()
	defer h.out.mu.Unlock()

	h.out.buf.Reset()
	if err := h.logger.Handle(ctx, r); err != nil {
		return err
	}
	return h.out.write(r.Level, strings.TrimRight(h.out.buf.String(), "\n"))
}

func (h *syslogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &syslogHandler{logger: h.logger.WithAttrs(attrs).(*log.Logger), out: h.out}
}

func (h *syslogHandler) WithGroup(name string) slog.Handler {
	return &syslogHandler{logger: h.logger.WithGroup(name).(*log.Logger), out: h.out}
}

// write sends msg at the priority for level.
func (o *syslogOutput) write(level slog.Level, msg string) error {
	switch {
	case level >= slog.Level(log.FatalLevel):
		return o.w.Crit(msg)
	case level >= slog.LevelError:
		return o.w.Err(msg)
	case level >= slog.LevelWarn:
		return o.w.Warning(msg)
	case level >= slog.LevelInfo:
		return o.w.Info(msg)
	default:
		return o.w.Debug(msg)
	}
}
