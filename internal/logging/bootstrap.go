// SPDX-License-Identifier: MPL-2.0

package logging

import (
	"io"
	"log/slog"

	"github.com/charmbracelet/log"
)

// Bootstrap returns the logger used before a configuration is applied, while
// controllers are discovered and the command line is built.
// An invalid level falls back to warn.
func Bootstrap(w io.Writer, level Level) *slog.Logger {
	if level == LevelNotSet {
		level = LevelWarn
	}
	charmLevel, err := level.charm()
	if err != nil {
		charmLevel = log.WarnLevel
	}
	return slog.New(log.NewWithOptions(w, log.Options{
		Level:     charmLevel,
		Prefix:    BaseLogger,
		Formatter: log.TextFormatter,
	}))
}
