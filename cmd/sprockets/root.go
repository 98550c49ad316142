// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/charmbracelet/fang"

	"github.com/sprockets/sprockets/pkg/types"
)

// Version is the sprockets version (set via -ldflags).
var Version = "0.0.0"

// versionTemplate renders --version as "sprockets v<version> ".
const versionTemplate = "{{.Name}} v{{.Version}} \n"

// Execute runs sprockets with the process arguments and exits with the
// resulting status. It is called by main.main().
func Execute() {
	app, err := NewApp(Dependencies{})
	if err != nil {
		os.Exit(int(types.ExitFailure))
	}

	if err := app.Run(context.Background(), os.Args[1:]); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code))
		}
		os.Exit(int(types.ExitFailure))
	}
}

// fangOptions configures fang for the sprockets grammar. The completion and
// man commands are disabled because every root subcommand is a controller.
func fangOptions() []fang.Option {
	return []fang.Option{
		fang.WithVersion(Version),
		fang.WithoutCompletions(),
		fang.WithoutManpage(),
		fang.WithErrorHandler(errorHandler),
	}
}

// errorHandler prints errors with fang's default styling, followed by the
// issue catalog entry an ExitError refers to. ExitErrors without Err were
// already reported and only render their issue.
func errorHandler(w io.Writer, styles fang.Styles, err error) {
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		fang.DefaultErrorHandler(w, styles, err)
		return
	}
	if exitErr.Err != nil {
		fang.DefaultErrorHandler(w, styles, err)
	}
	if exitErr.IssueID != 0 {
		renderIssue(w, exitErr.IssueID)
	}
}
