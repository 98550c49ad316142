// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"

	"github.com/sprockets/sprockets/internal/issue"
	"github.com/sprockets/sprockets/pkg/types"
)

// ExitError signals a non-zero exit code without forcing os.Exit in RunE handlers.
// An ExitError without Err has already been reported to the user.
type ExitError struct {
	Code types.ExitCode
	Err  error
	// IssueID is the optional issue catalog entry rendered after the error.
	IssueID issue.Id
}

// Error returns the error message for ExitError.
func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

// Unwrap returns the underlying error, if any.
func (e *ExitError) Unwrap() error {
	return e.Err
}

func usageError(err error) *ExitError {
	return &ExitError{Code: types.ExitUsage, Err: err}
}

func controllerNotFound(name string) *ExitError {
	return &ExitError{
		Code:    types.ExitUsage,
		Err:     fmt.Errorf("unknown controller %q", name),
		IssueID: issue.ControllerNotFoundId,
	}
}

// renderIssue writes the catalog entry id as terminal markdown, falling back
// to the raw markdown when rendering fails.
func renderIssue(w io.Writer, id issue.Id) {
	entry := issue.Get(id)
	if entry == nil {
		return
	}
	rendered, err := entry.Render("auto")
	if err != nil {
		rendered = string(entry.MarkdownMsg())
	}
	fmt.Fprint(w, rendered)
}
