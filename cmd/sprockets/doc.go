// SPDX-License-Identifier: MPL-2.0

// Package cmd implements the sprockets command line.
//
// Run discovers the installed controllers, builds one Cobra subcommand per
// controller (with the flags each controller contributes), and dispatches the
// parsed invocation: list mode prints the applications registered for the
// controller, otherwise the application alias is resolved, logging is
// configured, and the controller runs until it returns.
package cmd
