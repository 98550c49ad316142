// SPDX-License-Identifier: MPL-2.0

// Package logging builds the logging setup of a sprockets run.
//
// A Config is a tree of formatters, handlers and named loggers. Build derives
// one from the base template for an application, Apply turns it into a
// Manager, and Manager.Logger hands out *slog.Logger values backed by
// charmbracelet/log. Logger names are dotted: "myapp.blog" inherits its level
// and handlers from "myapp" and then from the root logger, unless a logger
// on the way disables propagation.
//
// There is no process-wide state. The Manager is built once per run and passed
// to the controller through its Invocation.
package logging
