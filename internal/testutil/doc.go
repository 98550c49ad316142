// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helper functions for tests that handle errors
// appropriately, reducing boilerplate and ensuring consistent error handling.
//
// Common helpers include file operations (MustWriteFile, MustMkdirAll),
// resource cleanup (MustClose), a Buffer that log handlers can share across
// goroutines, and a SyslogRecorder standing in for a syslog connection.
package testutil
