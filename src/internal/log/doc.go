// Package log provides simple leveled logging for dovado.
//
// This package implements a lightweight logging system with colored output
// and support for different log levels: DEBUG, INFO, WARN, and ERROR.
// It provides global logging functions that can be used throughout the application.
//
// # Log Levels
//
//   - DEBUG: Protocol traffic (send/recv/skip lines) and other diagnostics
//   - INFO: Connection and query progress
//   - WARN: Failures that are reported to the caller anyway
//   - ERROR: Error messages for failures and exceptions
//
// The CLI maps -v to INFO and -vv to DEBUG; without flags only errors are shown.
//
// # Output
//
// Errors always go to stderr. Other levels go to stdout unless SetForceStdErr(true)
// is called, which the CLI does so that stdout carries only command output.
// ANSI colours are used only when the target stream is a terminal.
//
// # Example Usage
//
//	log.SetLevel(log.LevelDebug)
//	log.Infof("Connecting to %s", addr)
//	log.Debugf("send %s", line)
//
// The package uses global state for simplicity; configure it once at startup.
package log
