// Package log provides structured event capture for the configuration
// portal.
//
// This package defines the Logger interface and Event types for recording
// what happened to the parameter tree: pages rendered, submissions
// validated and applied, images stored and loaded, defaults applied. It is
// separate from operational logging (slog) - event capture provides a
// machine-readable trail for auditing configuration changes on a device.
//
// # Basic Usage
//
// Applications configure capture by providing a Logger implementation:
//
//	// For development: log to console via slog
//	cfg.EventLogger = log.NewSlogAdapter(slog.Default())
//
//	// On the device: write to binary file
//	cfg.EventLogger, _ = log.NewFileLogger("/var/lib/webconf/events.wlog")
//
//	// Both: use MultiLogger
//	cfg.EventLogger = log.NewMultiLogger(
//	    log.NewSlogAdapter(slog.Default()),
//	    fileLogger,
//	)
//
// # Event Types
//
// Every event has a category and a source (startup, HTTP, console).
// Storage operations carry a StorageEvent, validation runs carry a
// ValidationEvent and failures carry ErrorEventData.
//
// # File Format
//
// Log files use CBOR encoding with .wlog extension. The webconf-log CLI
// tool provides viewing and statistics.
package log
