// Package logging provides structured logging utilities for deviceinfo components.
//
// # Overview
//
// This package wraps the standard library slog package with project defaults
// so the CLI, the daemon and the plugin binary all emit the same JSON shape.
// It supports environment-based log level configuration, module/version
// context injection, and source location tracking for debug logs.
//
// # Log Levels
//
// Supported log levels (case-insensitive):
//   - DEBUG: Detailed diagnostic information with source location
//   - INFO: General informational messages (default)
//   - WARN/WARNING: Warning messages, including degraded collections
//   - ERROR: Error messages for failures requiring attention
//
// # Usage
//
//	func main() {
//	    logging.SetDefaultStructuredLogger("deviceinfod", version)
//	    slog.Info("collecting snapshot", "requestID", id)
//	}
//
// The LOG_LEVEL environment variable controls verbosity when no explicit level
// is passed:
//
//	LOG_LEVEL=debug deviceinfo snapshot
//
// # Output Format
//
// All logs are written to stderr in JSON format:
//
//	{
//	    "time": "2025-01-15T10:30:00.123Z",
//	    "level": "WARN",
//	    "msg": "collection degraded",
//	    "module": "deviceinfo",
//	    "version": "v1.0.0",
//	    "source": "mac"
//	}
package logging
