// Package logging provides structured logging utilities for the dashboard
// service and CLI.
//
// Every component logs through log/slog. This package installs the default
// handler: JSON on stderr, the level taken from LOG_LEVEL (or an explicit
// flag), and module/version attributes on every record. Debug level also
// records the source location.
//
// # Usage
//
//	func main() {
//	    logging.SetDefaultStructuredLogger("sitradd", version)
//	    slog.Info("starting", "port", 8080)
//	}
//
// The CLI sets the level from its --log-level flag instead:
//
//	logging.SetDefaultStructuredLoggerWithLevel("sitrad", version, cmd.String("log-level"))
//
// # Output Format
//
//	{
//	    "time": "2025-01-15T10:30:00.123Z",
//	    "level": "WARN",
//	    "msg": "instrument values unavailable",
//	    "module": "sitradd",
//	    "version": "v1.0.0",
//	    "instrumentId": 12,
//	    "code": "SERVICE_UNAVAILABLE"
//	}
package logging
