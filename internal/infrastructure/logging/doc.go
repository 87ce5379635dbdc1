// Package logging provides structured logging for the LLTF tooling.
//
// This package wraps Go's standard log/slog package to provide
// consistent, structured logging across the module.
//
// # Features
//
//   - JSON output for production (machine-parsable)
//   - Text output for development (human-readable)
//   - Default fields (service, version) on all log entries
//   - Level-based filtering (debug, info, warn, error)
//   - Thread-safe for concurrent use
//
// # Configuration
//
// Logging is configured via the LoggingConfig in config.yaml:
//
//	logging:
//	  level: "info"      # debug, info, warn, error
//	  format: "json"     # json, text
//	  output: "stdout"   # stdout, stderr
//
// # Usage
//
//	logger := logging.New(cfg.Logging, "1.0.0")
//	logger.Info("session opened", "system", "M000010263")
//	logger.Error("native call failed", "error", err)
//
// Library packages (filter, descriptor, history) accept any logger
// implementing their small Logger interface; *Logger satisfies all of
// them.
package logging
