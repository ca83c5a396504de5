// Package logging provides structured logging utilities for webteam-hubot.
//
// This package centralizes logging patterns to ensure consistent, structured
// logging throughout the codebase using the standard library's slog package.
//
// # Key Features
//
//   - Structured logging with slog
//   - Consistent attribute naming across the codebase
//   - Token sanitization so shared secrets never reach the logs
//
// # Usage Patterns
//
// Create a logger with standard attributes:
//
//	logger := logging.WithCommand(slog.Default(), "explain")
//	logger.Info("lookup complete", logging.Status("success"))
//
// Sanitize sensitive data before logging:
//
//	logger.Warn("token mismatch", logging.Token(submitted))
package logging
