package logging

import (
	"fmt"
	"log/slog"
)

// Common log attribute keys for consistent naming across the codebase.
const (
	KeyOperation = "operation"
	KeyService   = "service"
	KeyCommand   = "command"
	KeySheet     = "sheet"
	KeyStatus    = "status"
	KeyError     = "error"
	KeyToken     = "token"
)

// Status values for consistent logging.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// WithOperation returns a logger with the operation attribute set.
func WithOperation(logger *slog.Logger, operation string) *slog.Logger {
	return logger.With(slog.String(KeyOperation, operation))
}

// WithService returns a logger with the service attribute set.
func WithService(logger *slog.Logger, service string) *slog.Logger {
	return logger.With(slog.String(KeyService, service))
}

// WithCommand returns a logger with the slash-command attribute set.
func WithCommand(logger *slog.Logger, command string) *slog.Logger {
	return logger.With(slog.String(KeyCommand, command))
}

// Operation returns a slog attribute for the operation name.
func Operation(op string) slog.Attr {
	return slog.String(KeyOperation, op)
}

// Command returns a slog attribute for the slash-command name.
func Command(command string) slog.Attr {
	return slog.String(KeyCommand, command)
}

// Sheet returns a slog attribute for a spreadsheet sheet name.
func Sheet(name string) slog.Attr {
	return slog.String(KeySheet, name)
}

// Status returns a slog attribute for the status.
func Status(status string) slog.Attr {
	return slog.String(KeyStatus, status)
}

// Err returns a slog attribute for an error.
// If err is nil, returns an empty Group attribute that will be omitted from
// output, so Err(maybeNilErr) is always safe to pass.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Group("")
	}
	return slog.String(KeyError, err.Error())
}

// SanitizeToken returns a masked version of a shared-secret token for
// logging. Only the length is revealed; even token prefixes can aid attacks.
func SanitizeToken(token string) string {
	if token == "" {
		return "<empty>"
	}
	return fmt.Sprintf("[token:%d chars]", len(token))
}

// Token returns a slog attribute with the sanitized token.
func Token(token string) slog.Attr {
	return slog.String(KeyToken, SanitizeToken(token))
}
