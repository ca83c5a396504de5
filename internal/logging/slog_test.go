package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestSanitizeToken(t *testing.T) {
	tests := []struct {
		name  string
		token string
		want  string
	}{
		{name: "empty token", token: "", want: "<empty>"},
		{name: "short token", token: "abc", want: "[token:3 chars]"},
		{name: "long token", token: strings.Repeat("x", 40), want: "[token:40 chars]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeToken(tt.token); got != tt.want {
				t.Errorf("SanitizeToken(%q) = %q, want %q", tt.token, got, tt.want)
			}
		})
	}
}

func TestTokenNeverLogsContent(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	logger.Info("auth failed", Token("super-secret-value"))

	if strings.Contains(buf.String(), "super-secret-value") {
		t.Errorf("log output leaked the token: %s", buf.String())
	}
	if !strings.Contains(buf.String(), "[token:18 chars]") {
		t.Errorf("log output missing sanitized token: %s", buf.String())
	}
}

func TestErrNilIsOmitted(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	logger.Info("operation complete", Err(nil))

	if strings.Contains(buf.String(), "error=") {
		t.Errorf("nil error should be omitted from output: %s", buf.String())
	}
}

func TestErrLogsMessage(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	logger.Error("operation failed", Err(errors.New("boom")))

	if !strings.Contains(buf.String(), "error=boom") {
		t.Errorf("expected error attribute in output: %s", buf.String())
	}
}

func TestWithHelpers(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	WithCommand(WithService(logger, "sheets"), "explain").Info("hello")

	out := buf.String()
	if !strings.Contains(out, "service=sheets") {
		t.Errorf("missing service attribute: %s", out)
	}
	if !strings.Contains(out, "command=explain") {
		t.Errorf("missing command attribute: %s", out)
	}
}
