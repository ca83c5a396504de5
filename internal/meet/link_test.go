package meet

import (
	"strings"
	"testing"
)

func TestGenerateLink(t *testing.T) {
	tests := []struct {
		name         string
		participants string
		wantCode     string
	}{
		{
			name:         "two mentions",
			participants: "@alice @bob",
			wantCode:     "alice-bob",
		},
		{
			name:         "single mention",
			participants: "@alice",
			wantCode:     "alice",
		},
		{
			name:         "plain names without mentions",
			participants: "alice bob",
			wantCode:     "alice-bob",
		},
		{
			name:         "empty input",
			participants: "",
			wantCode:     "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GenerateLink(tt.participants)

			wantURL := "https://g.co/meet/" + tt.wantCode
			if !strings.Contains(got, wantURL) {
				t.Errorf("GenerateLink(%q) = %q, want URL %q", tt.participants, got, wantURL)
			}
			if !strings.HasSuffix(got, tt.participants) {
				t.Errorf("GenerateLink(%q) = %q, want suffix %q", tt.participants, got, tt.participants)
			}
			if !strings.HasPrefix(got, "Your Meet is ready: ") {
				t.Errorf("GenerateLink(%q) = %q, missing message prefix", tt.participants, got)
			}
		})
	}
}

func TestGenerateLinkTruncatesCode(t *testing.T) {
	long := "@" + strings.Repeat("a", 100) + " @" + strings.Repeat("b", 100)
	got := GenerateLink(long)

	// Extract the code between the URL prefix and the trailing participant text.
	const prefix = "Your Meet is ready: https://g.co/meet/"
	rest := strings.TrimPrefix(got, prefix)
	code := rest[:strings.Index(rest, " ")]

	if len(code) != maxCodeLen {
		t.Errorf("code length = %d, want %d", len(code), maxCodeLen)
	}
	if !strings.HasPrefix(code, strings.Repeat("a", 59)) {
		t.Errorf("code = %q, want the first participant's name to fill it", code)
	}
}

func TestGenerateLinkShortCodeNotPadded(t *testing.T) {
	got := GenerateLink("@a")
	if !strings.Contains(got, "https://g.co/meet/a ") {
		t.Errorf("GenerateLink(%q) = %q, want untruncated single-letter code", "@a", got)
	}
}
