package bot

import (
	"context"
	"regexp"
	"testing"
)

func echoResponder(prefix string) Responder {
	return func(_ context.Context, text string) string {
		return prefix + ":" + text
	}
}

func TestHearCommand(t *testing.T) {
	tests := []struct {
		name      string
		message   string
		wantReply string
		wantMatch bool
	}{
		{
			name:      "command with argument",
			message:   "meet @alice @bob",
			wantReply: "meet:@alice @bob",
			wantMatch: true,
		},
		{
			name:      "bare command",
			message:   "meet",
			wantReply: "meet:",
			wantMatch: true,
		},
		{
			name:      "surrounding whitespace trimmed",
			message:   "  meet @alice  ",
			wantReply: "meet:@alice",
			wantMatch: true,
		},
		{
			name:      "unknown command",
			message:   "coffee please",
			wantMatch: false,
		},
		{
			name:      "command embedded mid-sentence does not match",
			message:   "let's meet later",
			wantMatch: false,
		},
	}

	d := NewDispatcher(nil)
	d.HearCommand("meet", echoResponder("meet"))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply, ok := d.Dispatch(context.Background(), tt.message)
			if ok != tt.wantMatch {
				t.Fatalf("Dispatch(%q) matched = %v, want %v", tt.message, ok, tt.wantMatch)
			}
			if ok && reply != tt.wantReply {
				t.Errorf("Dispatch(%q) = %q, want %q", tt.message, reply, tt.wantReply)
			}
		})
	}
}

func TestDispatchFirstMatchWins(t *testing.T) {
	d := NewDispatcher(nil)
	d.HearCommand("explain", echoResponder("first"))
	d.Hear("catchall", regexp.MustCompile(`^explain`), echoResponder("second"))

	reply, ok := d.Dispatch(context.Background(), "explain cdn")
	if !ok {
		t.Fatal("expected a match")
	}
	if reply != "first:cdn" {
		t.Errorf("reply = %q, want the first registered responder", reply)
	}
}

func TestHearWholeMatchWithoutCaptureGroup(t *testing.T) {
	d := NewDispatcher(nil)
	d.Hear("ping", regexp.MustCompile(`^ping$`), echoResponder("pong"))

	reply, ok := d.Dispatch(context.Background(), "ping")
	if !ok {
		t.Fatal("expected a match")
	}
	if reply != "pong:ping" {
		t.Errorf("reply = %q, want whole match passed through", reply)
	}
}
