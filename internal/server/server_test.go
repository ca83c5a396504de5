package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/MrE-Fog/webteam-hubot/internal/config"
	"github.com/MrE-Fog/webteam-hubot/internal/explain"
	"github.com/MrE-Fog/webteam-hubot/internal/meet"
)

// recordingSource counts backend hits so tests can assert the token check
// happens first.
type recordingSource struct {
	rows  map[string][]explain.Row
	err   error
	loads int
}

func (r *recordingSource) LoadSheet(_ context.Context, name string) ([]explain.Row, error) {
	r.loads++
	if r.err != nil {
		return nil, r.err
	}
	return r.rows[name], nil
}

func testConfig() *config.Config {
	return &config.Config{
		SpreadsheetID: "sheet-id",
		ClientEmail:   "bot@example.iam.gserviceaccount.com",
		PrivateKey:    "key",
		MeetToken:     "meet-secret",
		ExplainToken:  "explain-secret",
	}
}

func newTestServer(source explain.SheetSource) *Server {
	return New(testConfig(), explain.NewService(source, nil), nil, nil)
}

func postForm(t *testing.T, handler http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) commandResponse {
	t.Helper()
	var resp commandResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response is not valid JSON: %v\n%s", err, rec.Body.String())
	}
	return resp
}

func TestMeetWebhook(t *testing.T) {
	srv := newTestServer(&recordingSource{})
	handler := srv.Handler()

	rec := postForm(t, handler, MeetPath, url.Values{
		"token": {"meet-secret"},
		"text":  {"@alice @bob"},
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	resp := decodeResponse(t, rec)
	if resp.ResponseType != "in_channel" {
		t.Errorf("response_type = %q, want in_channel", resp.ResponseType)
	}
	if resp.IconURL == "" {
		t.Error("icon_url should be set for /meet responses")
	}
	if !strings.Contains(resp.Text, "https://g.co/meet/alice-bob") {
		t.Errorf("text = %q, want meet link", resp.Text)
	}
}

func TestMeetWebhookHelp(t *testing.T) {
	srv := newTestServer(&recordingSource{})
	handler := srv.Handler()

	for _, text := range []string{"", "help"} {
		rec := postForm(t, handler, MeetPath, url.Values{
			"token": {"meet-secret"},
			"text":  {text},
		})

		resp := decodeResponse(t, rec)
		if resp.Text != meet.HelpText {
			t.Errorf("text for %q = %q, want help text", text, resp.Text)
		}
	}
}

func TestExplainWebhook(t *testing.T) {
	source := &recordingSource{rows: map[string][]explain.Row{
		explain.ExplainSheet: {
			{
				explain.ColExplain:    "CDN",
				explain.ColDefinition: "Content delivery network",
			},
		},
	}}
	srv := newTestServer(source)
	handler := srv.Handler()

	rec := postForm(t, handler, ExplainPath, url.Values{
		"token": {"explain-secret"},
		"text":  {"cdn"},
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	resp := decodeResponse(t, rec)
	if resp.ResponseType != "ephemeral" {
		t.Errorf("response_type = %q, want ephemeral", resp.ResponseType)
	}
	if !strings.Contains(resp.Text, "| CDN | Content delivery network |") {
		t.Errorf("text = %q, want definition table", resp.Text)
	}
}

func TestExplainWebhookHelpVariants(t *testing.T) {
	source := &recordingSource{}
	srv := newTestServer(source)
	handler := srv.Handler()

	for _, text := range []string{"", "help", "-h", "--help"} {
		rec := postForm(t, handler, ExplainPath, url.Values{
			"token": {"explain-secret"},
			"text":  {text},
		})

		resp := decodeResponse(t, rec)
		if resp.Text != explain.UsageText {
			t.Errorf("text for %q = %q, want usage text", text, resp.Text)
		}
	}

	if source.loads != 0 {
		t.Errorf("help queries hit the backend %d times", source.loads)
	}
}

func TestExplainWebhookBackendDown(t *testing.T) {
	source := &recordingSource{
		err: fmt.Errorf("dial tcp: %w", explain.ErrBackendUnavailable),
	}
	srv := newTestServer(source)
	handler := srv.Handler()

	rec := postForm(t, handler, ExplainPath, url.Values{
		"token": {"explain-secret"},
		"text":  {"cdn"},
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (failure is reported in the chat text)", rec.Code)
	}
	resp := decodeResponse(t, rec)
	if resp.Text != backendDownText {
		t.Errorf("text = %q, want backend failure message", resp.Text)
	}
}

func TestWebhookRejectsBadTokenBeforeBackendCall(t *testing.T) {
	source := &recordingSource{}
	srv := newTestServer(source)
	handler := srv.Handler()

	tests := []struct {
		path  string
		token string
	}{
		{path: MeetPath, token: "wrong"},
		{path: ExplainPath, token: "wrong"},
		{path: ExplainPath, token: ""},
		{path: ExplainPath, token: "meet-secret"}, // other command's token
	}

	for _, tt := range tests {
		rec := postForm(t, handler, tt.path, url.Values{
			"token": {tt.token},
			"text":  {"cdn"},
		})

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("POST %s with token %q: status = %d, want 401", tt.path, tt.token, rec.Code)
		}
	}

	if source.loads != 0 {
		t.Errorf("unauthorized requests hit the backend %d times", source.loads)
	}
}

func TestWebhookRejectsNonPost(t *testing.T) {
	srv := newTestServer(&recordingSource{})
	handler := srv.Handler()

	req := httptest.NewRequest(http.MethodGet, MeetPath, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET status = %d, want 405", rec.Code)
	}
}

func TestDispatcherSharesCommandLogic(t *testing.T) {
	source := &recordingSource{rows: map[string][]explain.Row{
		explain.ExplainSheet: {
			{
				explain.ColExplain:    "CDN",
				explain.ColDefinition: "Content delivery network",
			},
		},
	}}
	srv := newTestServer(source)

	reply, ok := srv.Dispatcher().Dispatch(context.Background(), "explain cdn")
	if !ok {
		t.Fatal("dispatcher did not match 'explain cdn'")
	}
	if !strings.Contains(reply, "Content delivery network") {
		t.Errorf("reply = %q, want definition table", reply)
	}

	reply, ok = srv.Dispatcher().Dispatch(context.Background(), "meet @alice")
	if !ok {
		t.Fatal("dispatcher did not match 'meet @alice'")
	}
	if !strings.Contains(reply, "https://g.co/meet/alice") {
		t.Errorf("reply = %q, want meet link", reply)
	}
}
