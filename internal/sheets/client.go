package sheets

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
	"google.golang.org/api/option"
	sheets "google.golang.org/api/sheets/v4"

	"github.com/MrE-Fog/webteam-hubot/internal/config"
	"github.com/MrE-Fog/webteam-hubot/internal/explain"
	"github.com/MrE-Fog/webteam-hubot/internal/instrumentation"
)

// Client wraps the Google Sheets service for a single spreadsheet.
// It is safe for concurrent use.
type Client struct {
	svc           *sheets.Service
	spreadsheetID string
	metrics       *instrumentation.Metrics
}

// NewClient creates a read-only Sheets client authenticated as the
// configured service account. The optional proxy URL is applied to all
// outbound API calls.
func NewClient(ctx context.Context, cfg *config.Config, metrics *instrumentation.Metrics) (*Client, error) {
	jwtConf := &jwt.Config{
		Email:      cfg.ClientEmail,
		PrivateKey: []byte(cfg.PrivateKey),
		Scopes:     []string{sheets.SpreadsheetsReadonlyScope},
		TokenURL:   google.JWTTokenURL,
	}

	if cfg.ProxyURL != "" {
		proxy, err := url.Parse(cfg.ProxyURL)
		if err != nil {
			return nil, fmt.Errorf("invalid proxy URL %q: %w", cfg.ProxyURL, err)
		}
		base := &http.Client{
			Transport: &http.Transport{Proxy: http.ProxyURL(proxy)},
		}
		ctx = context.WithValue(ctx, oauth2.HTTPClient, base)
	}

	svc, err := sheets.NewService(ctx, option.WithHTTPClient(jwtConf.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("failed to create Sheets service: %w", err)
	}

	if metrics == nil {
		metrics = &instrumentation.Metrics{}
	}

	return &Client{
		svc:           svc,
		spreadsheetID: cfg.SpreadsheetID,
		metrics:       metrics,
	}, nil
}

// SpreadsheetID returns the spreadsheet this client reads from.
func (c *Client) SpreadsheetID() string {
	return c.spreadsheetID
}

// LoadSheet implements explain.SheetSource. It verifies the named sheet
// exists in the spreadsheet, fetches its values, and converts them into
// rows keyed by the header row. Backend failures wrap
// explain.ErrBackendUnavailable so callers can distinguish them from a
// missing sheet.
func (c *Client) LoadSheet(ctx context.Context, name string) ([]explain.Row, error) {
	start := time.Now()
	rows, err := c.loadSheet(ctx, name)

	status := instrumentation.StatusSuccess
	if err != nil {
		status = instrumentation.StatusError
	}
	c.metrics.RecordSheetsOperation(ctx, "load_sheet", status, time.Since(start))

	return rows, err
}

func (c *Client) loadSheet(ctx context.Context, name string) ([]explain.Row, error) {
	meta, err := c.svc.Spreadsheets.Get(c.spreadsheetID).
		Fields("sheets.properties.title").
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to load spreadsheet metadata: %w (%w)",
			err, explain.ErrBackendUnavailable)
	}

	found := false
	for _, sh := range meta.Sheets {
		if sh.Properties != nil && sh.Properties.Title == name {
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("sheet %q not in spreadsheet: %w", name, explain.ErrNotFound)
	}

	values, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, name).
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w (%w)",
			name, err, explain.ErrBackendUnavailable)
	}

	return rowsFromValues(values.Values), nil
}

// rowsFromValues converts a raw Sheets value range into rows keyed by the
// header row. Short rows are padded with empty strings; cells beyond the
// header width are dropped.
func rowsFromValues(values [][]interface{}) []explain.Row {
	if len(values) == 0 {
		return nil
	}

	headers := make([]string, len(values[0]))
	for i, h := range values[0] {
		headers[i] = fmt.Sprint(h)
	}

	rows := make([]explain.Row, 0, len(values)-1)
	for _, raw := range values[1:] {
		row := make(explain.Row, len(headers))
		for i, header := range headers {
			if header == "" {
				continue
			}
			if i < len(raw) {
				row[header] = fmt.Sprint(raw[i])
			} else {
				row[header] = ""
			}
		}
		rows = append(rows, row)
	}

	return rows
}
