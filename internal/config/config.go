package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variable names understood by the bot.
const (
	EnvSpreadsheetID = "HUBOT_SPREADSHEET_ID"
	EnvClientEmail   = "HUBOT_GOOGLE_CLIENT_EMAIL"
	EnvPrivateKey    = "HUBOT_GOOGLE_PRIVATE_KEY"
	EnvMeetToken     = "HUBOT_MEET_TOKEN"
	EnvExplainToken  = "HUBOT_EXPLAIN_TOKEN"
	EnvProxyURL      = "HUBOT_PROXY_URL"
)

// Config holds the immutable bot configuration loaded once at startup.
type Config struct {
	// SpreadsheetID identifies the team glossary spreadsheet.
	SpreadsheetID string

	// ClientEmail is the Google service-account email used to read the
	// spreadsheet.
	ClientEmail string

	// PrivateKey is the service-account private key in PEM format.
	PrivateKey string

	// MeetToken is the shared secret Mattermost sends with /meet webhooks.
	MeetToken string

	// ExplainToken is the shared secret Mattermost sends with /explain
	// webhooks.
	ExplainToken string

	// ProxyURL is an optional HTTP proxy for outbound Google API calls.
	ProxyURL string
}

// Load reads the configuration from the environment. A .env file in the
// working directory is merged in first when present. All required keys must
// be set; the returned error names every missing one so a broken deployment
// fails fast with a single actionable diagnostic.
func Load() (*Config, error) {
	// Ignore the error: a missing .env file just means plain env vars.
	_ = godotenv.Load()

	cfg := &Config{
		SpreadsheetID: os.Getenv(EnvSpreadsheetID),
		ClientEmail:   os.Getenv(EnvClientEmail),
		PrivateKey:    normalizePrivateKey(os.Getenv(EnvPrivateKey)),
		MeetToken:     os.Getenv(EnvMeetToken),
		ExplainToken:  os.Getenv(EnvExplainToken),
		ProxyURL:      os.Getenv(EnvProxyURL),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	var missing []string
	for _, kv := range []struct {
		key   string
		value string
	}{
		{EnvSpreadsheetID, c.SpreadsheetID},
		{EnvClientEmail, c.ClientEmail},
		{EnvPrivateKey, c.PrivateKey},
		{EnvMeetToken, c.MeetToken},
		{EnvExplainToken, c.ExplainToken},
	} {
		if kv.value == "" {
			missing = append(missing, kv.key)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}

// normalizePrivateKey converts escaped "\n" sequences into real newlines.
// Deployment tooling frequently injects the PEM key as a single-line env var.
func normalizePrivateKey(key string) string {
	return strings.ReplaceAll(key, `\n`, "\n")
}
