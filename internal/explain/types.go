package explain

import (
	"context"
	"errors"
)

// Sheet names within the team glossary spreadsheet.
const (
	// ExplainSheet holds the term definitions.
	ExplainSheet = "Explain"

	// WhySheet holds the one-liners for the "why" query.
	WhySheet = "Why"
)

// Column names of interest on the Explain sheet.
const (
	ColExplain    = "Explain"
	ColAlias      = "Alias"
	ColDefinition = "Definition"
	ColPM         = "PM"
	ColTeam       = "Team"
	ColContact    = "Contact"
	ColLink       = "Link"

	// ColWhy is the single column of interest on the Why sheet.
	ColWhy = "why"
)

// Row is a single spreadsheet row, keyed by column name. Missing columns
// read as the empty string. No uniqueness is enforced across rows; the first
// matching row wins.
type Row map[string]string

// SheetSource retrieves the rows of a named sheet from the backing
// spreadsheet. Implementations authenticate and load spreadsheet metadata
// on every call; failures to reach the backend must wrap
// ErrBackendUnavailable.
type SheetSource interface {
	LoadSheet(ctx context.Context, name string) ([]Row, error)
}

// ErrBackendUnavailable indicates the spreadsheet backend could not be
// reached or authenticated against. Callers should surface a user-visible
// failure message rather than crash.
var ErrBackendUnavailable = errors.New("spreadsheet backend unavailable")

// ErrNotFound indicates a row lookup produced no result.
var ErrNotFound = errors.New("no matching row found")
