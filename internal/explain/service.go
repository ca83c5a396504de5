package explain

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"

	"github.com/MrE-Fog/webteam-hubot/internal/logging"
)

// UsageText is returned for empty, help-style, and unmatched queries.
const UsageText = "Type `/explain` followed by a term from the team glossary, " +
	"e.g. `/explain cdn`. If the term has an alias, that works too. " +
	"Feeling philosophical? Try `/explain why`."

// nobodyKnows is returned when the Why sheet has no rows to draw from.
const nobodyKnows = "Nobody knows why."

// Service answers /explain queries from a spreadsheet-backed glossary.
// It is safe for concurrent use; every lookup fetches fresh rows.
type Service struct {
	source SheetSource
	logger *slog.Logger

	// intn draws a uniform index in [0, n). Replaced in tests.
	intn func(n int) int
}

// NewService creates a lookup service on top of the given sheet source.
func NewService(source SheetSource, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		source: source,
		logger: logging.WithService(logger, "explain"),
		intn:   rand.IntN,
	}
}

// Lookup resolves a raw user query to a chat response. Unmatched and
// help-style queries resolve to UsageText; only backend failures are
// returned as errors (wrapping ErrBackendUnavailable).
func (s *Service) Lookup(ctx context.Context, query string) (string, error) {
	query = Normalize(query)
	if query == "" {
		return UsageText, nil
	}

	if query == "why" {
		return s.why(ctx)
	}

	rows, err := s.source.LoadSheet(ctx, ExplainSheet)
	if err != nil {
		return "", fmt.Errorf("failed to load sheet %s: %w", ExplainSheet, err)
	}

	row, ok := FindRow(rows, query)
	if !ok {
		s.logger.Debug("no glossary match", slog.String("query", query))
		return UsageText, nil
	}

	return FormatTable(row), nil
}

// why returns a pseudo-random entry from the Why sheet. An empty sheet is an
// explicit handled case, not a failed dereference.
func (s *Service) why(ctx context.Context) (string, error) {
	rows, err := s.source.LoadSheet(ctx, WhySheet)
	if err != nil {
		return "", fmt.Errorf("failed to load sheet %s: %w", WhySheet, err)
	}

	row, err := s.randomRow(rows)
	if err != nil {
		s.logger.Warn("why sheet has no rows", logging.Err(err))
		return nobodyKnows, nil
	}

	return row[ColWhy], nil
}

// randomRow draws a uniform row from rows, or ErrNotFound when there is
// nothing to draw from. The draw covers every row exactly once per index,
// including the last one.
func (s *Service) randomRow(rows []Row) (Row, error) {
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return rows[s.intn(len(rows))], nil
}

// FindRow scans rows in order for the first one whose Explain column equals
// the normalized query, or whose comma-separated Alias column contains a
// token equal to it.
func FindRow(rows []Row, query string) (Row, bool) {
	for _, row := range rows {
		if Normalize(row[ColExplain]) == query {
			return row, true
		}
		for _, alias := range strings.Split(row[ColAlias], ",") {
			if alias = Normalize(alias); alias != "" && alias == query {
				return row, true
			}
		}
	}
	return nil, false
}

// Normalize lower-cases and trims a query or cell value for matching.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
