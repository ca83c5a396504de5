package bot

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	"github.com/MrE-Fog/webteam-hubot/internal/logging"
)

// Responder produces a chat reply for the text captured by a matched
// pattern. Each invocation is independent and stateless.
type Responder func(ctx context.Context, text string) string

type route struct {
	name    string
	pattern *regexp.Regexp
	respond Responder
}

// Dispatcher routes chat messages to registered responders.
type Dispatcher struct {
	logger *slog.Logger
	routes []route
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher(logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		logger: logging.WithService(logger, "dispatcher"),
	}
}

// Hear registers a responder for messages matching pattern. The responder
// receives the first capture group when the pattern has one, otherwise the
// whole match. Earlier registrations take precedence.
func (d *Dispatcher) Hear(name string, pattern *regexp.Regexp, respond Responder) {
	d.routes = append(d.routes, route{name: name, pattern: pattern, respond: respond})
}

// HearCommand registers a responder for "name <text>" style messages,
// e.g. HearCommand("meet", ...) matches "meet @alice @bob" and passes
// "@alice @bob" to the responder. The bare command with no argument matches
// too, with empty text.
func (d *Dispatcher) HearCommand(name string, respond Responder) {
	pattern := regexp.MustCompile(`^` + regexp.QuoteMeta(name) + `(?:\s+(.*))?$`)
	d.Hear(name, pattern, respond)
}

// Dispatch routes a chat message to the first matching responder and returns
// its reply. The second return value reports whether any pattern matched.
func (d *Dispatcher) Dispatch(ctx context.Context, message string) (string, bool) {
	message = strings.TrimSpace(message)

	for _, r := range d.routes {
		m := r.pattern.FindStringSubmatch(message)
		if m == nil {
			continue
		}

		text := m[0]
		if len(m) > 1 {
			text = m[1]
		}

		d.logger.Debug("dispatching message", logging.Command(r.name))
		return r.respond(ctx, text), true
	}

	return "", false
}
