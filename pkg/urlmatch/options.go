package urlmatch

import (
	"log/slog"

	"github.com/aretw0/waypoint/internal/logging"
)

// MatchEvent describes one completed Match call.
type MatchEvent struct {
	URL      string
	Found    bool
	Captures int
	// Depth is the number of URL tokens consumed by the walk.
	Depth int
}

// Hooks are optional callbacks invoked by the matcher.
type Hooks struct {
	OnMatch func(MatchEvent)
}

type options struct {
	logger        *slog.Logger
	hooks         Hooks
	queryCaptures bool
}

// Option configures a Matcher.
type Option func(*options)

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithHooks registers match callbacks.
func WithHooks(hooks Hooks) Option {
	return func(o *options) {
		o.hooks = hooks
	}
}

// WithQueryCaptures makes the matcher capture query values for template
// parameters declared without a literal value ("?tab={}").
func WithQueryCaptures(enabled bool) Option {
	return func(o *options) {
		o.queryCaptures = enabled
	}
}

func defaultOptions() options {
	return options{logger: logging.NewNop()}
}
