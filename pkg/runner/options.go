package runner

import (
	"log/slog"
)

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithReporter configures where returned paths are sent.
func WithReporter(rep Reporter) Option {
	return func(r *Runner) {
		r.reporter = rep
	}
}

// WithExtract replaces the default line to message conversion, which trims
// surrounding whitespace and skips blank lines.
func WithExtract(extract func(string) (string, bool)) Option {
	return func(r *Runner) {
		r.extract = extract
	}
}

// WithStopWhenDone stops reading once the machine has no active instance.
func WithStopWhenDone(stop bool) Option {
	return func(r *Runner) {
		r.stopWhenDone = stop
	}
}

// WithStrictInput makes sanitizer failures abort the run instead of
// skipping the offending line.
func WithStrictInput(strict bool) Option {
	return func(r *Runner) {
		r.strict = strict
	}
}

// WithSanitizer replaces DefaultSanitizer.
func WithSanitizer(s Sanitizer) Option {
	return func(r *Runner) {
		r.sanitizer = s
	}
}
