package runner

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/aretw0/waypoint/internal/logging"
	"github.com/aretw0/waypoint/pkg/automata"
)

// maxLineSize bounds a single scanned line. Lines above the sanitizer limit
// but below this size are skipped rather than aborting the run.
const maxLineSize = 1 << 20

// Stats summarizes a run.
type Stats struct {
	Lines    int
	Messages int
	Skipped  int
	Returned int
	Rounds   int
}

// Runner handles the feeding loop of a string machine.
type Runner struct {
	machine      *automata.Machine[string]
	reporter     Reporter
	extract      func(string) (string, bool)
	sanitizer    Sanitizer
	logger       *slog.Logger
	stopWhenDone bool
	strict       bool
}

// New creates a Runner for machine. Without a reporter returned paths are
// only counted.
func New(machine *automata.Machine[string], opts ...Option) *Runner {
	r := &Runner{
		machine:   machine,
		reporter:  nopReporter{},
		extract:   trimmedLine,
		sanitizer: DefaultSanitizer(),
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func trimmedLine(line string) (string, bool) {
	line = strings.TrimSpace(line)
	return line, line != ""
}

// Run starts the machine and feeds it every line of in until EOF, context
// cancellation or, with WithStopWhenDone, until no instance is left.
func (r *Runner) Run(ctx context.Context, in io.Reader) (Stats, error) {
	var stats Stats
	if err := r.machine.Start(ctx); err != nil {
		return stats, fmt.Errorf("failed to start machine: %w", err)
	}
	proc := automata.NewProcessor(r.machine, r.extract)

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 4096), maxLineSize)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		stats.Lines++

		line, err := r.sanitizer.Clean(scanner.Text())
		if err != nil {
			if r.strict {
				return stats, fmt.Errorf("line %d: %w", stats.Lines, err)
			}
			r.logger.Warn("input line skipped", "line", stats.Lines, "error", err)
			stats.Skipped++
			continue
		}

		before := r.machine.Round()
		returned, err := proc.Feed(ctx, line)
		if err != nil {
			return stats, fmt.Errorf("line %d: %w", stats.Lines, err)
		}
		if r.machine.Round() == before {
			stats.Skipped++
			continue
		}
		stats.Messages++

		for _, inst := range returned {
			stats.Returned++
			if err := r.reporter.Report(ctx, NewReport(stats.Lines, line, inst)); err != nil {
				return stats, fmt.Errorf("failed to report: %w", err)
			}
		}

		if r.stopWhenDone && r.machine.Done() {
			r.logger.Debug("machine done, stopping", "line", stats.Lines)
			break
		}
	}
	stats.Rounds = r.machine.Round()
	if err := scanner.Err(); err != nil {
		return stats, fmt.Errorf("failed to read input: %w", err)
	}
	return stats, nil
}
