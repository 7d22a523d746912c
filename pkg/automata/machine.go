package automata

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/waypoint/internal/logging"
)

// RoundEvent summarizes a completed round.
type RoundEvent struct {
	Round    int
	Active   int
	Entered  int
	Returned int
}

// Hooks are optional lifecycle callbacks.
type Hooks[M any] struct {
	OnEnter  func(ctx context.Context, r Running[M])
	OnReturn func(ctx context.Context, r Running[M])
	OnRound  func(ctx context.Context, e RoundEvent)
}

// Option configures a Machine.
type Option[M any] func(*Machine[M])

// WithLogger sets the logger used for round diagnostics.
func WithLogger[M any](logger *slog.Logger) Option[M] {
	return func(m *Machine[M]) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithHooks registers lifecycle callbacks.
func WithHooks[M any](hooks Hooks[M]) Option[M] {
	return func(m *Machine[M]) {
		m.hooks = hooks
	}
}

// WithVerify toggles the request protocol check run before each reduction.
// It is enabled by default.
func WithVerify[M any](enabled bool) Option[M] {
	return func(m *Machine[M]) {
		m.verify = enabled
	}
}

// Machine drives a Graph over a sequence of messages.
//
// A Machine is not safe for concurrent use. Each HandleIncoming call runs a
// full round before it returns.
type Machine[M any] struct {
	graph   *Graph[M]
	current []Running[M]
	round   int
	started bool

	logger *slog.Logger
	hooks  Hooks[M]
	verify bool
}

// New returns a Machine over g. Call Start before feeding messages.
func New[M any](g *Graph[M], opts ...Option[M]) *Machine[M] {
	m := &Machine[M]{
		graph:  g,
		logger: logging.NewNop(),
		verify: true,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Graph returns the graph the machine runs.
func (m *Machine[M]) Graph() *Graph[M] {
	return m.graph
}

// Start creates one instance per initial state and resets the round
// counter. Calling Start again restarts the machine.
func (m *Machine[M]) Start(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if m.graph == nil {
		return fmt.Errorf("%w: nil graph", ErrInvalidDefinition)
	}

	m.current = make([]Running[M], 0, len(m.graph.initial))
	for _, id := range m.graph.initial {
		m.current = append(m.current, m.graph.defs[id].NewRunning(id, nil))
	}
	m.round = 0
	m.started = true
	m.logger.Debug("machine started", "initial", len(m.current))
	return nil
}

// HandleIncoming runs one round for msg and returns the instances reported
// back in this round, or nil when there are none.
//
// A protocol violation discards the round without changing any instance
// and returns an error matching ErrInternal.
func (m *Machine[M]) HandleIncoming(ctx context.Context, msg M) ([]Running[M], error) {
	if !m.started {
		return nil, ErrNotStarted
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	round := m.round + 1
	tc := NewTransitionControl(m.graph, round)
	for _, r := range m.current {
		r.HandleIncoming(msg, tc)
	}

	rr, err := tc.Reduce(m.current, m.verify)
	if err != nil {
		m.logger.Error("round failed", "round", round, "error", err)
		return nil, err
	}
	for _, r := range m.current {
		if c, ok := r.(committer); ok {
			c.commit()
		}
	}

	for _, r := range rr.Entered {
		if e, ok := r.(Enterer[M]); ok {
			e.Enter(rr)
		}
		if m.hooks.OnEnter != nil {
			m.hooks.OnEnter(ctx, r)
		}
	}

	m.current = rr.Active
	m.round = round

	if m.hooks.OnReturn != nil {
		for _, r := range rr.Returned {
			m.hooks.OnReturn(ctx, r)
		}
	}
	if m.hooks.OnRound != nil {
		m.hooks.OnRound(ctx, RoundEvent{
			Round:    round,
			Active:   len(rr.Active),
			Entered:  len(rr.Entered),
			Returned: len(rr.Returned),
		})
	}
	m.logger.Debug("round completed",
		"round", round,
		"active", len(rr.Active),
		"entered", len(rr.Entered),
		"returned", len(rr.Returned),
	)

	if len(rr.Returned) == 0 {
		return nil, nil
	}
	return rr.Returned, nil
}

// committer is implemented by instances that hold back state changes until
// their round is known to be valid.
type committer interface {
	commit()
}

// Current returns a copy of the active set.
func (m *Machine[M]) Current() []Running[M] {
	out := make([]Running[M], len(m.current))
	copy(out, m.current)
	return out
}

// Round returns the number of completed rounds since Start.
func (m *Machine[M]) Round() int {
	return m.round
}

// Done reports whether the machine was started and has no active instance left.
func (m *Machine[M]) Done() bool {
	return m.started && len(m.current) == 0
}
