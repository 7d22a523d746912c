package dsl

import (
	"errors"
	"fmt"

	"github.com/aretw0/waypoint/pkg/automata"
)

// ErrMissingKind is returned when a state was added but never given a kind.
var ErrMissingKind = errors.New("state has no kind")

// Builder manages the graph construction.
type Builder[M any] struct {
	states map[string]*StateBuilder[M]
	order  []string
}

// New creates a new graph builder.
func New[M any]() *Builder[M] {
	return &Builder[M]{
		states: make(map[string]*StateBuilder[M]),
	}
}

// Add creates a new state in the graph.
// If the state already exists, it returns the existing builder.
func (b *Builder[M]) Add(name string) *StateBuilder[M] {
	if sb, ok := b.states[name]; ok {
		return sb
	}
	sb := &StateBuilder[M]{
		name:    automata.NewName(name),
		builder: b,
	}
	b.states[name] = sb
	b.order = append(b.order, name)
	return sb
}

// Names returns the declared state names in declaration order.
func (b *Builder[M]) Names() []string {
	out := make([]string, len(b.order))
	copy(out, b.order)
	return out
}

// Build compiles the declared states into an automata graph.
// States are registered in declaration order, so their StateIDs follow it.
func (b *Builder[M]) Build() (*automata.Graph[M], error) {
	ab := automata.NewBuilder[M]()
	ids := make(map[string]automata.StateID, len(b.order))

	for _, name := range b.order {
		sb := b.states[name]
		var id automata.StateID
		switch sb.kind {
		case kindMatchOne:
			id = ab.MatchOne(sb.name, sb.condition)
		case kindMatchRepeat:
			id = ab.MatchRepeat(sb.name, sb.condition)
		case kindReturn:
			id = ab.Return(sb.name)
		case kindCustom:
			id = ab.Add(sb.custom)
		default:
			return nil, fmt.Errorf("failed to build state graph: %q: %w", name, ErrMissingKind)
		}
		if err := ab.Err(); err != nil {
			return nil, fmt.Errorf("failed to build state graph: %w", err)
		}
		ids[name] = id
	}

	resolve := func(from, target string) (automata.StateID, error) {
		if target == "" {
			return automata.NoState, nil
		}
		id, ok := ids[target]
		if !ok {
			return automata.NoState, fmt.Errorf("failed to build state graph: %q -> %q: %w", from, target, automata.ErrUnknownState)
		}
		return id, nil
	}

	for _, name := range b.order {
		sb := b.states[name]
		if sb.trueCase != "" {
			to, err := resolve(name, sb.trueCase)
			if err != nil {
				return nil, err
			}
			ab.SetTrue(ids[name], to)
		}
		if sb.falseCase != "" {
			to, err := resolve(name, sb.falseCase)
			if err != nil {
				return nil, err
			}
			ab.SetFalse(ids[name], to)
		}
		if sb.initial {
			ab.Initial(ids[name])
		}
	}

	g, err := ab.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build state graph: %w", err)
	}
	return g, nil
}
