package automata

import (
	"fmt"
)

// Builder assembles a Graph. Methods record the first error they meet and
// Build reports it, so calls can be chained without checks in between.
// A Builder cannot be used after Build.
type Builder[M any] struct {
	defs    []Definition[M]
	names   map[HierarchicalName]StateID
	initial []StateID
	err     error
	frozen  bool
}

// NewBuilder returns an empty Builder.
func NewBuilder[M any]() *Builder[M] {
	return &Builder[M]{names: make(map[HierarchicalName]StateID)}
}

// MatchOne adds a MatchOne state.
func (b *Builder[M]) MatchOne(name HierarchicalName, c Condition[M]) StateID {
	if c == nil {
		b.setErr(fmt.Errorf("%w: %q has no condition", ErrInvalidDefinition, name))
		return NoState
	}
	return b.Add(NewMatchOne(name, c))
}

// MatchRepeat adds a MatchRepeat state.
func (b *Builder[M]) MatchRepeat(name HierarchicalName, c Condition[M]) StateID {
	if c == nil {
		b.setErr(fmt.Errorf("%w: %q has no condition", ErrInvalidDefinition, name))
		return NoState
	}
	return b.Add(NewMatchRepeat(name, c))
}

// Return adds a Return state.
func (b *Builder[M]) Return(name HierarchicalName) StateID {
	return b.Add(NewReturn[M](name))
}

// Add registers a definition and returns its handle. Names must be unique
// and non-empty.
func (b *Builder[M]) Add(def Definition[M]) StateID {
	if !b.usable() {
		return NoState
	}
	if def == nil {
		b.setErr(fmt.Errorf("%w: nil definition", ErrInvalidDefinition))
		return NoState
	}
	name := def.Name()
	if name.IsZero() {
		b.setErr(fmt.Errorf("%w: empty name", ErrInvalidDefinition))
		return NoState
	}
	if _, dup := b.names[name]; dup {
		b.setErr(fmt.Errorf("%w: duplicate name %q", ErrInvalidDefinition, name))
		return NoState
	}
	id := StateID(len(b.defs))
	b.defs = append(b.defs, def)
	b.names[name] = id
	return id
}

// SetTrue sets the successor taken by from when its condition holds.
// Passing NoState clears it.
func (b *Builder[M]) SetTrue(from, to StateID) *Builder[M] {
	if s := b.brancher(from, to); s != nil {
		s.setTrue(to)
	}
	return b
}

// SetFalse sets the successor taken by from when its condition fails.
// Passing NoState clears it.
func (b *Builder[M]) SetFalse(from, to StateID) *Builder[M] {
	if s := b.brancher(from, to); s != nil {
		s.setFalse(to)
	}
	return b
}

// Initial appends states instantiated by Machine.Start.
func (b *Builder[M]) Initial(ids ...StateID) *Builder[M] {
	if !b.usable() {
		return b
	}
	for _, id := range ids {
		if !b.valid(id) {
			b.setErr(fmt.Errorf("%w: initial state %d", ErrUnknownState, id))
			return b
		}
		b.initial = append(b.initial, id)
	}
	return b
}

// Lookup returns the handle registered under name.
func (b *Builder[M]) Lookup(name HierarchicalName) (StateID, bool) {
	id, ok := b.names[name]
	return id, ok
}

// Err returns the first error recorded so far.
func (b *Builder[M]) Err() error {
	return b.err
}

// Build freezes the builder and returns the graph.
func (b *Builder[M]) Build() (*Graph[M], error) {
	if b.frozen {
		return nil, ErrFrozen
	}
	b.frozen = true
	if b.err != nil {
		return nil, b.err
	}
	if len(b.initial) == 0 {
		return nil, fmt.Errorf("%w: no initial state", ErrInvalidDefinition)
	}

	g := &Graph[M]{
		defs:    make([]Definition[M], len(b.defs)),
		names:   make(map[HierarchicalName]StateID, len(b.names)),
		initial: make([]StateID, len(b.initial)),
	}
	copy(g.defs, b.defs)
	copy(g.initial, b.initial)
	for k, v := range b.names {
		g.names[k] = v
	}
	return g, nil
}

func (b *Builder[M]) brancher(from, to StateID) branchSetter {
	if !b.usable() {
		return nil
	}
	if !b.valid(from) {
		b.setErr(fmt.Errorf("%w: %d", ErrUnknownState, from))
		return nil
	}
	if to != NoState && !b.valid(to) {
		b.setErr(fmt.Errorf("%w: %d", ErrUnknownState, to))
		return nil
	}
	s, ok := b.defs[from].(branchSetter)
	if !ok {
		b.setErr(fmt.Errorf("%w: %q has no successors", ErrInvalidDefinition, b.defs[from].Name()))
		return nil
	}
	return s
}

func (b *Builder[M]) valid(id StateID) bool {
	return id >= 0 && int(id) < len(b.defs)
}

func (b *Builder[M]) usable() bool {
	if b.frozen {
		b.setErr(ErrFrozen)
		return false
	}
	return b.err == nil
}

func (b *Builder[M]) setErr(err error) {
	if b.err == nil {
		b.err = err
	}
}

// Graph is an immutable set of state definitions addressed by StateID.
type Graph[M any] struct {
	defs    []Definition[M]
	names   map[HierarchicalName]StateID
	initial []StateID
}

// Len returns the number of states.
func (g *Graph[M]) Len() int {
	return len(g.defs)
}

// Definition returns the definition for id.
func (g *Graph[M]) Definition(id StateID) (Definition[M], bool) {
	if id < 0 || int(id) >= len(g.defs) {
		return nil, false
	}
	return g.defs[id], true
}

// Initial returns the initial states.
func (g *Graph[M]) Initial() []StateID {
	out := make([]StateID, len(g.initial))
	copy(out, g.initial)
	return out
}

// Lookup returns the handle of the state called name.
func (g *Graph[M]) Lookup(name HierarchicalName) (StateID, bool) {
	id, ok := g.names[name]
	return id, ok
}

// Successors returns the true and false successors of id that are set.
// States that are not a Brancher have none.
func (g *Graph[M]) Successors(id StateID) []StateID {
	def, ok := g.Definition(id)
	if !ok {
		return nil
	}
	br, ok := def.(Brancher)
	if !ok {
		return nil
	}
	var out []StateID
	for _, s := range []StateID{br.TrueCase(), br.FalseCase()} {
		if s != NoState {
			out = append(out, s)
		}
	}
	return out
}
