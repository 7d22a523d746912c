package dsl

import "github.com/aretw0/waypoint/pkg/automata"

type kind uint8

const (
	kindNone kind = iota
	kindMatchOne
	kindMatchRepeat
	kindReturn
	kindCustom
)

// StateBuilder provides a fluent API for configuring a state.
type StateBuilder[M any] struct {
	name      automata.HierarchicalName
	kind      kind
	condition automata.Condition[M]
	custom    automata.Definition[M]
	trueCase  string
	falseCase string
	initial   bool
	builder   *Builder[M]
}

// MatchOne makes the state consume a single message matching c.
func (s *StateBuilder[M]) MatchOne(c automata.Condition[M]) *StateBuilder[M] {
	s.kind = kindMatchOne
	s.condition = c
	return s
}

// MatchRepeat makes the state consume messages for as long as c matches.
func (s *StateBuilder[M]) MatchRepeat(c automata.Condition[M]) *StateBuilder[M] {
	s.kind = kindMatchRepeat
	s.condition = c
	return s
}

// Return marks the state as a return point.
func (s *StateBuilder[M]) Return() *StateBuilder[M] {
	s.kind = kindReturn
	s.condition = nil
	return s
}

// Custom uses def as the state. Its name replaces the declared one.
func (s *StateBuilder[M]) Custom(def automata.Definition[M]) *StateBuilder[M] {
	s.kind = kindCustom
	s.custom = def
	return s
}

// True sets the successor taken when the condition holds.
func (s *StateBuilder[M]) True(target string) *StateBuilder[M] {
	s.trueCase = target
	return s
}

// False sets the successor taken when the condition fails.
func (s *StateBuilder[M]) False(target string) *StateBuilder[M] {
	s.falseCase = target
	return s
}

// Initial marks the state as started by Machine.Start.
func (s *StateBuilder[M]) Initial() *StateBuilder[M] {
	s.initial = true
	return s
}

// Add is a shortcut to declare the next state on the same builder.
func (s *StateBuilder[M]) Add(name string) *StateBuilder[M] {
	return s.builder.Add(name)
}
