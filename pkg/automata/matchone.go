package automata

// MatchOne consumes a single message. It moves to TrueCase when the
// condition holds and to FalseCase otherwise; an absent successor ends the
// instance.
type MatchOne[M any] struct {
	branch
	name      HierarchicalName
	condition Condition[M]
}

// NewMatchOne returns a MatchOne definition without successors.
func NewMatchOne[M any](name HierarchicalName, c Condition[M]) *MatchOne[M] {
	return &MatchOne[M]{branch: newBranch(), name: name, condition: c}
}

func (d *MatchOne[M]) Name() HierarchicalName   { return d.name }
func (d *MatchOne[M]) Condition() Condition[M] { return d.condition }

func (d *MatchOne[M]) NewRunning(id StateID, previous Running[M]) Running[M] {
	return &matchOneRunning[M]{RunningBase: NewRunningBase[M](id, d, previous), def: d}
}

type matchOneRunning[M any] struct {
	RunningBase[M]
	def *MatchOne[M]
}

func (r *matchOneRunning[M]) HandleIncoming(msg M, tc *TransitionControl[M]) {
	next := r.def.falseCase
	if r.def.condition.Match(msg) {
		next = r.def.trueCase
	}
	tc.NextOrStayOrTerminate(r, next)
}
