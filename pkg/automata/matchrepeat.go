package automata

// MatchRepeat consumes messages for as long as its condition holds.
//
// Each matching message is logged and the instance stays active. When a
// TrueCase is set the instance also forks into it, so the state after the
// repetition can pick up the next message. The forked instance continues
// from a frozen copy of the repeat, so messages logged later do not show up
// in its history. A message that does not match moves the instance to
// FalseCase, or ends it.
//
// A logged message only becomes visible once the machine commits the round.
type MatchRepeat[M any] struct {
	branch
	name      HierarchicalName
	condition Condition[M]
}

// NewMatchRepeat returns a MatchRepeat definition without successors.
func NewMatchRepeat[M any](name HierarchicalName, c Condition[M]) *MatchRepeat[M] {
	return &MatchRepeat[M]{branch: newBranch(), name: name, condition: c}
}

func (d *MatchRepeat[M]) Name() HierarchicalName   { return d.name }
func (d *MatchRepeat[M]) Condition() Condition[M] { return d.condition }

func (d *MatchRepeat[M]) NewRunning(id StateID, previous Running[M]) Running[M] {
	return &matchRepeatRunning[M]{RunningBase: NewRunningBase[M](id, d, previous), def: d}
}

type matchRepeatRunning[M any] struct {
	RunningBase[M]
	def      *MatchRepeat[M]
	messages []M
	pending  []M
}

// Messages returns a copy of the messages consumed so far.
func (r *matchRepeatRunning[M]) Messages() []M {
	out := make([]M, len(r.messages))
	copy(out, r.messages)
	return out
}

func (r *matchRepeatRunning[M]) HandleIncoming(msg M, tc *TransitionControl[M]) {
	r.pending = nil
	if !r.def.condition.Match(msg) {
		tc.NextOrStayOrTerminate(r, r.def.falseCase)
		return
	}
	logged := append(r.Messages(), msg)
	r.pending = logged
	tc.Stay(r)
	if r.def.trueCase != NoState && r.def.trueCase != r.id {
		frozen := &matchRepeatRunning[M]{RunningBase: r.RunningBase, def: r.def, messages: logged}
		tc.ForkFrom(r, frozen, r.def.trueCase)
	}
}

func (r *matchRepeatRunning[M]) commit() {
	if r.pending != nil {
		r.messages = r.pending
		r.pending = nil
	}
}
