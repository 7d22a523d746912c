package automata

// StateID addresses a definition inside a Graph.
type StateID int

// NoState marks an absent successor. Transitioning to it terminates.
const NoState StateID = -1

// Definition describes one state of a graph. Definitions are immutable once
// the graph is built. New kinds of states implement this interface and are
// registered with Builder.Add.
type Definition[M any] interface {
	Name() HierarchicalName
	// NewRunning creates an instance of the state entered from previous,
	// which is nil for initial instances.
	NewRunning(id StateID, previous Running[M]) Running[M]
}

// Running is a live instance of a Definition.
//
// Implementations must be pointer types: instances are compared by identity.
type Running[M any] interface {
	StateID() StateID
	Definition() Definition[M]
	Previous() Running[M]
	// HandleIncoming records at least one transition request for msg on tc.
	HandleIncoming(msg M, tc *TransitionControl[M])
}

// Enterer is implemented by instances that react to being entered. Enter
// runs once, in the round that created the instance.
type Enterer[M any] interface {
	Enter(rr *RoundResult[M])
}

// Brancher is implemented by definitions with a true and a false successor.
type Brancher interface {
	TrueCase() StateID
	FalseCase() StateID
}

type branchSetter interface {
	setTrue(StateID)
	setFalse(StateID)
}

// MessageLog is implemented by instances that keep the messages they consumed.
type MessageLog[M any] interface {
	Messages() []M
}

// RunningBase carries the bookkeeping shared by all instances. Custom
// instance types embed it.
type RunningBase[M any] struct {
	id       StateID
	def      Definition[M]
	previous Running[M]
}

// NewRunningBase returns the base for an instance of def.
func NewRunningBase[M any](id StateID, def Definition[M], previous Running[M]) RunningBase[M] {
	return RunningBase[M]{id: id, def: def, previous: previous}
}

func (b *RunningBase[M]) StateID() StateID          { return b.id }
func (b *RunningBase[M]) Definition() Definition[M] { return b.def }
func (b *RunningBase[M]) Previous() Running[M]      { return b.previous }

// branch holds the successors of a two way definition.
type branch struct {
	trueCase  StateID
	falseCase StateID
}

func newBranch() branch {
	return branch{trueCase: NoState, falseCase: NoState}
}

func (b *branch) TrueCase() StateID    { return b.trueCase }
func (b *branch) FalseCase() StateID   { return b.falseCase }
func (b *branch) setTrue(id StateID)  { b.trueCase = id }
func (b *branch) setFalse(id StateID) { b.falseCase = id }

// History returns the chain of instances that led to r, oldest first.
func History[M any](r Running[M]) []Running[M] {
	var chain []Running[M]
	for cur := r; cur != nil; cur = cur.Previous() {
		chain = append(chain, cur)
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}

// Path returns the state names along the history of r, oldest first.
func Path[M any](r Running[M]) []HierarchicalName {
	chain := History(r)
	names := make([]HierarchicalName, len(chain))
	for i, c := range chain {
		names[i] = c.Definition().Name()
	}
	return names
}

// Messages collects the messages logged along the history of r, oldest first.
func Messages[M any](r Running[M]) []M {
	var out []M
	for _, c := range History(r) {
		if l, ok := c.(MessageLog[M]); ok {
			out = append(out, l.Messages()...)
		}
	}
	return out
}
