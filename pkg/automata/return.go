package automata

// Return reports the path that reached it. An instance is added to the
// returned list of the round that entered it and ends on the next message.
type Return[M any] struct {
	name HierarchicalName
}

// NewReturn returns a Return definition.
func NewReturn[M any](name HierarchicalName) *Return[M] {
	return &Return[M]{name: name}
}

func (d *Return[M]) Name() HierarchicalName { return d.name }

func (d *Return[M]) NewRunning(id StateID, previous Running[M]) Running[M] {
	return &returnRunning[M]{RunningBase: NewRunningBase[M](id, d, previous)}
}

type returnRunning[M any] struct {
	RunningBase[M]
}

func (r *returnRunning[M]) Enter(rr *RoundResult[M]) {
	rr.Returned = append(rr.Returned, r)
}

func (r *returnRunning[M]) HandleIncoming(_ M, tc *TransitionControl[M]) {
	if r.previous != nil {
		tc.Terminate(r)
		return
	}
	// An initial Return was never entered; report it now.
	tc.Return(r)
}
