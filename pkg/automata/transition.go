package automata

import "fmt"

type requestKind uint8

const (
	requestStay requestKind = iota
	requestNext
	requestFork
	requestTerminate
	requestReturn
)

func (k requestKind) String() string {
	switch k {
	case requestStay:
		return "stay"
	case requestNext:
		return "next"
	case requestFork:
		return "fork"
	case requestTerminate:
		return "terminate"
	case requestReturn:
		return "return"
	}
	return "unknown"
}

type request[M any] struct {
	kind requestKind
	from Running[M]
	to   Running[M]
}

// RoundResult is the reduced outcome of one round.
type RoundResult[M any] struct {
	Round int
	// Active is the next active set, deduplicated, in request order.
	Active []Running[M]
	// Entered lists the instances of Active that were not active before.
	Entered []Running[M]
	// Returned lists the instances reported back to the caller.
	Returned []Running[M]
}

// TransitionControl collects the transition requests of one round.
type TransitionControl[M any] struct {
	graph    *Graph[M]
	round    int
	requests []request[M]
	err      error
}

// NewTransitionControl returns an empty collector for round over g.
func NewTransitionControl[M any](g *Graph[M], round int) *TransitionControl[M] {
	return &TransitionControl[M]{graph: g, round: round}
}

// Stay keeps r active.
func (tc *TransitionControl[M]) Stay(r Running[M]) {
	tc.add(request[M]{kind: requestStay, from: r})
}

// Next replaces r with a new instance of the state to.
func (tc *TransitionControl[M]) Next(r Running[M], to StateID) {
	if next, ok := tc.instantiate(r, r, to); ok {
		tc.add(request[M]{kind: requestNext, from: r, to: next})
	}
}

// NextInstance replaces r with next. Several instances may hand over the
// same next instance; it stays active once.
func (tc *TransitionControl[M]) NextInstance(r Running[M], next Running[M]) {
	if next == nil {
		tc.fail(r, "next instance is nil")
		return
	}
	tc.add(request[M]{kind: requestNext, from: r, to: next})
}

// Fork starts a new instance of to alongside whatever else r requests.
func (tc *TransitionControl[M]) Fork(r Running[M], to StateID) {
	tc.ForkFrom(r, r, to)
}

// ForkFrom is Fork with the history of the new instance starting at
// previous instead of r. The request still belongs to r.
func (tc *TransitionControl[M]) ForkFrom(r, previous Running[M], to StateID) {
	if next, ok := tc.instantiate(r, previous, to); ok {
		tc.add(request[M]{kind: requestFork, from: r, to: next})
	}
}

// Terminate drops r.
func (tc *TransitionControl[M]) Terminate(r Running[M]) {
	tc.add(request[M]{kind: requestTerminate, from: r})
}

// Return drops r from the active set and reports it to the caller.
func (tc *TransitionControl[M]) Return(r Running[M]) {
	tc.add(request[M]{kind: requestReturn, from: r})
}

// NextOrStayOrTerminate terminates r when to is NoState, keeps r when to is
// its own state and moves to a new instance otherwise.
func (tc *TransitionControl[M]) NextOrStayOrTerminate(r Running[M], to StateID) {
	switch to {
	case NoState:
		tc.Terminate(r)
	case r.StateID():
		tc.Stay(r)
	default:
		tc.Next(r, to)
	}
}

func (tc *TransitionControl[M]) add(req request[M]) {
	tc.requests = append(tc.requests, req)
}

func (tc *TransitionControl[M]) instantiate(r, previous Running[M], to StateID) (Running[M], bool) {
	def, ok := tc.graph.Definition(to)
	if !ok {
		tc.fail(r, fmt.Sprintf("transition to unknown state %d", to))
		return nil, false
	}
	return def.NewRunning(to, previous), true
}

func (tc *TransitionControl[M]) fail(r Running[M], reason string) {
	if tc.err == nil {
		tc.err = &ProtocolError{Round: tc.round, State: stateName(r), Reason: reason}
	}
}

// Verify checks that every instance of current produced one contiguous run
// of requests, in the order of current, and nothing else did.
func (tc *TransitionControl[M]) Verify(current []Running[M]) error {
	if tc.err != nil {
		return tc.err
	}
	i := 0
	for _, r := range current {
		n := 0
		for i < len(tc.requests) && tc.requests[i].from == r {
			i++
			n++
		}
		if n == 0 {
			return &ProtocolError{Round: tc.round, State: stateName(r), Reason: "no transition requested"}
		}
	}
	if i < len(tc.requests) {
		req := tc.requests[i]
		return &ProtocolError{
			Round:  tc.round,
			State:  stateName(req.from),
			Reason: fmt.Sprintf("%s requested out of turn", req.kind),
		}
	}
	return nil
}

// Reduce turns the collected requests into the next active set. When
// verify is set the requests are checked with Verify first.
func (tc *TransitionControl[M]) Reduce(current []Running[M], verify bool) (*RoundResult[M], error) {
	if tc.err != nil {
		return nil, tc.err
	}
	if verify {
		if err := tc.Verify(current); err != nil {
			return nil, err
		}
	}

	before := make(map[Running[M]]struct{}, len(current))
	for _, r := range current {
		before[r] = struct{}{}
	}

	rr := &RoundResult[M]{Round: tc.round}
	seen := make(map[Running[M]]struct{}, len(tc.requests))
	keep := func(r Running[M]) {
		if _, dup := seen[r]; dup {
			return
		}
		seen[r] = struct{}{}
		rr.Active = append(rr.Active, r)
		if _, old := before[r]; !old {
			rr.Entered = append(rr.Entered, r)
		}
	}

	for _, req := range tc.requests {
		switch req.kind {
		case requestStay:
			keep(req.from)
		case requestNext, requestFork:
			keep(req.to)
		case requestReturn:
			rr.Returned = append(rr.Returned, req.from)
		case requestTerminate:
		}
	}
	return rr, nil
}

func stateName[M any](r Running[M]) string {
	if r == nil {
		return ""
	}
	if def := r.Definition(); def != nil {
		return def.Name().String()
	}
	return ""
}
