package automata

import (
	"errors"
	"fmt"
)

var (
	// ErrInternal marks a broken transition protocol. It signals a bug in a
	// definition, never bad input.
	ErrInternal = errors.New("internal state machine error")

	// ErrFrozen is returned when a Builder is used after Build.
	ErrFrozen = errors.New("builder is frozen")

	// ErrUnknownState is returned for a StateID or name not in the graph.
	ErrUnknownState = errors.New("unknown state")

	// ErrInvalidDefinition is returned for malformed state definitions.
	ErrInvalidDefinition = errors.New("invalid state definition")

	// ErrNotStarted is returned when messages arrive before Start.
	ErrNotStarted = errors.New("machine not started")
)

// ProtocolError reports a transition request that violates the round protocol.
type ProtocolError struct {
	Round  int
	State  string
	Reason string
}

func (e *ProtocolError) Error() string {
	if e.State == "" {
		return fmt.Sprintf("%s: round %d: %s", ErrInternal, e.Round, e.Reason)
	}
	return fmt.Sprintf("%s: round %d: state %q: %s", ErrInternal, e.Round, e.State, e.Reason)
}

func (e *ProtocolError) Unwrap() error {
	return ErrInternal
}
