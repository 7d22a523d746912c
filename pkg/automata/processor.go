package automata

import "context"

// Processor adapts raw input to the messages of a Machine. Inputs for which
// extract reports false are dropped without a round.
type Processor[R, M any] struct {
	machine *Machine[M]
	extract func(R) (M, bool)
}

// NewProcessor returns a Processor feeding m.
func NewProcessor[R, M any](m *Machine[M], extract func(R) (M, bool)) *Processor[R, M] {
	return &Processor[R, M]{machine: m, extract: extract}
}

// Machine returns the driven machine.
func (p *Processor[R, M]) Machine() *Machine[M] {
	return p.machine
}

// Feed converts raw and runs a round for it.
func (p *Processor[R, M]) Feed(ctx context.Context, raw R) ([]Running[M], error) {
	msg, ok := p.extract(raw)
	if !ok {
		return nil, nil
	}
	return p.machine.HandleIncoming(ctx, msg)
}
