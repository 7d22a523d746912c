package automata

// Condition decides whether a message satisfies a state.
type Condition[M any] interface {
	Match(msg M) bool
}

// ConditionFunc adapts a function to a Condition.
type ConditionFunc[M any] func(msg M) bool

func (f ConditionFunc[M]) Match(msg M) bool {
	return f(msg)
}

// Never matches no message.
type Never[M any] struct{}

func (Never[M]) Match(M) bool { return false }

// Always matches every message.
type Always[M any] struct{}

func (Always[M]) Match(M) bool { return true }

// Equal matches messages equal to v.
func Equal[M comparable](v M) Condition[M] {
	return ConditionFunc[M](func(msg M) bool { return msg == v })
}

// Not inverts c.
func Not[M any](c Condition[M]) Condition[M] {
	return ConditionFunc[M](func(msg M) bool { return !c.Match(msg) })
}

// Any matches when at least one of cs matches.
func Any[M any](cs ...Condition[M]) Condition[M] {
	return ConditionFunc[M](func(msg M) bool {
		for _, c := range cs {
			if c.Match(msg) {
				return true
			}
		}
		return false
	})
}
