/*
Package automata runs non-deterministic state machines over a stream of
messages.

A Graph of state definitions is assembled with a Builder and frozen by
Build. A Machine keeps a set of running instances; every message is handed
to each active instance, which records transition requests (stay, next,
fork, terminate, return) on a shared TransitionControl. Once every instance
has seen the message the requests are reduced into the next active set.

	b := automata.NewBuilder[int]()
	one := b.MatchOne(automata.NewName("one"), automata.Equal(1))
	two := b.MatchOne(automata.NewName("two"), automata.Equal(2))
	done := b.Return(automata.NewName("done"))
	b.SetTrue(one, two).SetTrue(two, done).Initial(one)

	g, err := b.Build()
	if err != nil {
		return err
	}
	m := automata.New(g)
	_ = m.Start(ctx)
	_, _ = m.HandleIncoming(ctx, 1)        // nothing returned
	returned, _ := m.HandleIncoming(ctx, 2) // [done]

Instances keep a link to the instance they came from, so a returned instance
carries the full path that led to it (see History and Path).
*/
package automata
