/*
Package dsl provides a name based, fluent way to assemble automata graphs.

States are declared by name and may refer to successors that are declared
later. Names are resolved when Build is called.

Example usage:

	b := dsl.New[string]()

	b.Add("greeting").
		MatchOne(automata.Equal("hello")).
		True("names").
		Initial()

	b.Add("names").
		MatchRepeat(automata.ConditionFunc[string](isName)).
		True("bye")

	b.Add("bye").
		MatchOne(automata.Equal("bye")).
		True("done")

	b.Add("done").Return()

	graph, err := b.Build()
	// ... pass graph to automata.New(...)
*/
package dsl
