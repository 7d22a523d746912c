/*
Package observability exposes Prometheus collectors for matchers and machines.

The collectors are fed through the hook structs of urlmatch and automata, so
neither package depends on Prometheus:

	metrics, err := observability.NewMetrics(prometheus.DefaultRegisterer)
	matcher := urlmatch.New[Page](urlmatch.WithHooks(metrics.MatchHooks()))
	machine := automata.New(graph, automata.WithHooks(observability.MachineHooks[string](metrics)))
*/
package observability
