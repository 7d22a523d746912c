package validator

import (
	"fmt"
	"strings"

	"github.com/aretw0/waypoint/pkg/automata"
)

// ValidateGraph checks that every state is reachable from an initial state
// and that every reachable branching state can still lead to a Return.
// Custom definitions without successors are not reported as dead ends.
func ValidateGraph[M any](g *automata.Graph[M]) error {
	initial := g.Initial()
	if len(initial) == 0 {
		return fmt.Errorf("graph has no initial state")
	}

	// 1. Forward crawl from the initial states
	visited := make(map[automata.StateID]bool, g.Len())
	queue := append([]automata.StateID(nil), initial...)

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if visited[current] {
			continue
		}
		visited[current] = true

		for _, next := range g.Successors(current) {
			if !visited[next] {
				queue = append(queue, next)
			}
		}
	}

	// 2. Backward crawl from the return states
	predecessors := make(map[automata.StateID][]automata.StateID, g.Len())
	var returns []automata.StateID
	for id := automata.StateID(0); int(id) < g.Len(); id++ {
		def, _ := g.Definition(id)
		if _, ok := def.(*automata.Return[M]); ok {
			returns = append(returns, id)
		}
		for _, next := range g.Successors(id) {
			predecessors[next] = append(predecessors[next], id)
		}
	}

	canReturn := make(map[automata.StateID]bool, g.Len())
	queue = returns
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if canReturn[current] {
			continue
		}
		canReturn[current] = true
		queue = append(queue, predecessors[current]...)
	}

	var errors []string
	if len(returns) == 0 {
		errors = append(errors, "graph has no return state")
	}
	for id := automata.StateID(0); int(id) < g.Len(); id++ {
		name := stateName(g, id)
		switch {
		case !visited[id]:
			errors = append(errors, fmt.Sprintf("Unreachable state: '%s'", name))
		case len(returns) > 0 && !canReturn[id] && isBrancher(g, id):
			errors = append(errors, fmt.Sprintf("Dead end: '%s' never reaches a return state", name))
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("found %d errors:\n- %s", len(errors), strings.Join(errors, "\n- "))
	}

	return nil
}

func stateName[M any](g *automata.Graph[M], id automata.StateID) string {
	def, ok := g.Definition(id)
	if !ok {
		return fmt.Sprintf("#%d", id)
	}
	return def.Name().String()
}

func isBrancher[M any](g *automata.Graph[M], id automata.StateID) bool {
	def, _ := g.Definition(id)
	_, ok := def.(automata.Brancher)
	return ok
}
