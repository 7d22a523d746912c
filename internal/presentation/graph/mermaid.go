package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/waypoint/pkg/automata"
	"github.com/aretw0/waypoint/pkg/urlmatch"
	"github.com/aretw0/waypoint/pkg/urltemplate"
)

// GraphOverlay contains dynamic state data to visualize on the graph.
type GraphOverlay struct {
	VisitedNodes []string
	CurrentNodes []string
}

// GenerateStateMermaid produces a Mermaid flowchart of a state graph.
// It applies semantic styling:
// - Initial: ((Circle))
// - MatchRepeat: [[Subroutine]] with a self loop
// - Return: ([Stadium])
// - Default: [Rectangle]
// True transitions are solid arrows, false transitions dotted ones.
// It also applies overlay styles (Visited/Current) if provided.
func GenerateStateMermaid[M any](g *automata.Graph[M], overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	initial := make(map[automata.StateID]bool)
	for _, id := range g.Initial() {
		initial[id] = true
	}

	for i := 0; i < g.Len(); i++ {
		id := automata.StateID(i)
		def, _ := g.Definition(id)
		name := def.Name().String()
		safeID := sanitizeMermaidID(name)

		opener, closer := "[", "]"
		switch def.(type) {
		case *automata.MatchRepeat[M]:
			opener, closer = "[[", "]]"
		case *automata.Return[M]:
			opener, closer = "([", "])"
		}
		if initial[id] {
			opener, closer = "((", "))"
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", safeID, opener, escapeLabel(name), closer)

		if _, ok := def.(*automata.MatchRepeat[M]); ok {
			fmt.Fprintf(&sb, "    %s -- \"repeat\" --> %s\n", safeID, safeID)
		}

		br, ok := def.(automata.Brancher)
		if !ok {
			continue
		}
		if to := br.TrueCase(); to != automata.NoState {
			fmt.Fprintf(&sb, "    %s -- \"true\" --> %s\n", safeID, stateID(g, to))
		}
		if to := br.FalseCase(); to != automata.NoState {
			fmt.Fprintf(&sb, "    %s -. \"false\" .-> %s\n", safeID, stateID(g, to))
		}
	}

	if overlay != nil {
		writeOverlay(&sb, overlay)
	}
	return sb.String()
}

func stateID[M any](g *automata.Graph[M], id automata.StateID) string {
	def, ok := g.Definition(id)
	if !ok {
		return fmt.Sprintf("state_%d", id)
	}
	return sanitizeMermaidID(def.Name().String())
}

func writeOverlay(sb *strings.Builder, overlay *GraphOverlay) {
	sb.WriteString("\n    %% Overlay Styles\n")
	// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
	sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
	sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

	visited := make(map[string]bool)
	for _, id := range overlay.VisitedNodes {
		safeID := sanitizeMermaidID(id)
		if !visited[safeID] && safeID != "" {
			visited[safeID] = true
			fmt.Fprintf(sb, "    class %s visited;\n", safeID)
		}
	}

	current := make(map[string]bool)
	for _, id := range overlay.CurrentNodes {
		safeID := sanitizeMermaidID(id)
		if !current[safeID] && safeID != "" {
			current[safeID] = true
			fmt.Fprintf(sb, "    class %s current;\n", safeID)
		}
	}
}

// GenerateTreeMermaid produces a Mermaid flowchart of a matcher's decision
// tree. Nodes carrying a page are drawn as subroutines labelled with the
// token and, when label is not nil, the page.
func GenerateTreeMermaid[P any](m *urlmatch.Matcher[P], label func(P) string) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	var parents []string
	n := 0
	_ = m.Walk(func(node *urlmatch.Node[P], depth int) error {
		id := fmt.Sprintf("n%d", n)
		n++

		text := TokenLabel(node.Token())
		opener, closer := "[", "]"
		if page, ok := node.Page(); ok {
			opener, closer = "[[", "]]"
			if label != nil {
				text += " → " + label(page)
			}
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", id, opener, escapeLabel(text), closer)

		parents = append(parents[:depth], id)
		if depth > 0 {
			fmt.Fprintf(&sb, "    %s --> %s\n", parents[depth-1], id)
		}
		return nil
	})
	return sb.String()
}

// TokenLabel renders a single template token for display.
func TokenLabel(t urltemplate.Token) string {
	switch t.Kind {
	case urltemplate.Placeholder:
		if t.Optional {
			return "{" + t.Name + "?}"
		}
		return "{" + t.Name + "}"
	case urltemplate.VariableName:
		if t.Optional {
			return t.Value + "?="
		}
		return t.Value + "="
	case urltemplate.VariableValue:
		if t.Value == "" {
			return "{" + t.Name + "}"
		}
		return t.Value
	default:
		return t.Value
	}
}

func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
