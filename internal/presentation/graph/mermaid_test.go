package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/waypoint/internal/presentation/graph"
	"github.com/aretw0/waypoint/pkg/automata"
	"github.com/aretw0/waypoint/pkg/urlmatch"
	"github.com/aretw0/waypoint/pkg/urltemplate"
)

func stateGraph(t *testing.T) *automata.Graph[string] {
	t.Helper()
	b := automata.NewBuilder[string]()
	start := b.MatchOne(automata.NewName("order/start"), automata.Equal("begin"))
	items := b.MatchRepeat(automata.NewName("order/line-items"), automata.Always[string]{})
	done := b.Return(automata.NewName("done"))
	b.SetTrue(start, items).SetFalse(items, done).Initial(start)
	g, err := b.Build()
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}
	return g
}

func TestGenerateStateMermaid(t *testing.T) {
	tests := []struct {
		name     string
		overlay  *graph.GraphOverlay
		contains []string
		excludes []string
	}{
		{
			name: "Shapes",
			contains: []string{
				"graph TD\n",
				"order_start((\"order/start\"))",
				"order_line_items[[\"order/line-items\"]]",
				"done([\"done\"])",
			},
			excludes: []string{"classDef"},
		},
		{
			name: "Transitions",
			contains: []string{
				`order_start -- "true" --> order_line_items`,
				`order_line_items -- "repeat" --> order_line_items`,
				`order_line_items -. "false" .-> done`,
			},
		},
		{
			name: "Overlay",
			overlay: &graph.GraphOverlay{
				VisitedNodes: []string{"order/start", "order/start"},
				CurrentNodes: []string{"order/line-items"},
			},
			contains: []string{
				"class order_start visited;",
				"class order_line_items current;",
			},
		},
	}

	g := stateGraph(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := graph.GenerateStateMermaid(g, tt.overlay)
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("GenerateStateMermaid() = \n%v\nWant substring: %v", got, want)
				}
			}
			for _, bad := range tt.excludes {
				if strings.Contains(got, bad) {
					t.Errorf("GenerateStateMermaid() = \n%v\nUnexpected substring: %v", got, bad)
				}
			}
			if tt.overlay != nil && strings.Count(got, "visited;") != 1 {
				t.Errorf("Visited nodes should be deduplicated:\n%v", got)
			}
		})
	}
}

func TestGenerateTreeMermaid(t *testing.T) {
	m := urlmatch.New[string]()
	for tpl, page := range map[string]string{"/users": "list", "/users/{id}": "detail"} {
		if err := m.Add(urltemplate.MustParse(tpl), page); err != nil {
			t.Fatalf("Add(%q) failed: %v", tpl, err)
		}
	}

	got := graph.GenerateTreeMermaid(m, func(p string) string { return p })
	want := []string{
		"n0[\"/\"]",
		"n0 --> n1",
		"[[\"users → list\"]]",
		"[[\"{id} → detail\"]]",
	}
	for _, w := range want {
		if !strings.Contains(got, w) {
			t.Errorf("GenerateTreeMermaid() = \n%v\nWant substring: %v", got, w)
		}
	}
	if n := strings.Count(got, "-->"); n != 3 {
		t.Errorf("Expected 3 edges, got %d:\n%v", n, got)
	}
}

func TestTokenLabel(t *testing.T) {
	tpl := urltemplate.MustParse("/a/{id?}?tab?={}&q=x")
	var labels []string
	for _, tok := range tpl.Tokens() {
		labels = append(labels, graph.TokenLabel(tok))
	}
	got := strings.Join(labels, " ")
	want := "/ a / {id?} ? tab?= {tab} & q= x"
	if got != want {
		t.Errorf("TokenLabel() = %q, want %q", got, want)
	}
}
