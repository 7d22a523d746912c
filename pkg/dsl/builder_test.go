package dsl

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/waypoint/pkg/automata"
)

func TestBuilder_SimpleFlow(t *testing.T) {
	// 1. Build the graph using DSL
	b := New[string]()

	b.Add("greeting").
		MatchOne(automata.Equal("hello")).
		True("name").
		Initial()

	b.Add("name").
		MatchRepeat(automata.Not(automata.Equal("bye"))).
		False("done")

	// Add returns the existing builder
	b.Add("done").Return()
	if b.Add("done").kind != kindReturn {
		t.Fatalf("Add() should return the existing state builder")
	}

	// 2. Compile to Graph
	g, err := b.Build()
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}
	if g.Len() != 3 {
		t.Fatalf("Expected 3 states, got %d", g.Len())
	}

	// 3. Verify wiring
	id, ok := g.Lookup(automata.NewName("name"))
	if !ok {
		t.Fatalf("Lookup('name') failed")
	}
	def, _ := g.Definition(id)
	repeat, ok := def.(*automata.MatchRepeat[string])
	if !ok {
		t.Fatalf("Expected MatchRepeat, got %T", def)
	}
	if repeat.TrueCase() != automata.NoState {
		t.Errorf("Expected no true case, got %d", repeat.TrueCase())
	}
	if repeat.FalseCase() != 2 {
		t.Errorf("Expected false case 2, got %d", repeat.FalseCase())
	}

	// 4. Run it
	ctx := context.Background()
	m := automata.New(g)
	if err := m.Start(ctx); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	var returned []automata.Running[string]
	for _, msg := range []string{"hello", "ada", "grace", "bye"} {
		r, err := m.HandleIncoming(ctx, msg)
		if err != nil {
			t.Fatalf("HandleIncoming(%q) failed: %v", msg, err)
		}
		returned = append(returned, r...)
	}
	if len(returned) != 1 {
		t.Fatalf("Expected 1 returned instance, got %d", len(returned))
	}
	got := automata.Messages(returned[0])
	if len(got) != 2 || got[0] != "ada" || got[1] != "grace" {
		t.Errorf("Expected [ada grace], got %v", got)
	}
}

func TestBuilder_Chaining(t *testing.T) {
	b := New[int]()
	b.Add("a").MatchOne(automata.Equal(1)).True("b").Initial().
		Add("b").Return()

	if names := b.Names(); len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Fatalf("Unexpected names %v", names)
	}
	if _, err := b.Build(); err != nil {
		t.Fatalf("Build() failed: %v", err)
	}
}

func TestBuilder_Errors(t *testing.T) {
	tests := []struct {
		name  string
		setup func(b *Builder[int])
		want  error
	}{
		{
			name: "unknown target",
			setup: func(b *Builder[int]) {
				b.Add("a").MatchOne(automata.Equal(1)).True("nowhere").Initial()
			},
			want: automata.ErrUnknownState,
		},
		{
			name: "missing kind",
			setup: func(b *Builder[int]) {
				b.Add("a").Initial()
			},
			want: ErrMissingKind,
		},
		{
			name: "return cannot branch",
			setup: func(b *Builder[int]) {
				b.Add("a").Return().True("a").Initial()
			},
			want: automata.ErrInvalidDefinition,
		},
		{
			name: "no initial state",
			setup: func(b *Builder[int]) {
				b.Add("a").Return()
			},
			want: automata.ErrInvalidDefinition,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New[int]()
			tt.setup(b)
			_, err := b.Build()
			if !errors.Is(err, tt.want) {
				t.Errorf("Build() error = %v, want %v", err, tt.want)
			}
		})
	}
}
