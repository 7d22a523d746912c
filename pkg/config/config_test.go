package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/waypoint/pkg/automata"
	"github.com/aretw0/waypoint/pkg/config"
	"github.com/aretw0/waypoint/pkg/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadSite(t *testing.T) {
	path := writeFile(t, "site.yaml", `
pages:
  - name: home
    template: /
  - name: user
    template: /users/{id}
    title: User profile
`)
	site, err := config.LoadSite(path)
	require.NoError(t, err)
	require.Len(t, site.Pages, 2)
	assert.Equal(t, config.Page{Name: "user", Template: "/users/{id}", Title: "User profile"}, site.Pages[1])
}

func TestDecodeSite_Params(t *testing.T) {
	site, err := config.DecodeSite([]byte("pages:\n  - name: order\n    template: /orders/{id}\n    params: {id: int}\n"), config.FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"id": "int"}, site.Pages[0].Params)
}

func TestLoadSite_JSON(t *testing.T) {
	path := writeFile(t, "site.json", `{"pages": [{"name": "home", "template": "/"}]}`)
	site, err := config.LoadSite(path)
	require.NoError(t, err)
	assert.Equal(t, "home", site.Pages[0].Name)
}

func TestLoadSite_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := config.LoadSite(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("unknown key", func(t *testing.T) {
		_, err := config.DecodeSite([]byte("pages:\n  - name: a\n    template: /\n    colour: red\n"), config.FormatYAML)
		var derr *config.DecodeError
		assert.True(t, errors.As(err, &derr))
	})

	t.Run("bad yaml", func(t *testing.T) {
		_, err := config.DecodeSite([]byte("pages: [\n"), config.FormatYAML)
		var derr *config.DecodeError
		assert.True(t, errors.As(err, &derr))
	})

	t.Run("bad template", func(t *testing.T) {
		_, err := config.DecodeSite([]byte(`{"pages": [{"name": "a", "template": "/{"}]}`), config.FormatJSON)
		assert.ErrorIs(t, err, config.ErrInvalidConfig)
	})

	t.Run("unknown parameter type", func(t *testing.T) {
		_, err := config.DecodeSite([]byte("pages:\n  - {name: a, template: '/a/{id}', params: {id: float}}\n"), config.FormatYAML)
		assert.ErrorIs(t, err, config.ErrInvalidConfig)
	})

	t.Run("duplicate page", func(t *testing.T) {
		_, err := config.DecodeSite([]byte("pages:\n  - {name: a, template: /a}\n  - {name: a, template: /b}\n"), config.FormatYAML)
		assert.ErrorIs(t, err, config.ErrInvalidConfig)
	})
}

const machineYAML = `
initial: [greeting]
states:
  - name: greeting
    kind: match_one
    condition: {equals: hello}
    then: names
  - name: names
    kind: match_repeat
    condition: {pattern: '^\p{Lu}\w+$'}
    else: done
  - name: done
    kind: return
`

func TestLoadMachine_Run(t *testing.T) {
	path := writeFile(t, "machine.yaml", machineYAML)
	f, err := config.LoadMachine(path)
	require.NoError(t, err)
	require.Len(t, f.States, 3)

	g, err := f.Graph()
	require.NoError(t, err)

	ctx := context.Background()
	m := automata.New(g)
	require.NoError(t, m.Start(ctx))

	var returned []automata.Running[string]
	for _, msg := range []string{"hello", "Ada", "Élodie", "bye"} {
		r, err := m.HandleIncoming(ctx, msg)
		require.NoError(t, err)
		returned = append(returned, r...)
	}
	require.Len(t, returned, 1)
	assert.Equal(t, []string{"Ada", "Élodie"}, automata.Messages(returned[0]))
}

func TestConditionSpec_Compile(t *testing.T) {
	empty := ""
	tests := []struct {
		name    string
		spec    config.ConditionSpec
		match   []string
		noMatch []string
	}{
		{name: "equals", spec: config.ConditionSpec{Equals: ptr("a")}, match: []string{"a"}, noMatch: []string{"A", "ab"}},
		{name: "equals empty", spec: config.ConditionSpec{Equals: &empty}, match: []string{""}, noMatch: []string{"x"}},
		{name: "prefix", spec: config.ConditionSpec{Prefix: "GET "}, match: []string{"GET /"}, noMatch: []string{"POST /"}},
		{name: "pattern", spec: config.ConditionSpec{Pattern: `^\d+$`}, match: []string{"42"}, noMatch: []string{"4a"}},
		{name: "any", spec: config.ConditionSpec{Any: true}, match: []string{"", "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := tt.spec.Compile()
			require.NoError(t, err)
			for _, m := range tt.match {
				assert.True(t, c.Match(m), m)
			}
			for _, m := range tt.noMatch {
				assert.False(t, c.Match(m), m)
			}
		})
	}

	_, err := config.ConditionSpec{}.Compile()
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
	_, err = config.ConditionSpec{Prefix: "a", Any: true}.Compile()
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
	_, err = config.ConditionSpec{Pattern: "("}.Compile()
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestConditionSpec_Ref(t *testing.T) {
	reg := registry.NewDefault()
	c, err := config.ConditionSpec{Ref: "number"}.CompileWith(reg)
	require.NoError(t, err)
	assert.True(t, c.Match("12"))
	assert.False(t, c.Match("twelve"))

	_, err = config.ConditionSpec{Ref: "number"}.Compile()
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
	_, err = config.ConditionSpec{Ref: "missing"}.CompileWith(reg)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)

	doc := "initial: [n]\nstates:\n  - {name: n, kind: match_repeat, condition: {ref: number}, else: done}\n  - {name: done, kind: return}\n"
	f, err := config.DecodeMachine([]byte(doc), config.FormatYAML)
	require.NoError(t, err)
	_, err = f.Graph()
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
	g, err := f.GraphWith(reg)
	require.NoError(t, err)
	assert.Equal(t, 2, g.Len())
}

func TestMachineFile_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{"unknown kind", "initial: [a]\nstates:\n  - {name: a, kind: loop}\n", config.ErrInvalidConfig},
		{"unknown initial", "initial: [b]\nstates:\n  - {name: a, kind: return}\n", automata.ErrUnknownState},
		{"unknown target", "initial: [a]\nstates:\n  - {name: a, kind: match_one, condition: {any: true}, then: z}\n", automata.ErrUnknownState},
		{"return with successor", "initial: [a]\nstates:\n  - {name: a, kind: return, then: a}\n", config.ErrInvalidConfig},
		{"duplicate", "initial: [a]\nstates:\n  - {name: a, kind: return}\n  - {name: a, kind: return}\n", config.ErrInvalidConfig},
		{"missing condition", "initial: [a]\nstates:\n  - {name: a, kind: match_one}\n", config.ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := config.DecodeMachine([]byte(tt.doc), config.FormatYAML)
			require.NoError(t, err)
			_, err = f.Graph()
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestFormatOf(t *testing.T) {
	assert.Equal(t, config.FormatJSON, config.FormatOf("a/b.JSON"))
	assert.Equal(t, config.FormatYAML, config.FormatOf("a/b.yml"))
	assert.Equal(t, config.FormatYAML, config.FormatOf("noext"))
}

func ptr(s string) *string { return &s }
