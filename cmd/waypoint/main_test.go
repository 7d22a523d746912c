package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/waypoint/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const siteYAML = `pages:
  - name: home
    template: /
    title: Home
  - name: user
    template: /users/{id}
    title: User profile
    params:
      id: int
  - name: search
    template: /search?q={}
`

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "waypoint version "))
}

func TestParseCmd(t *testing.T) {
	out, err := execute(t, "", "parse", "/users/{id}?tab={}")
	require.NoError(t, err)
	assert.Contains(t, out, `Placeholder("id" optional=false)`)
	assert.Contains(t, out, `VariableValue("" name="tab" optional=false)`)
	assert.Contains(t, out, " /users/{id}?tab={}\n")

	out, err = execute(t, "", "parse", "--url", "/a/{b}")
	require.NoError(t, err)
	assert.Contains(t, out, `Const("{b}")`)

	_, err = execute(t, "", "parse", "/users/{id")
	assert.Error(t, err)
}

func TestRenderCmd(t *testing.T) {
	out, err := execute(t, "", "render", "/users/{id}?tab={}", "--set", "id=7", "--set", "tab=posts")
	require.NoError(t, err)
	assert.Equal(t, "/users/7?tab=posts\n", out)

	site := testutils.WriteFile(t, t.TempDir(), "site.yaml", siteYAML)
	out, err = execute(t, "", "render", "--site", site, "--page", "user", "--set", "id=a b")
	require.NoError(t, err)
	assert.Equal(t, "/users/a+b\n", out)

	_, err = execute(t, "", "render", "/x", "--set", "novalue")
	assert.ErrorContains(t, err, "expected name=value")

	_, err = execute(t, "", "render")
	assert.Error(t, err)
}

func TestSiteCmds(t *testing.T) {
	site := testutils.WriteFile(t, t.TempDir(), "site.yaml", siteYAML)

	t.Run("match", func(t *testing.T) {
		out, err := execute(t, "", "match", "--site", site, "https://example.com/users/42")
		require.NoError(t, err)
		assert.Contains(t, out, "user")
		assert.Contains(t, out, "title: User profile")
		assert.Contains(t, out, "42")

		_, err = execute(t, "", "match", "--site", site, "/nowhere")
		assert.ErrorContains(t, err, "no page matches")

		_, err = execute(t, "", "match", "--site", site, "/users/ada")
		assert.ErrorContains(t, err, `parameter "id": expected int`)
	})

	t.Run("tree", func(t *testing.T) {
		out, err := execute(t, "", "tree", "--site", site)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(out, "graph TD\n"))
		assert.Contains(t, out, "user")
	})

	t.Run("routes", func(t *testing.T) {
		out, err := execute(t, "", "routes", "--site", site, "--style", "notty")
		require.NoError(t, err)
		assert.Contains(t, out, "search")
		assert.Contains(t, out, "/users/{id}")
	})

	t.Run("missing site", func(t *testing.T) {
		_, err := execute(t, "", "match", "--site", filepath.Join(t.TempDir(), "none.yaml"), "/")
		assert.Error(t, err)
	})
}

func TestMachineCmds(t *testing.T) {
	dir, machine := testutils.SetupMachineDir(t)

	t.Run("graph", func(t *testing.T) {
		out, err := execute(t, "", "graph", "--machine", machine)
		require.NoError(t, err)
		assert.Contains(t, out, `greeting(("greeting"))`)
		assert.Contains(t, out, "names -. \"false\" .-> done")
	})

	t.Run("validate", func(t *testing.T) {
		out, err := execute(t, "", "validate", "--machine", dir)
		require.NoError(t, err)
		assert.Contains(t, out, "Graph is valid!")

		broken := testutils.WriteFile(t, t.TempDir(), "broken.yaml", "initial: [a]\nstates:\n  - {name: a, kind: return}\n  - {name: b, kind: return}\n")
		_, err = execute(t, "", "validate", "--machine", broken)
		assert.ErrorContains(t, err, "Unreachable state: 'b'")
	})

	t.Run("run from stdin", func(t *testing.T) {
		out, err := execute(t, "hello\nAda\nGrace\nbye\n", "run", "--machine", machine)
		require.NoError(t, err)
		assert.Contains(t, out, "line 4: greeting > names > done [Ada, Grace]")
	})

	t.Run("run from file with json", func(t *testing.T) {
		input := testutils.WriteFile(t, dir, "input.txt", "hello\nAda\nbye\n")
		out, err := execute(t, "", "run", "--machine", machine, "--input", input, "--json")
		require.NoError(t, err)
		assert.Contains(t, out, `"state":"done"`)
		assert.Contains(t, out, `"messages":["Ada"]`)
	})
}

func TestRootCmd_InvalidLogLevel(t *testing.T) {
	_, err := execute(t, "", "--log-level", "loud", "version")
	assert.ErrorContains(t, err, "unknown log level")
}
