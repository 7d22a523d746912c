package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// GreetingMachine accepts "hello", any number of capitalised names and
// returns on the first line that is not a name.
const GreetingMachine = `initial: [greeting]
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

// WriteFile writes content to dir/name and returns the path.
// It fails the test immediately on error.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644), "Failed to write %s", name)
	return path
}

// SetupMachineDir creates a temporary directory holding GreetingMachine as
// machine.yaml. It returns the directory and the file path.
func SetupMachineDir(t *testing.T) (string, string) {
	t.Helper()

	dir := t.TempDir()
	absPath, err := filepath.Abs(dir)
	require.NoError(t, err, "Failed to get absolute path for temp dir")
	return absPath, WriteFile(t, absPath, "machine.yaml", GreetingMachine)
}
