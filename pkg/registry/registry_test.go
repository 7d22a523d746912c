package registry

import (
	"strings"
	"sync"
	"testing"

	"github.com/aretw0/waypoint/pkg/automata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	r := NewRegistry[int]()
	r.RegisterFunc("even", func(n int) bool { return n%2 == 0 })
	r.Register("never", automata.Never[int]{})

	even, err := r.Lookup("even")
	require.NoError(t, err)
	assert.True(t, even.Match(4))
	assert.False(t, even.Match(3))

	_, err = r.Lookup("odd")
	assert.ErrorContains(t, err, "condition not found: odd")

	// Overwrite
	r.Register("even", automata.Always[int]{})
	even, err = r.Lookup("even")
	require.NoError(t, err)
	assert.True(t, even.Match(3))

	assert.Equal(t, []string{"even", "never"}, r.Names())
}

func TestNewDefault(t *testing.T) {
	r := NewDefault()
	tests := []struct {
		name    string
		match   []string
		noMatch []string
	}{
		{"blank", []string{"", "  \t"}, []string{"x"}},
		{"number", []string{"42", "-1.5"}, []string{"", "4a"}},
		{"word", []string{"abc", "Élodie42"}, []string{"", "a b", "a-b"}},
		{"upper", []string{"Ada", "Élodie"}, []string{"", "ada", "1A"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := r.Lookup(tt.name)
			require.NoError(t, err)
			for _, s := range tt.match {
				assert.True(t, c.Match(s), s)
			}
			for _, s := range tt.noMatch {
				assert.False(t, c.Match(s), s)
			}
		})
	}
}

func TestRegistry_Concurrent(t *testing.T) {
	r := NewRegistry[string]()
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name := strings.Repeat("c", i+1)
			r.RegisterFunc(name, func(s string) bool { return s == name })
			_, _ = r.Lookup(name)
		}(i)
	}
	wg.Wait()
	assert.Len(t, r.Names(), 10)
}
