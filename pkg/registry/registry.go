package registry

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/aretw0/waypoint/pkg/automata"
)

// Registry manages named conditions that automaton files refer to with
// "ref". It is safe for concurrent use.
type Registry[M any] struct {
	mu         sync.RWMutex
	conditions map[string]automata.Condition[M]
}

// NewRegistry creates a new empty registry.
func NewRegistry[M any]() *Registry[M] {
	return &Registry[M]{
		conditions: make(map[string]automata.Condition[M]),
	}
}

// Register adds a condition to the registry.
// If a condition with the same name exists, it is overwritten.
func (r *Registry[M]) Register(name string, c automata.Condition[M]) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conditions[name] = c
}

// RegisterFunc is a shortcut for Register with a plain function.
func (r *Registry[M]) RegisterFunc(name string, fn func(M) bool) {
	r.Register(name, automata.ConditionFunc[M](fn))
}

// Lookup returns the condition registered under name.
// Returns an error if the condition is not found.
func (r *Registry[M]) Lookup(name string) (automata.Condition[M], error) {
	r.mu.RLock()
	c, ok := r.conditions[name]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("condition not found: %s", name)
	}
	return c, nil
}

// Names returns the registered names in sorted order.
func (r *Registry[M]) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.conditions))
	for name := range r.conditions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewDefault returns a registry of string conditions preloaded with:
//
//   - "blank": empty or whitespace only
//   - "number": parses as a decimal number
//   - "word": letters and digits only, at least one
//   - "upper": starts with an upper case letter
func NewDefault() *Registry[string] {
	r := NewRegistry[string]()
	r.RegisterFunc("blank", func(s string) bool {
		return strings.TrimSpace(s) == ""
	})
	r.RegisterFunc("number", func(s string) bool {
		_, err := strconv.ParseFloat(s, 64)
		return err == nil
	})
	r.RegisterFunc("word", func(s string) bool {
		if s == "" {
			return false
		}
		for _, c := range s {
			if !unicode.IsLetter(c) && !unicode.IsDigit(c) {
				return false
			}
		}
		return true
	})
	r.RegisterFunc("upper", func(s string) bool {
		c, size := utf8.DecodeRuneInString(s)
		return size > 0 && unicode.IsUpper(c)
	})
	return r
}
