package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/aretw0/waypoint/pkg/automata"
	"github.com/aretw0/waypoint/pkg/dsl"
	"github.com/aretw0/waypoint/pkg/registry"
	"github.com/dlclark/regexp2"
)

// State kinds accepted in automaton files.
const (
	KindMatchOne    = "match_one"
	KindMatchRepeat = "match_repeat"
	KindReturn      = "return"
)

// PatternTimeout bounds a single pattern evaluation.
var PatternTimeout = time.Second

// ConditionSpec describes a string condition. Exactly one field is set.
type ConditionSpec struct {
	Equals  *string `json:"equals,omitempty" mapstructure:"equals"`
	Prefix  string  `json:"prefix,omitempty" mapstructure:"prefix"`
	Pattern string  `json:"pattern,omitempty" mapstructure:"pattern"`
	Any     bool    `json:"any,omitempty" mapstructure:"any"`
	// Ref names a condition supplied by the host through a registry.
	Ref string `json:"ref,omitempty" mapstructure:"ref"`
}

// StateSpec declares one state.
type StateSpec struct {
	Name      string        `json:"name" mapstructure:"name"`
	Kind      string        `json:"kind" mapstructure:"kind"`
	Condition ConditionSpec `json:"condition" mapstructure:"condition"`
	Then      string        `json:"then,omitempty" mapstructure:"then"`
	Else      string        `json:"else,omitempty" mapstructure:"else"`
}

// MachineFile is the content of an automaton file.
type MachineFile struct {
	Initial []string    `json:"initial" mapstructure:"initial"`
	States  []StateSpec `json:"states" mapstructure:"states"`
}

// LoadMachine reads an automaton file.
func LoadMachine(path string) (*MachineFile, error) {
	var f MachineFile
	if err := readFile(path, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

// DecodeMachine decodes an automaton document held in memory.
func DecodeMachine(data []byte, format Format) (*MachineFile, error) {
	var f MachineFile
	if err := decode("machine", data, format, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

// Compile turns c into a condition over strings. A "ref" condition
// always fails to compile here; use CompileWith.
func (c ConditionSpec) Compile() (automata.Condition[string], error) {
	return c.CompileWith(nil)
}

// CompileWith is like Compile and resolves "ref" against reg.
func (c ConditionSpec) CompileWith(reg *registry.Registry[string]) (automata.Condition[string], error) {
	set := 0
	var cond automata.Condition[string]
	if c.Equals != nil {
		set++
		cond = automata.Equal(*c.Equals)
	}
	if c.Prefix != "" {
		set++
		prefix := c.Prefix
		cond = automata.ConditionFunc[string](func(msg string) bool {
			return strings.HasPrefix(msg, prefix)
		})
	}
	if c.Pattern != "" {
		set++
		re, err := regexp2.Compile(c.Pattern, regexp2.None)
		if err != nil {
			return nil, fmt.Errorf("%w: pattern %q: %w", ErrInvalidConfig, c.Pattern, err)
		}
		re.MatchTimeout = PatternTimeout
		cond = automata.ConditionFunc[string](func(msg string) bool {
			ok, err := re.MatchString(msg)
			return err == nil && ok
		})
	}
	if c.Any {
		set++
		cond = automata.Always[string]{}
	}
	if c.Ref != "" {
		set++
		if reg == nil {
			return nil, fmt.Errorf("%w: condition %q needs a registry", ErrInvalidConfig, c.Ref)
		}
		found, err := reg.Lookup(c.Ref)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
		cond = found
	}
	if set != 1 {
		return nil, fmt.Errorf("%w: condition needs exactly one of equals, prefix, pattern, any or ref", ErrInvalidConfig)
	}
	return cond, nil
}

// Builder declares the states of the file on a dsl builder.
func (f *MachineFile) Builder() (*dsl.Builder[string], error) {
	return f.BuilderWith(nil)
}

// BuilderWith is like Builder and resolves "ref" conditions against reg.
func (f *MachineFile) BuilderWith(reg *registry.Registry[string]) (*dsl.Builder[string], error) {
	b := dsl.New[string]()
	seen := make(map[string]bool, len(f.States))
	for i, s := range f.States {
		if s.Name == "" {
			return nil, fmt.Errorf("%w: state %d has no name", ErrInvalidConfig, i)
		}
		if seen[s.Name] {
			return nil, fmt.Errorf("%w: duplicate state %q", ErrInvalidConfig, s.Name)
		}
		seen[s.Name] = true
		sb := b.Add(s.Name)
		switch s.Kind {
		case KindMatchOne, KindMatchRepeat:
			cond, err := s.Condition.CompileWith(reg)
			if err != nil {
				return nil, fmt.Errorf("state %q: %w", s.Name, err)
			}
			if s.Kind == KindMatchOne {
				sb.MatchOne(cond)
			} else {
				sb.MatchRepeat(cond)
			}
			sb.True(s.Then).False(s.Else)
		case KindReturn:
			if s.Then != "" || s.Else != "" {
				return nil, fmt.Errorf("%w: return state %q cannot have successors", ErrInvalidConfig, s.Name)
			}
			sb.Return()
		default:
			return nil, fmt.Errorf("%w: state %q has unknown kind %q", ErrInvalidConfig, s.Name, s.Kind)
		}
	}
	for _, name := range f.Initial {
		if !seen[name] {
			return nil, fmt.Errorf("%w: initial state %q: %w", ErrInvalidConfig, name, automata.ErrUnknownState)
		}
		b.Add(name).Initial()
	}
	return b, nil
}

// Graph builds the automaton graph described by the file.
func (f *MachineFile) Graph() (*automata.Graph[string], error) {
	return f.GraphWith(nil)
}

// GraphWith is like Graph and resolves "ref" conditions against reg.
func (f *MachineFile) GraphWith(reg *registry.Registry[string]) (*automata.Graph[string], error) {
	b, err := f.BuilderWith(reg)
	if err != nil {
		return nil, err
	}
	return b.Build()
}
