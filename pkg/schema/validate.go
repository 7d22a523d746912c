package schema

import (
	"strings"

	"github.com/aretw0/waypoint/pkg/urlmatch"
	"github.com/aretw0/waypoint/pkg/urlvalue"
)

// Schema is a map of parameter names to their expected types.
// Example: {"id": Int(), "ref": UUID()}
type Schema map[string]Type

// TypeOf returns the type declared for name, compared case-insensitively.
func (s Schema) TypeOf(name string) (Type, bool) {
	if t, ok := s[name]; ok {
		return t, true
	}
	for key, t := range s {
		if strings.EqualFold(key, name) {
			return t, true
		}
	}
	return nil, false
}

// Convert turns captures into values, in capture order.
// Returns an error with all conversion failures found.
func (s Schema) Convert(captures []urlmatch.Capture) ([]urlvalue.Value, error) {
	values := make([]urlvalue.Value, 0, len(captures))
	var errs []error

	for _, c := range captures {
		t, ok := s.TypeOf(c.Name)
		if !ok {
			values = append(values, urlvalue.String(c.Name, c.Value))
			continue
		}
		v, err := t.Convert(c.Name, c.Value)
		if err != nil {
			errs = append(errs, &ValidationError{
				Key:    c.Name,
				Reason: err.Error(),
				Value:  c.Value,
			})
			continue
		}
		values = append(values, v)
	}

	// If there are errors, aggregate them
	if len(errs) > 0 {
		return nil, &AggregateError{Errors: errs}
	}

	return values, nil
}

// Validate checks that every capture converts to its declared type.
func Validate(schema Schema, captures []urlmatch.Capture) error {
	if len(schema) == 0 {
		// No schema = no validation
		return nil
	}
	_, err := schema.Convert(captures)
	return err
}
