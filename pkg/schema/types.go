package schema

import (
	"fmt"
	"strconv"
	"time"

	"github.com/aretw0/waypoint/pkg/urlvalue"
	"github.com/google/uuid"
)

// Type converts captured text into a typed value.
type Type interface {
	// Name returns the name used in site files (e.g., "string", "int").
	Name() string
	// Convert parses raw into a value called name.
	Convert(name, raw string) (urlvalue.Value, error)
}

// --- Built-in Type Implementations ---

// StringType keeps the text as is.
type StringType struct{}

func (t *StringType) Name() string { return "string" }

func (t *StringType) Convert(name, raw string) (urlvalue.Value, error) {
	return urlvalue.String(name, raw), nil
}

// IntType parses base 10 integers.
type IntType struct{}

func (t *IntType) Name() string { return "int" }

func (t *IntType) Convert(name, raw string) (urlvalue.Value, error) {
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return urlvalue.Value{}, fmt.Errorf("expected int")
	}
	return urlvalue.Int(name, n), nil
}

// UUIDType parses UUIDs in any of the forms accepted by uuid.Parse.
type UUIDType struct{}

func (t *UUIDType) Name() string { return "uuid" }

func (t *UUIDType) Convert(name, raw string) (urlvalue.Value, error) {
	u, err := uuid.Parse(raw)
	if err != nil {
		return urlvalue.Value{}, fmt.Errorf("expected uuid")
	}
	return urlvalue.UUID(name, u), nil
}

// TimeType parses timestamps with a time.Parse layout.
type TimeType struct {
	layout string
}

func (t *TimeType) Name() string { return "time" }

func (t *TimeType) Convert(name, raw string) (urlvalue.Value, error) {
	ts, err := time.Parse(t.layout, raw)
	if err != nil {
		return urlvalue.Value{}, fmt.Errorf("expected time in layout %s", t.layout)
	}
	return urlvalue.Time(name, ts), nil
}

// CustomType applies a user-defined conversion function.
type CustomType struct {
	name    string
	convert func(name, raw string) (urlvalue.Value, error)
}

func (t *CustomType) Name() string { return t.name }

func (t *CustomType) Convert(name, raw string) (urlvalue.Value, error) {
	return t.convert(name, raw)
}

// --- Factory Functions ---

// String creates a text type.
func String() Type { return &StringType{} }

// Int creates an integer type.
func Int() Type { return &IntType{} }

// UUID creates a UUID type.
func UUID() Type { return &UUIDType{} }

// Time creates a timestamp type. An empty layout means
// urlvalue.DefaultTimeLayout, the layout Render writes.
func Time(layout string) Type {
	if layout == "" {
		layout = urlvalue.DefaultTimeLayout
	}
	return &TimeType{layout: layout}
}

// Custom creates a type with a user-defined conversion function.
func Custom(name string, convert func(name, raw string) (urlvalue.Value, error)) Type {
	return &CustomType{name: name, convert: convert}
}

// ParseType converts a type name to a Type.
// Supports "string", "int", "uuid" and "time".
func ParseType(typeStr string) (Type, error) {
	switch typeStr {
	case "string":
		return String(), nil
	case "int":
		return Int(), nil
	case "uuid":
		return UUID(), nil
	case "time":
		return Time(""), nil
	default:
		return nil, fmt.Errorf("unsupported type: %s", typeStr)
	}
}

// ParseTypeMap converts a map of parameter names to type names into a Schema.
// Example: {"id": "int", "since": "time"}
func ParseTypeMap(typeMap map[string]string) (Schema, error) {
	result := make(Schema, len(typeMap))
	for key, typeStr := range typeMap {
		t, err := ParseType(typeStr)
		if err != nil {
			return nil, fmt.Errorf("parameter %s: %w", key, err)
		}
		result[key] = t
	}
	return result, nil
}
