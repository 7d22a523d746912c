package urlvalue

import (
	"strconv"
	"strings"
	"time"

	"github.com/aretw0/waypoint/pkg/urlmatch"
	"github.com/google/uuid"
)

// DefaultTimeLayout renders times in UTC with a literal Z suffix.
const DefaultTimeLayout = "2006-01-02T15:04:05Z"

// Formats controls how typed values are rendered.
type Formats struct {
	// TimeLayout is a time.Format layout. Times are converted to UTC first.
	TimeLayout string
	// UUIDUpper renders UUIDs in upper case.
	UUIDUpper bool
}

// DefaultFormats returns the formats used when none are given.
func DefaultFormats() Formats {
	return Formats{TimeLayout: DefaultTimeLayout}
}

type kind uint8

const (
	kindString kind = iota
	kindInt
	kindUUID
	kindTime
)

// Value is a named value to substitute into a template.
type Value struct {
	Name string

	kind kind
	s    string
	i    int64
	u    uuid.UUID
	t    time.Time
}

// String returns a text value.
func String(name, v string) Value {
	return Value{Name: name, kind: kindString, s: v}
}

// Int returns an integer value.
func Int(name string, v int64) Value {
	return Value{Name: name, kind: kindInt, i: v}
}

// UUID returns a UUID value.
func UUID(name string, v uuid.UUID) Value {
	return Value{Name: name, kind: kindUUID, u: v}
}

// Time returns a timestamp value.
func Time(name string, v time.Time) Value {
	return Value{Name: name, kind: kindTime, t: v}
}

// Format renders the value as text, unescaped.
func (v Value) Format(f Formats) string {
	switch v.kind {
	case kindInt:
		return strconv.FormatInt(v.i, 10)
	case kindUUID:
		if f.UUIDUpper {
			return strings.ToUpper(v.u.String())
		}
		return v.u.String()
	case kindTime:
		layout := f.TimeLayout
		if layout == "" {
			layout = DefaultTimeLayout
		}
		return v.t.UTC().Format(layout)
	default:
		return v.s
	}
}

// FromCaptures turns match captures into string values.
func FromCaptures(captures []urlmatch.Capture) []Value {
	out := make([]Value, 0, len(captures))
	for _, c := range captures {
		out = append(out, String(c.Name, c.Value))
	}
	return out
}

func lookup(values []Value, names ...string) (Value, bool) {
	for _, name := range names {
		for _, v := range values {
			if strings.EqualFold(v.Name, name) {
				return v, true
			}
		}
	}
	return Value{}, false
}
