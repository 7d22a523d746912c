package schema

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/waypoint/pkg/urlmatch"
	"github.com/aretw0/waypoint/pkg/urlvalue"
)

func TestConvert_Success(t *testing.T) {
	schema := Schema{
		"id":    Int(),
		"ref":   UUID(),
		"since": Time(""),
	}

	captures := []urlmatch.Capture{
		{Name: "ID", Value: "42"},
		{Name: "ref", Value: "6ba7b810-9dad-11d1-80b4-00c04fd430c8"},
		{Name: "since", Value: "2024-05-01T10:00:00Z"},
		{Name: "tab", Value: "posts"},
	}

	values, err := schema.Convert(captures)
	if err != nil {
		t.Fatalf("Convert() error = %v, want nil", err)
	}
	if len(values) != 4 {
		t.Fatalf("Convert() = %d values, want 4", len(values))
	}

	formats := urlvalue.DefaultFormats()
	want := []string{"42", "6ba7b810-9dad-11d1-80b4-00c04fd430c8", "2024-05-01T10:00:00Z", "posts"}
	for i, v := range values {
		if v.Name != captures[i].Name {
			t.Errorf("value %d name = %q, want %q", i, v.Name, captures[i].Name)
		}
		if got := v.Format(formats); got != want[i] {
			t.Errorf("value %d = %q, want %q", i, got, want[i])
		}
	}
}

func TestConvert_AggregatesFailures(t *testing.T) {
	schema := Schema{"id": Int(), "ref": UUID()}

	_, err := schema.Convert([]urlmatch.Capture{
		{Name: "id", Value: "abc"},
		{Name: "ref", Value: "nope"},
	})
	if err == nil {
		t.Fatal("Convert() should return error for malformed parameters")
	}

	errs := ValidationErrors(err)
	if len(errs) != 2 {
		t.Fatalf("ValidationErrors() = %d errors, want 2", len(errs))
	}

	var validErr *ValidationError
	if !errors.As(err, &validErr) {
		t.Fatalf("error should wrap *ValidationError, got %T", err)
	}
	if validErr.Key != "id" || validErr.Value != "abc" {
		t.Errorf("first error = %+v, want key id value abc", validErr)
	}
	if !strings.Contains(err.Error(), "2 validation errors") {
		t.Errorf("Error() = %q, want a count", err.Error())
	}
}

func TestValidate(t *testing.T) {
	if err := Validate(nil, []urlmatch.Capture{{Name: "x", Value: "y"}}); err != nil {
		t.Errorf("Validate() without schema = %v, want nil", err)
	}
	err := Validate(Schema{"n": Int()}, []urlmatch.Capture{{Name: "n", Value: "1.5"}})
	if err == nil || err.Error() != `parameter "n": expected int (got "1.5")` {
		t.Errorf("Validate() = %v", err)
	}
}

func TestTime_Layout(t *testing.T) {
	typ := Time("2006-01-02")
	v, err := typ.Convert("day", "2024-02-29")
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	got := v.Format(urlvalue.Formats{TimeLayout: time.DateOnly})
	if got != "2024-02-29" {
		t.Errorf("Format() = %q, want 2024-02-29", got)
	}
}

func TestCustom(t *testing.T) {
	upper := Custom("upper", func(name, raw string) (urlvalue.Value, error) {
		return urlvalue.String(name, strings.ToUpper(raw)), nil
	})
	if upper.Name() != "upper" {
		t.Errorf("Name() = %q", upper.Name())
	}
	v, _ := upper.Convert("x", "abc")
	if got := v.Format(urlvalue.DefaultFormats()); got != "ABC" {
		t.Errorf("Convert() = %q, want ABC", got)
	}
}

func TestParseTypeMap(t *testing.T) {
	schema, err := ParseTypeMap(map[string]string{"id": "int", "ref": "uuid", "at": "time", "q": "string"})
	if err != nil {
		t.Fatalf("ParseTypeMap() error = %v", err)
	}
	for key, want := range map[string]string{"id": "int", "ref": "uuid", "at": "time", "q": "string"} {
		typ, ok := schema.TypeOf(strings.ToUpper(key))
		if !ok || typ.Name() != want {
			t.Errorf("TypeOf(%q) = %v, want %s", key, typ, want)
		}
	}

	if _, err := ParseTypeMap(map[string]string{"x": "float"}); err == nil {
		t.Error("ParseTypeMap() should reject unsupported types")
	}
}
