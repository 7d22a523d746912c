package urltemplate

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is returned when the input is empty or whitespace only.
var ErrInvalidInput = errors.New("invalid input")

// ErrInvalidTemplate is returned when a template cannot be parsed.
// Parse errors are reported as *ParseError, which wraps this value.
var ErrInvalidTemplate = errors.New("invalid template")

// Reason describes why a template failed to parse.
type Reason string

const (
	ReasonUnclosedPlaceholder Reason = "unclosed placeholder"
	ReasonEmptyPlaceholder    Reason = "empty placeholder"
	ReasonStrayBrace          Reason = "stray closing brace"
	ReasonEmptyVariableName   Reason = "empty variable name"
	ReasonUnexpectedChar      Reason = "unexpected character"
)

// ParseError reports the position of a template syntax error.
type ParseError struct {
	Input  string
	Offset int
	Reason Reason
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s at offset %d in %q", ErrInvalidTemplate, e.Reason, e.Offset, e.Input)
}

func (e *ParseError) Unwrap() error {
	return ErrInvalidTemplate
}
