package urltemplate

import "fmt"

// Kind classifies a token.
type Kind uint8

const (
	// Slash is a path separator.
	Slash Kind = iota
	// Const is a literal path segment.
	Const
	// Placeholder is a named path segment bound at match time. Templates only.
	Placeholder
	// QuestionMark starts the query portion.
	QuestionMark
	// VariableName is the name of a query parameter.
	VariableName
	// VariableValue is the value of a query parameter.
	VariableValue
	// Ampersand separates query parameter pairs.
	Ampersand
)

var kindNames = [...]string{
	Slash:         "Slash",
	Const:         "Const",
	Placeholder:   "Placeholder",
	QuestionMark:  "QuestionMark",
	VariableName:  "VariableName",
	VariableValue: "VariableValue",
	Ampersand:     "Ampersand",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// IsStructural reports whether tokens of this kind carry no value of their own.
func (k Kind) IsStructural() bool {
	return k == Slash || k == QuestionMark || k == Ampersand
}

// IsPath reports whether the kind may appear before the QuestionMark.
func (k Kind) IsPath() bool {
	return k == Slash || k == Const || k == Placeholder
}

// Token is one classified fragment of a template or URL.
//
// Value holds the decoded text. For Placeholder and VariableName tokens Name
// equals Value. For VariableValue tokens Name refers to the parameter the value
// belongs to; an empty Value with a Name different from the preceding
// VariableName is a back-reference ("a={b}").
type Token struct {
	Kind     Kind
	Value    string
	Name     string
	Optional bool
}

func (t Token) String() string {
	switch t.Kind {
	case VariableValue:
		return fmt.Sprintf("%s(%q name=%q optional=%t)", t.Kind, t.Value, t.Name, t.Optional)
	case Placeholder, VariableName:
		return fmt.Sprintf("%s(%q optional=%t)", t.Kind, t.Value, t.Optional)
	default:
		return fmt.Sprintf("%s(%q)", t.Kind, t.Value)
	}
}

func slash() Token        { return Token{Kind: Slash, Value: "/"} }
func questionMark() Token { return Token{Kind: QuestionMark, Value: "?"} }
func ampersand() Token    { return Token{Kind: Ampersand, Value: "&"} }
