package urltemplate

import (
	"fmt"
	"net/url"
	"strings"
)

// Template is an immutable, parsed token sequence.
type Template struct {
	raw    string
	tokens []Token
}

// Parse tokenizes a route template.
//
// It returns ErrInvalidInput for empty or whitespace-only input and a
// *ParseError (matching ErrInvalidTemplate) for malformed placeholders.
func Parse(raw string) (*Template, error) {
	tokens, err := lex(raw, templateMode)
	if err != nil {
		return nil, err
	}
	return &Template{raw: raw, tokens: tokens}, nil
}

// TryParse is like Parse but reports failure with a flag instead of an error.
func TryParse(raw string) (*Template, bool) {
	t, err := Parse(raw)
	if err != nil {
		return nil, false
	}
	return t, true
}

// MustParse is like Parse but panics if the template cannot be parsed.
// It simplifies the initialization of package-level route tables.
func MustParse(raw string) *Template {
	t, err := Parse(raw)
	if err != nil {
		panic(fmt.Sprintf("urltemplate: Parse(%q): %v", raw, err))
	}
	return t
}

// ParseURL tokenizes a concrete URL path and query. Braces are plain
// characters and nameless query values are dropped.
func ParseURL(raw string) (*Template, error) {
	tokens, err := lex(raw, urlMode)
	if err != nil {
		return nil, err
	}
	return &Template{raw: raw, tokens: tokens}, nil
}

// New builds a template from tokens without validating their order.
// Raw reports the rendered text.
func New(tokens ...Token) *Template {
	t := &Template{tokens: make([]Token, len(tokens))}
	copy(t.tokens, tokens)
	t.raw = t.String()
	return t
}

// Raw returns the text the template was parsed from.
func (t *Template) Raw() string {
	return t.raw
}

// Tokens returns a copy of the token sequence.
func (t *Template) Tokens() []Token {
	out := make([]Token, len(t.tokens))
	copy(out, t.tokens)
	return out
}

// Len returns the number of tokens.
func (t *Template) Len() int {
	return len(t.tokens)
}

// At returns the token at position i.
func (t *Template) At(i int) Token {
	return t.tokens[i]
}

// String renders the template back to text, escaping literal values.
// Parsing the result yields the same token kinds, values and optionality.
func (t *Template) String() string {
	var sb strings.Builder
	var lastName string
	for _, tok := range t.tokens {
		switch tok.Kind {
		case Slash:
			sb.WriteByte('/')
		case Const:
			sb.WriteString(url.QueryEscape(tok.Value))
		case Placeholder:
			writeBraced(&sb, tok.Value, tok.Optional)
		case QuestionMark:
			sb.WriteByte('?')
		case VariableName:
			lastName = tok.Value
			sb.WriteString(url.QueryEscape(tok.Value))
			if tok.Optional {
				sb.WriteByte('?')
			}
			sb.WriteByte('=')
		case VariableValue:
			switch {
			case tok.Value != "":
				sb.WriteString(url.QueryEscape(tok.Value))
			case tok.Optional:
				writeBraced(&sb, url.QueryEscape(tok.Name), true)
			case tok.Name == lastName:
				sb.WriteString("{}")
			default:
				writeBraced(&sb, url.QueryEscape(tok.Name), false)
			}
		case Ampersand:
			sb.WriteByte('&')
		}
	}
	return sb.String()
}

func writeBraced(sb *strings.Builder, name string, optional bool) {
	sb.WriteByte('{')
	sb.WriteString(name)
	if optional {
		sb.WriteByte('?')
	}
	sb.WriteByte('}')
}
