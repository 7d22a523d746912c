package urltemplate

import (
	"strings"
)

type mode uint8

const (
	// templateMode recognizes placeholders, optional markers and back-references.
	templateMode mode = iota
	// urlMode treats braces as literal characters.
	urlMode
)

type lexer struct {
	input  string
	mode   mode
	pos    int
	query  bool
	tokens []Token
}

func lex(input string, m mode) ([]Token, error) {
	if strings.TrimSpace(input) == "" {
		return nil, ErrInvalidInput
	}
	l := &lexer{input: input, mode: m}
	if err := l.run(); err != nil {
		return nil, err
	}
	return l.tokens, nil
}

func (l *lexer) fail(offset int, reason Reason) error {
	return &ParseError{Input: l.input, Offset: offset, Reason: reason}
}

func (l *lexer) emit(t Token) {
	l.tokens = append(l.tokens, t)
}

func (l *lexer) afterValue() bool {
	return len(l.tokens) > 0 && l.tokens[len(l.tokens)-1].Kind == VariableValue
}

func (l *lexer) run() error {
	for l.pos < len(l.input) {
		var err error
		if l.query {
			err = l.lexQuery()
		} else {
			err = l.lexPath()
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (l *lexer) lexPath() error {
	switch c := l.input[l.pos]; {
	case c == '/':
		l.emit(slash())
		l.pos++
	case c == '?':
		l.emit(questionMark())
		l.query = true
		l.pos++
	case c == '{' && l.mode == templateMode:
		return l.lexPlaceholder()
	case c == '}' && l.mode == templateMode:
		return l.fail(l.pos, ReasonStrayBrace)
	default:
		l.lexConst()
	}
	return nil
}

func (l *lexer) lexPlaceholder() error {
	start := l.pos
	end := strings.IndexByte(l.input[start+1:], '}')
	if end < 0 {
		return l.fail(start, ReasonUnclosedPlaceholder)
	}
	end += start + 1
	name := l.input[start+1 : end]
	if i := strings.IndexByte(name, '{'); i >= 0 {
		return l.fail(start+1+i, ReasonUnexpectedChar)
	}
	name, optional := strings.CutSuffix(name, "?")
	if name == "" {
		return l.fail(start, ReasonEmptyPlaceholder)
	}
	l.emit(Token{Kind: Placeholder, Value: name, Name: name, Optional: optional})
	l.pos = end + 1
	return nil
}

func (l *lexer) lexConst() {
	stop := "/?"
	if l.mode == templateMode {
		stop = "/?{}"
	}
	start := l.pos
	end := strings.IndexAny(l.input[start:], stop)
	if end < 0 {
		end = len(l.input)
	} else {
		end += start
	}
	v := unescape(l.input[start:end])
	l.emit(Token{Kind: Const, Value: v, Name: v})
	l.pos = end
}

func (l *lexer) lexQuery() error {
	if l.input[l.pos] == '&' {
		// In a template "&" only separates pairs; "?&" and "&&" leave a name out.
		if l.mode == templateMode && !l.afterValue() {
			return l.fail(l.pos, ReasonEmptyVariableName)
		}
		l.emit(ampersand())
		l.pos++
		return nil
	}

	start := l.pos
	end := indexAnyFrom(l.input, start, "=&")
	rawName := l.input[start:end]
	optional := false
	if l.mode == templateMode {
		rawName, optional = strings.CutSuffix(rawName, "?")
	}
	name := unescape(rawName)

	if name == "" {
		if l.mode == templateMode {
			return l.fail(start, ReasonEmptyVariableName)
		}
		// A concrete URL may carry "=value" or "?=x"; there is nothing to bind it to.
		l.pos = indexAnyFrom(l.input, end, "&")
		if l.pos < len(l.input) {
			l.pos++
		}
		return nil
	}

	l.emit(Token{Kind: VariableName, Value: name, Name: name, Optional: optional})
	l.pos = end

	if l.pos >= len(l.input) || l.input[l.pos] != '=' {
		// flag parameter
		l.emit(Token{Kind: VariableValue, Name: name, Optional: optional})
		return nil
	}

	l.pos++
	vend := indexAnyFrom(l.input, l.pos, "&")
	raw := l.input[l.pos:vend]
	l.pos = vend

	if l.mode == templateMode {
		if ref, refOptional, ok := backReference(raw); ok {
			if ref == "" {
				ref, refOptional = name, optional
			}
			l.emit(Token{Kind: VariableValue, Name: ref, Optional: refOptional})
			return nil
		}
	}
	l.emit(Token{Kind: VariableValue, Value: unescape(raw), Name: name, Optional: optional})
	return nil
}

// backReference recognizes "{}", "{name}" and "{name?}" in a value position.
func backReference(raw string) (name string, optional bool, ok bool) {
	if len(raw) < 2 || raw[0] != '{' || raw[len(raw)-1] != '}' {
		return "", false, false
	}
	inner := raw[1 : len(raw)-1]
	if strings.ContainsAny(inner, "{}") {
		return "", false, false
	}
	name, optional = strings.CutSuffix(inner, "?")
	if name == "" {
		// "{?}" has no name to refer to.
		return "", false, !optional
	}
	return unescape(name), optional, true
}

func indexAnyFrom(s string, from int, chars string) int {
	i := strings.IndexAny(s[from:], chars)
	if i < 0 {
		return len(s)
	}
	return from + i
}

// unescape decodes form-style percent encoding. '+' becomes a space and
// malformed escapes are kept as they are.
func unescape(s string) string {
	if !strings.ContainsAny(s, "%+") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '+':
			b.WriteByte(' ')
		case c == '%' && i+2 < len(s) && ishex(s[i+1]) && ishex(s[i+2]):
			b.WriteByte(unhex(s[i+1])<<4 | unhex(s[i+2]))
			i += 2
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

func ishex(c byte) bool {
	switch {
	case '0' <= c && c <= '9':
		return true
	case 'a' <= c && c <= 'f':
		return true
	case 'A' <= c && c <= 'F':
		return true
	}
	return false
}

func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10
	}
	return 0
}
