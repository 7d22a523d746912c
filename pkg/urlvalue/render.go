package urlvalue

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/aretw0/waypoint/pkg/urltemplate"
)

// ErrInvalidOperation is returned when a template's token order is broken.
// Parsed templates never trigger it; hand-built ones may.
var ErrInvalidOperation = errors.New("invalid operation")

type options struct {
	formats Formats
}

// Option configures Render.
type Option func(*options)

// WithFormats overrides the formats used for typed values.
func WithFormats(f Formats) Option {
	return func(o *options) {
		o.formats = f
	}
}

// Render substitutes values into t.
//
// Placeholders without a value render as nothing. A query pair renders with
// the supplied value, is skipped when optional and absent, and falls back to
// the template's literal value otherwise. Separators are written only in
// front of rendered pairs.
func Render(t *urltemplate.Template, values []Value, opts ...Option) (string, error) {
	if t == nil {
		return "", fmt.Errorf("%w: nil template", urltemplate.ErrInvalidInput)
	}
	o := options{formats: DefaultFormats()}
	for _, opt := range opts {
		opt(&o)
	}

	var sb strings.Builder
	tokens := t.Tokens()
	query := false
	params := 0

	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		if !query {
			switch tok.Kind {
			case urltemplate.Slash:
				sb.WriteByte('/')
			case urltemplate.Const:
				sb.WriteString(url.QueryEscape(tok.Value))
			case urltemplate.Placeholder:
				if v, ok := lookup(values, tok.Name); ok {
					sb.WriteString(url.QueryEscape(v.Format(o.formats)))
				}
			case urltemplate.QuestionMark:
				query = true
			default:
				return "", fmt.Errorf("%w: %s at position %d before the query", ErrInvalidOperation, tok.Kind, i)
			}
			continue
		}

		switch tok.Kind {
		case urltemplate.Ampersand:
		case urltemplate.VariableName:
			if i+1 >= len(tokens) || tokens[i+1].Kind != urltemplate.VariableValue {
				return "", fmt.Errorf("%w: variable %q at position %d has no value", ErrInvalidOperation, tok.Value, i)
			}
			val := tokens[i+1]
			i++

			var text string
			if v, ok := lookup(values, val.Name, tok.Value); ok {
				text = v.Format(o.formats)
			} else if tok.Optional || val.Optional {
				continue
			} else {
				text = val.Value
			}

			if params == 0 {
				sb.WriteByte('?')
			} else {
				sb.WriteByte('&')
			}
			params++
			sb.WriteString(url.QueryEscape(tok.Value))
			sb.WriteByte('=')
			sb.WriteString(url.QueryEscape(text))
		case urltemplate.VariableValue:
			return "", fmt.Errorf("%w: value for %q at position %d has no variable", ErrInvalidOperation, tok.Name, i)
		default:
			return "", fmt.Errorf("%w: %s at position %d inside the query", ErrInvalidOperation, tok.Kind, i)
		}
	}
	return sb.String(), nil
}
