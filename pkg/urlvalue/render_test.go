package urlvalue_test

import (
	"testing"
	"time"

	"github.com/aretw0/waypoint/pkg/urlmatch"
	"github.com/aretw0/waypoint/pkg/urltemplate"
	"github.com/aretw0/waypoint/pkg/urlvalue"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name     string
		template string
		values   []urlvalue.Value
		want     string
	}{
		{
			name:     "placeholder",
			template: "/users/{id}",
			values:   []urlvalue.Value{urlvalue.Int("id", 42)},
			want:     "/users/42",
		},
		{
			name:     "placeholder name is case insensitive",
			template: "/users/{id}/edit",
			values:   []urlvalue.Value{urlvalue.String("ID", "a b")},
			want:     "/users/a+b/edit",
		},
		{
			name:     "missing placeholder renders nothing",
			template: "/users/{id}",
			want:     "/users/",
		},
		{
			name:     "empty query values are kept",
			template: "?name=&active=true&debug=",
			want:     "?name=&active=true&debug=",
		},
		{
			name:     "supplied query value",
			template: "/list?tab=all&page?={}",
			values:   []urlvalue.Value{urlvalue.Int("page", 3)},
			want:     "/list?tab=all&page=3",
		},
		{
			name:     "optional pair skipped",
			template: "/list?page?={}&tab=all",
			want:     "/list?tab=all",
		},
		{
			name:     "all pairs skipped drops the question mark",
			template: "/list?page?={}",
			want:     "/list",
		},
		{
			name:     "back reference reads the referenced name",
			template: "/list?tab={section}",
			values:   []urlvalue.Value{urlvalue.String("section", "open")},
			want:     "/list?tab=open",
		},
		{
			name:     "escaping",
			template: "/q?term={}",
			values:   []urlvalue.Value{urlvalue.String("term", "a&b=c")},
			want:     "/q?term=a%26b%3Dc",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := urlvalue.Render(urltemplate.MustParse(tt.template), tt.values)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRender_RoundTripThroughMatcher(t *testing.T) {
	tpl := urltemplate.MustParse("/files/{filename}")
	m := urlmatch.New[string]()
	require.NoError(t, m.Add(tpl, "file"))

	res, err := m.Match("/files/my%20document.pdf")
	require.NoError(t, err)
	require.True(t, res.Found)

	url, err := urlvalue.Render(tpl, urlvalue.FromCaptures(res.Captures))
	require.NoError(t, err)
	assert.Equal(t, "/files/my+document.pdf", url)

	again, err := m.Match(url)
	require.NoError(t, err)
	assert.Equal(t, res.Captures, again.Captures)
}

func TestRender_TypedValues(t *testing.T) {
	id := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	at := time.Date(2024, 3, 9, 14, 5, 0, 0, time.FixedZone("X", 3600))
	tpl := urltemplate.MustParse("/orders/{id}?since={}")
	values := []urlvalue.Value{urlvalue.UUID("id", id), urlvalue.Time("since", at)}

	got, err := urlvalue.Render(tpl, values)
	require.NoError(t, err)
	assert.Equal(t, "/orders/6ba7b810-9dad-11d1-80b4-00c04fd430c8?since=2024-03-09T13%3A05%3A00Z", got)

	got, err = urlvalue.Render(tpl, values, urlvalue.WithFormats(urlvalue.Formats{TimeLayout: "2006-01-02", UUIDUpper: true}))
	require.NoError(t, err)
	assert.Equal(t, "/orders/6BA7B810-9DAD-11D1-80B4-00C04FD430C8?since=2024-03-09", got)
}

func TestRender_InvalidOperation(t *testing.T) {
	tok := func(k urltemplate.Kind, v string) urltemplate.Token {
		return urltemplate.Token{Kind: k, Value: v, Name: v}
	}

	tests := []struct {
		name   string
		tokens []urltemplate.Token
	}{
		{"value without name", []urltemplate.Token{
			tok(urltemplate.QuestionMark, "?"), tok(urltemplate.VariableValue, "x"),
		}},
		{"name at end", []urltemplate.Token{
			tok(urltemplate.QuestionMark, "?"), tok(urltemplate.VariableName, "x"),
		}},
		{"path token in query", []urltemplate.Token{
			tok(urltemplate.QuestionMark, "?"), tok(urltemplate.Slash, "/"),
		}},
		{"query token in path", []urltemplate.Token{
			tok(urltemplate.Slash, "/"), tok(urltemplate.VariableName, "x"),
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := urlvalue.Render(urltemplate.New(tt.tokens...), nil)
			assert.ErrorIs(t, err, urlvalue.ErrInvalidOperation)
		})
	}

	_, err := urlvalue.Render(nil, nil)
	assert.ErrorIs(t, err, urltemplate.ErrInvalidInput)
}
