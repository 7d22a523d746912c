package urlmatch

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/aretw0/waypoint/pkg/urltemplate"
)

var (
	// ErrInvalidInput is returned for nil templates and blank URLs.
	ErrInvalidInput = urltemplate.ErrInvalidInput
	// ErrInvalidTemplate is returned when a template does not start with a Slash.
	ErrInvalidTemplate = urltemplate.ErrInvalidTemplate
)

// Matcher holds a decision tree over registered templates.
//
// Add must not run concurrently with Match. Once the tree is built, Match
// is safe for concurrent use.
type Matcher[P any] struct {
	root   *Node[P]
	size   int
	opts   options
	logger *slog.Logger
}

// New creates an empty Matcher whose root is a Slash node.
func New[P any](opts ...Option) *Matcher[P] {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Matcher[P]{
		root:   &Node[P]{token: urltemplate.Token{Kind: urltemplate.Slash, Value: "/"}},
		opts:   o,
		logger: o.logger,
	}
}

// Root returns the root node of the tree.
func (m *Matcher[P]) Root() *Node[P] {
	return m.root
}

// Len returns the number of distinct template paths carrying a page.
func (m *Matcher[P]) Len() int {
	return m.size
}

// Add registers page under the template. Registering the same template
// path again replaces the page.
func (m *Matcher[P]) Add(t *urltemplate.Template, page P) error {
	if t == nil || t.Len() == 0 {
		return fmt.Errorf("%w: nil template", ErrInvalidInput)
	}
	if t.At(0).Kind != urltemplate.Slash {
		return fmt.Errorf("%w: %q must start with '/'", ErrInvalidTemplate, t.Raw())
	}

	node := m.root
	for i := 1; i < t.Len(); i++ {
		tok := t.At(i)
		next := node.childFor(tok)
		if next == nil {
			next = &Node[P]{token: tok}
			node.children = append(node.children, next)
		}
		node = next
	}

	if !node.hasPage {
		m.size++
	}
	node.page = page
	node.hasPage = true
	m.logger.Debug("template registered", "template", t.Raw())
	return nil
}

// Match resolves url against the tree. Absolute http and https URLs are
// reduced to their path and query first.
//
// A URL that does not reach a page is not an error: the result has Found
// set to false and keeps whatever was captured before the walk stopped.
func (m *Matcher[P]) Match(url string) (Result[P], error) {
	if strings.TrimSpace(url) == "" {
		return Result[P]{}, fmt.Errorf("%w: empty url", ErrInvalidInput)
	}

	u, err := urltemplate.ParseURL(stripAuthority(url))
	if err != nil {
		return Result[P]{}, err
	}

	res, depth := m.walk(u)
	m.logger.Debug("url matched", "url", url, "found", res.Found, "captures", len(res.Captures))
	if m.opts.hooks.OnMatch != nil {
		m.opts.hooks.OnMatch(MatchEvent{URL: url, Found: res.Found, Captures: len(res.Captures), Depth: depth})
	}
	return res, nil
}

func (m *Matcher[P]) walk(u *urltemplate.Template) (Result[P], int) {
	var res Result[P]
	if u.At(0).Kind != urltemplate.Slash {
		return res, 0
	}

	node := m.root
	for i := 1; i < u.Len(); i++ {
		tok := u.At(i)
		next := node.route(tok)
		if next == nil {
			return res, i
		}
		switch {
		case next.token.Kind == urltemplate.Placeholder:
			res.Captures = append(res.Captures, Capture{Name: next.token.Name, Value: tok.Value})
		case m.opts.queryCaptures && next.token.Kind == urltemplate.VariableValue && next.token.Value == "":
			res.Captures = append(res.Captures, Capture{Name: next.token.Name, Value: tok.Value})
		}
		node = next
	}

	res.Page, res.Found = node.page, node.hasPage
	return res, u.Len()
}

// Walk visits the tree depth first, parents before children. Returning a
// non-nil error from fn stops the walk and returns that error.
func (m *Matcher[P]) Walk(fn func(n *Node[P], depth int) error) error {
	return walkNode(m.root, 0, fn)
}

func walkNode[P any](n *Node[P], depth int, fn func(*Node[P], int) error) error {
	if err := fn(n, depth); err != nil {
		return err
	}
	for _, c := range n.children {
		if err := walkNode(c, depth+1, fn); err != nil {
			return err
		}
	}
	return nil
}

// stripAuthority drops "http://host" or "https://host" from an absolute URL.
// The scheme is compared case-insensitively.
// A URL without a path after the host becomes "/".
func stripAuthority(url string) string {
	for _, scheme := range []string{"http://", "https://"} {
		if len(url) >= len(scheme) && strings.EqualFold(url[:len(scheme)], scheme) {
			rest := url[len(scheme):]
			if i := strings.IndexByte(rest, '/'); i >= 0 {
				return rest[i:]
			}
			return "/"
		}
	}
	return url
}
