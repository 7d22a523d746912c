package waypoint

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/aretw0/waypoint/internal/logging"
	"github.com/aretw0/waypoint/pkg/config"
	"github.com/aretw0/waypoint/pkg/observability"
	"github.com/aretw0/waypoint/pkg/schema"
	"github.com/aretw0/waypoint/pkg/urlmatch"
	"github.com/aretw0/waypoint/pkg/urltemplate"
	"github.com/aretw0/waypoint/pkg/urlvalue"
)

var (
	// ErrDuplicatePage is returned when a page name is registered twice.
	ErrDuplicatePage = errors.New("duplicate page")
	// ErrUnknownPage is returned when a page name is not registered.
	ErrUnknownPage = errors.New("unknown page")
)

// Page is a named destination reachable through a URL template.
type Page struct {
	Name     string
	Template *urltemplate.Template
	Title    string
	// Params types the captured parameters. Nil keeps every capture a string.
	Params schema.Schema
}

// Values converts captures into typed values according to Params.
func (p *Page) Values(captures []urlmatch.Capture) ([]urlvalue.Value, error) {
	return p.Params.Convert(captures)
}

// Resolution is the outcome of Site.Resolve.
type Resolution = urlmatch.Result[*Page]

// Site is a registry of pages. It is safe for concurrent use.
type Site struct {
	mu      sync.RWMutex
	matcher *urlmatch.Matcher[*Page]
	pages   map[string]*Page
	order   []*Page

	logger  *slog.Logger
	hooks   urlmatch.Hooks
	formats urlvalue.Formats
}

// Option defines a functional option for configuring a Site.
type Option func(*Site)

// WithLogger sets a custom structured logger for the site and its matcher.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Site) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMatchHooks registers callbacks invoked after every Resolve.
func WithMatchHooks(hooks urlmatch.Hooks) Option {
	return func(s *Site) {
		s.hooks = hooks
	}
}

// WithMetrics feeds match outcomes into m.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Site) {
		if m != nil {
			s.hooks = m.MatchHooks()
		}
	}
}

// WithFormats sets how typed values are rendered by URL.
func WithFormats(f urlvalue.Formats) Option {
	return func(s *Site) {
		s.formats = f
	}
}

// NewSite creates an empty site.
func NewSite(opts ...Option) *Site {
	s := &Site{
		pages:   make(map[string]*Page),
		logger:  logging.NewNop(),
		formats: urlvalue.DefaultFormats(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.matcher = urlmatch.New[*Page](
		urlmatch.WithLogger(s.logger),
		urlmatch.WithHooks(s.hooks),
		urlmatch.WithQueryCaptures(true),
	)
	return s
}

// LoadSite reads a site file (YAML or JSON) and registers its pages.
func LoadSite(path string, opts ...Option) (*Site, error) {
	f, err := config.LoadSite(path)
	if err != nil {
		return nil, err
	}
	return FromConfig(f, opts...)
}

// FromConfig registers the pages of an already decoded site file.
func FromConfig(f *config.SiteFile, opts ...Option) (*Site, error) {
	s := NewSite(opts...)
	for _, p := range f.Pages {
		t, err := urltemplate.Parse(p.Template)
		if err != nil {
			return nil, fmt.Errorf("page %q: %w", p.Name, err)
		}
		params, err := schema.ParseTypeMap(p.Params)
		if err != nil {
			return nil, fmt.Errorf("page %q: %w", p.Name, err)
		}
		if err := s.Add(&Page{Name: p.Name, Template: t, Title: p.Title, Params: params}); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Register parses template and adds a page for it.
func (s *Site) Register(name, template, title string) (*Page, error) {
	t, err := urltemplate.Parse(template)
	if err != nil {
		return nil, fmt.Errorf("page %q: %w", name, err)
	}
	p := &Page{Name: name, Template: t, Title: title}
	if err := s.Add(p); err != nil {
		return nil, err
	}
	return p, nil
}

// Add registers p. Names must be unique. When two pages share a template
// path, the later one receives the matches.
func (s *Site) Add(p *Page) error {
	if p == nil || p.Name == "" {
		return fmt.Errorf("%w: page must have a name", urltemplate.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.pages[p.Name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicatePage, p.Name)
	}
	if err := s.matcher.Add(p.Template, p); err != nil {
		return fmt.Errorf("page %q: %w", p.Name, err)
	}
	s.pages[p.Name] = p
	s.order = append(s.order, p)
	s.logger.Debug("page registered", "page", p.Name, "template", p.Template.Raw())
	return nil
}

// Page returns the page called name.
func (s *Site) Page(name string) (*Page, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.pages[name]
	return p, ok
}

// Pages returns the pages in registration order.
func (s *Site) Pages() []*Page {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Page, len(s.order))
	copy(out, s.order)
	return out
}

// Len returns the number of registered pages.
func (s *Site) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// Resolve matches url against the registered pages. Placeholders and query
// parameters declared as "{}" are captured. A URL that reaches no page is
// not an error: check Found on the result.
func (s *Site) Resolve(url string) (Resolution, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.matcher.Match(url)
}

// URL renders the template of the page called name with values.
func (s *Site) URL(name string, values ...urlvalue.Value) (string, error) {
	p, ok := s.Page(name)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownPage, name)
	}
	return urlvalue.Render(p.Template, values, urlvalue.WithFormats(s.formats))
}

// Walk visits the decision tree of the site. Pages must not be added from
// fn.
func (s *Site) Walk(fn func(n *urlmatch.Node[*Page], depth int) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.matcher.Walk(fn)
}

// Matcher returns the decision tree. Callers must not add to it directly.
func (s *Site) Matcher() *urlmatch.Matcher[*Page] {
	return s.matcher
}
