package config

import (
	"fmt"

	"github.com/aretw0/waypoint/pkg/schema"
	"github.com/aretw0/waypoint/pkg/urltemplate"
)

// Page is one routed page.
type Page struct {
	Name     string `json:"name" mapstructure:"name"`
	Template string `json:"template" mapstructure:"template"`
	Title    string `json:"title" mapstructure:"title"`
	// Params declares parameter types by name, e.g. {id: int}.
	Params map[string]string `json:"params,omitempty" mapstructure:"params"`
}

// SiteFile is the content of a site file.
type SiteFile struct {
	Pages []Page `json:"pages" mapstructure:"pages"`
}

// LoadSite reads and validates a site file.
func LoadSite(path string) (*SiteFile, error) {
	var f SiteFile
	if err := readFile(path, &f); err != nil {
		return nil, err
	}
	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &f, nil
}

// DecodeSite decodes a site document held in memory.
func DecodeSite(data []byte, format Format) (*SiteFile, error) {
	var f SiteFile
	if err := decode("site", data, format, &f); err != nil {
		return nil, err
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate checks that pages are named uniquely and their templates and
// parameter types parse.
func (f *SiteFile) Validate() error {
	seen := make(map[string]bool, len(f.Pages))
	for i, p := range f.Pages {
		if p.Name == "" {
			return fmt.Errorf("%w: page %d has no name", ErrInvalidConfig, i)
		}
		if seen[p.Name] {
			return fmt.Errorf("%w: duplicate page %q", ErrInvalidConfig, p.Name)
		}
		seen[p.Name] = true
		if _, err := urltemplate.Parse(p.Template); err != nil {
			return fmt.Errorf("%w: page %q: %w", ErrInvalidConfig, p.Name, err)
		}
		if _, err := schema.ParseTypeMap(p.Params); err != nil {
			return fmt.Errorf("%w: page %q: %w", ErrInvalidConfig, p.Name, err)
		}
	}
	return nil
}
