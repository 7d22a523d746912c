package urlmatch

// Capture is a value bound to a name during a match.
type Capture struct {
	Name  string
	Value string
}

// Result is the outcome of Match.
//
// Found is true only when the whole URL was consumed and the final node
// carries a page. Captures are kept even when Found is false.
type Result[P any] struct {
	Captures []Capture
	Page     P
	Found    bool
}

// Get returns the first captured value for name.
func (r Result[P]) Get(name string) (string, bool) {
	for _, c := range r.Captures {
		if c.Name == name {
			return c.Value, true
		}
	}
	return "", false
}

// Values returns the captures as a map. Later captures of the same name win.
func (r Result[P]) Values() map[string]string {
	out := make(map[string]string, len(r.Captures))
	for _, c := range r.Captures {
		out[c.Name] = c.Value
	}
	return out
}
