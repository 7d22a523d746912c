package automata

import "strings"

// HierarchicalName is a slash separated state name such as "order/items/line".
// The zero value is the empty name. Names compare with ==.
type HierarchicalName struct {
	path string
}

// NewName joins parts into a name. Parts may themselves contain slashes;
// empty segments are dropped.
func NewName(parts ...string) HierarchicalName {
	segs := make([]string, 0, len(parts))
	for _, p := range parts {
		for _, s := range strings.Split(p, "/") {
			if s != "" {
				segs = append(segs, s)
			}
		}
	}
	return HierarchicalName{path: strings.Join(segs, "/")}
}

// Child returns the name extended by part.
func (n HierarchicalName) Child(part string) HierarchicalName {
	return NewName(n.path, part)
}

// Join appends other below n.
func (n HierarchicalName) Join(other HierarchicalName) HierarchicalName {
	return NewName(n.path, other.path)
}

// Parent drops the last segment. The parent of a single segment name is zero.
func (n HierarchicalName) Parent() HierarchicalName {
	i := strings.LastIndexByte(n.path, '/')
	if i < 0 {
		return HierarchicalName{}
	}
	return HierarchicalName{path: n.path[:i]}
}

// Base returns the last segment.
func (n HierarchicalName) Base() string {
	return n.path[strings.LastIndexByte(n.path, '/')+1:]
}

// Parts returns the segments of the name.
func (n HierarchicalName) Parts() []string {
	if n.path == "" {
		return nil
	}
	return strings.Split(n.path, "/")
}

// IsZero reports whether the name is empty.
func (n HierarchicalName) IsZero() bool {
	return n.path == ""
}

func (n HierarchicalName) String() string {
	return n.path
}
