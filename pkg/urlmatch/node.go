package urlmatch

import (
	"strings"

	"github.com/aretw0/waypoint/pkg/urltemplate"
)

// Node is one token position of the decision tree.
type Node[P any] struct {
	token    urltemplate.Token
	children []*Node[P]
	page     P
	hasPage  bool
}

// Token returns the representative token of the node.
func (n *Node[P]) Token() urltemplate.Token {
	return n.token
}

// Children returns the child nodes in registration order.
func (n *Node[P]) Children() []*Node[P] {
	out := make([]*Node[P], len(n.children))
	copy(out, n.children)
	return out
}

// Page returns the payload attached to the node, if any.
func (n *Node[P]) Page() (P, bool) {
	return n.page, n.hasPage
}

func (n *Node[P]) childFor(t urltemplate.Token) *Node[P] {
	for _, c := range n.children {
		if sameTemplateToken(c.token, t) {
			return c
		}
	}
	return nil
}

func (n *Node[P]) route(t urltemplate.Token) *Node[P] {
	for _, c := range n.children {
		if routes(c.token, t) {
			return c
		}
	}
	return nil
}

// sameTemplateToken decides whether two template tokens share a tree node.
func sameTemplateToken(a, b urltemplate.Token) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case urltemplate.Slash, urltemplate.QuestionMark, urltemplate.Ampersand:
		return true
	case urltemplate.Const, urltemplate.VariableName:
		return strings.EqualFold(a.Value, b.Value)
	case urltemplate.Placeholder, urltemplate.VariableValue:
		return strings.EqualFold(a.Name, b.Name)
	}
	return false
}

// routes decides whether the template token t accepts the URL token u.
func routes(t, u urltemplate.Token) bool {
	if t.Kind == urltemplate.Placeholder {
		return u.Kind == urltemplate.Const
	}
	if t.Kind != u.Kind {
		return false
	}
	switch t.Kind {
	case urltemplate.Slash, urltemplate.QuestionMark, urltemplate.Ampersand:
		return true
	case urltemplate.Const, urltemplate.VariableName:
		return strings.EqualFold(t.Value, u.Value)
	case urltemplate.VariableValue:
		return strings.EqualFold(t.Name, u.Name)
	}
	return false
}
