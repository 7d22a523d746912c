/*
Package urlmatch routes URLs against a decision tree built from templates.

Templates registered with Add share tree nodes for identical prefixes.
Match walks the tree token by token, picking the first child that accepts
the current URL token, and collects the values bound to placeholders.

	m := urlmatch.New[string]()
	_ = m.Add(urltemplate.MustParse("/users/{id}"), "user")

	res, _ := m.Match("https://example.com/users/42")
	// res.Found == true, res.Page == "user", res.Captures == [{id 42}]

The walk never backtracks. When two templates overlap at the same position
(a constant and a placeholder, say) the one registered first wins.
*/
package urlmatch
