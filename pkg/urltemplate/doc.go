/*
Package urltemplate tokenizes route templates and concrete URLs.

A template such as "/users/{id}?tab={}" is split into an ordered sequence of
typed tokens: the path portion (Slash, Const, Placeholder) followed by an
optional query portion (QuestionMark, then VariableName/VariableValue pairs
separated by Ampersand).

	t, err := urltemplate.Parse("/users/{id}?tab=profile")
	if err != nil {
		return err
	}
	fmt.Println(t.String())

Concrete URLs are tokenized with ParseURL, where braces carry no meaning.
*/
package urltemplate
