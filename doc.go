/*
Package waypoint routes URLs to pages and drives multi-path state machines.

The library is split into small packages that can be used on their own:

  - pkg/urltemplate tokenizes route templates ("/users/{id}?tab=profile") and
    concrete URLs.
  - pkg/urlmatch builds a decision tree over registered templates and matches
    URLs against it, capturing placeholder values.
  - pkg/urlvalue renders a template back into a URL from typed values.
  - pkg/automata is a non-deterministic state machine engine where several
    running instances advance in lock step on each message.

This root package is the host-facing glue for the routing half: a Site keeps
named pages, resolves incoming URLs and builds outgoing ones.

# Usage

	site := waypoint.NewSite()
	if _, err := site.Register("user", "/users/{id}?tab={tab?}", "User"); err != nil {
		log.Fatal(err)
	}

	res, err := site.Resolve("/users/42?tab=posts")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(res.Page.Name, res.Values()["id"]) // user 42

	link, _ := site.URL("user", urlvalue.Int("id", 7))
	fmt.Println(link) // /users/7

Sites can also be loaded from a YAML or JSON file with LoadSite. See
pkg/config for the file format.
*/
package waypoint
