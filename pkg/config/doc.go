/*
Package config loads site and automaton definitions from YAML or JSON files.

A site file lists the pages a Site routes to:

	pages:
	  - name: user
	    template: /users/{id}
	    title: User profile

An automaton file declares a string machine:

	initial: [greeting]
	states:
	  - name: greeting
	    kind: match_one
	    condition: {equals: hello}
	    then: names
	  - name: names
	    kind: match_repeat
	    condition: {pattern: '^\p{Lu}\w+$'}
	    else: done
	  - name: done
	    kind: return

Patterns use .NET compatible regular expressions.
*/
package config
