// Package schema types the parameters captured from a URL.
//
// Matching yields every capture as text. A Schema maps parameter names to
// types (string, int, uuid, time) and converts captures into typed
// urlvalue.Value values, reporting every malformed parameter at once.
//
// Basic usage:
//
//	s, err := schema.ParseTypeMap(map[string]string{
//	    "id":    "int",
//	    "since": "time",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	values, err := s.Convert(result.Captures)
//	if err != nil {
//	    for _, e := range schema.ValidationErrors(err) {
//	        fmt.Println(e)
//	    }
//	}
//
// Names are compared case-insensitively, like placeholder names in templates.
// Captures without a declared type stay strings.
package schema
