// Package urlvalue renders templates into concrete URLs, the inverse of matching.
package urlvalue
