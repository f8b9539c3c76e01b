package report

import (
	"net/url"

	"github.com/verte-zerg/beesolve/internal/solver"
)

// DefaultLookupURL is the dictionary site words link to.
const DefaultLookupURL = "https://www.collinsdictionary.com/dictionary/english/"

// LookupURL returns the dictionary page for word, lower-cased and escaped.
func LookupURL(base, word string) string {
	if base == "" {
		base = DefaultLookupURL
	}
	return base + url.PathEscape(solver.Lower(word))
}
