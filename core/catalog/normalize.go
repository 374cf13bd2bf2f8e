// Package catalog holds helpers shared by catalog seeding and search.
package catalog

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize strips diacritics and lowercases s for accent-insensitive
// matching. Songs and artists store a normalized copy of their title/name;
// search keywords go through the same transform.
func Normalize(s string) string {
	// The transformer chain is stateful, so build one per call.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(strings.TrimSpace(out))
}
