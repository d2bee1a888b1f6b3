package matcher

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldTransformer strips combining marks so accented names compare equal
// to their ASCII spellings.
var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// normalizeName lowercases, folds diacritics and collapses interior
// whitespace so that "  Christian   Petracca " and "christian petracca"
// produce the same key.
func normalizeName(name string) string {
	folded, _, err := transform.String(foldTransformer, name)
	if err != nil {
		folded = name
	}
	return strings.Join(strings.Fields(strings.ToLower(folded)), " ")
}

// surname returns everything after the first token of a normalized name,
// so multi-token surnames like "de koning" stay intact. A single-token
// name has no surname.
func surname(normalized string) string {
	fields := strings.Fields(normalized)
	if len(fields) < 2 {
		return ""
	}
	return strings.Join(fields[1:], " ")
}
