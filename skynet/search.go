package skynet

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// SearchKey folds a display name so that lookups ignore case, accents and
// repeated spaces ("Lim-Dûl's Vault" and "lim-dul's  vault" match).
func SearchKey(s string) string {
	// Transformers keep state, so a new chain is needed for every call
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC, cases.Fold())
	out, _, err := transform.String(t, s)
	if err != nil {
		out = strings.ToLower(s)
	}
	return strings.Join(strings.Fields(out), " ")
}
