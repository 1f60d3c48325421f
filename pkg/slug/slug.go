// Package slug turns product names into stable, URL-friendly identifiers.
package slug

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// letters without a decomposed ASCII base.
var special = strings.NewReplacer(
	"ı", "i", "ß", "ss", "æ", "ae", "ø", "o", "œ", "oe", "đ", "d", "ł", "l", "&", " and ",
)

// Generate creates a URL-friendly slug from name. Accents are stripped and
// runs of anything else collapse to a single hyphen.
//
// Examples:
//   - "Çocuk Ürünleri" → "cocuk-urunleri"
//   - "Crème Brûlée Set" → "creme-brulee-set"
//   - "Salt & Pepper   Mill!" → "salt-and-pepper-mill"
func Generate(name string) string {
	s := special.Replace(strings.ToLower(strings.TrimSpace(name)))

	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if out, _, err := transform.String(t, s); err == nil {
		s = out
	}

	return strings.Trim(nonAlnum.ReplaceAllString(s, "-"), "-")
}

// WithSuffix appends a numeric suffix, for names that repeat.
func WithSuffix(name string, n int) string {
	base := Generate(name)
	if base == "" {
		base = "item"
	}
	return base + "-" + strconv.Itoa(n)
}
