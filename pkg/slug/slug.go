package slug

import (
	"regexp"
	"strings"
)

// nonAlnum matches runs of anything that cannot appear in a slug. Replacing
// a whole run with one hyphen both separates words and collapses repeats.
var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Common Latin diacritics folded to ASCII so accented product and
// category names produce stable slugs.
var replacer = strings.NewReplacer(
	"à", "a", "á", "a", "â", "a", "ä", "a", "ã", "a", "å", "a",
	"è", "e", "é", "e", "ê", "e", "ë", "e",
	"ì", "i", "í", "i", "î", "i", "ï", "i",
	"ò", "o", "ó", "o", "ô", "o", "ö", "o", "õ", "o",
	"ù", "u", "ú", "u", "û", "u", "ü", "u",
	"ç", "c", "ñ", "n", "ß", "ss",
)

// Generate derives a URL-friendly slug from a display name:
// "Walnut Desk Organizer" becomes "walnut-desk-organizer",
// "Café  Table!" becomes "cafe-table".
func Generate(name string) string {
	s := replacer.Replace(strings.ToLower(strings.TrimSpace(name)))
	s = nonAlnum.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
