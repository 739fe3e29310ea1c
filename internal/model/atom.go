package model

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// German umlauts transliterate before the ASCII fold, otherwise "ä" collapses
// to "a" instead of "ae".
var germanReplacer = strings.NewReplacer(
	"ä", "ae",
	"ö", "oe",
	"ü", "ue",
	"ß", "ss",
)

var (
	invalidRunes   = regexp.MustCompile(`[^a-z0-9_]`)
	underscoreRuns = regexp.MustCompile(`_+`)
)

// NormalizeAtom folds a raw CSV cell into an atom: lowercase ASCII restricted
// to [a-z0-9_], never empty and never starting with a digit. digitPrefix
// guards the leading-digit case ("c_" for courses, "s_" for students) so the
// two namespaces cannot collide on it.
func NormalizeAtom(base, digitPrefix string) string {
	atom := germanReplacer.Replace(strings.ToLower(strings.TrimSpace(base)))

	//** Decompose diacritics and drop every non-ASCII rune
	atom = strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII {
			return -1
		}
		return r
	}, norm.NFKD.String(atom))

	atom = invalidRunes.ReplaceAllString(atom, "_")
	atom = underscoreRuns.ReplaceAllString(atom, "_")
	atom = strings.Trim(atom, "_")

	if atom == "" {
		atom = "x"
	}
	if atom[0] >= '0' && atom[0] <= '9' {
		atom = digitPrefix + atom
	}
	return atom
}
