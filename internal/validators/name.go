package validators

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// NormalizeName trims and NFC-composes the name so a decomposed accent
// counts as one character.
func NormalizeName(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}

func NameLength(name string) int {
	return utf8.RuneCountInString(NormalizeName(name))
}
