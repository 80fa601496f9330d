package validators

import (
	"regexp"
	"strings"
	"unicode"
)

// Peruvian mobile plan: optional 51 or +51 prefix, then 9 digits starting with 9.
var mobilePhone = regexp.MustCompile(`^(\+?51)?9\d{8}$`)

// StripSpaces removes every whitespace rune.
func StripSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

func IsMobilePhone(phone string) bool {
	return mobilePhone.MatchString(StripSpaces(phone))
}
