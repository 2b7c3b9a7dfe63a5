package wordledomain

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// Capitalize upper-cases the first letter of s and lower-cases the rest.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

// ParseMonthName matches name against the twelve English month names, ignoring case.
// It returns false for anything else, including abbreviations.
func ParseMonthName(name string) (time.Month, bool) {
	canonical := Capitalize(name)
	for m := time.January; m <= time.December; m++ {
		if m.String() == canonical {
			return m, true
		}
	}
	return 0, false
}
