package contacts

import (
	"fmt"
	"regexp"
	"unicode"
	"unicode/utf8"
)

var phoneRegExp = regexp.MustCompile(`\(?(\d{3})\)?[-\s]?(\d{3})[-\s]?(\d{0,4})`)

// FormatPhone formats a US phone number as "(650) 123-4567". Parentheses around the area code, and hyphens or spaces
// between the digit groups, are optional. A short last group is kept as-is: "6501234" becomes "(650) 123-4".
//
// FormatPhone returns ErrMalformedPhone if raw doesn't hold at least six digits in the expected positions.
func FormatPhone(raw string) (string, error) {
	matches := phoneRegExp.FindStringSubmatch(raw)
	if len(matches) != 4 {
		return "", fmt.Errorf("%w: %q", ErrMalformedPhone, raw)
	}
	return "(" + matches[1] + ") " + matches[2] + "-" + matches[3], nil
}

// Capitalize uppercases the first letter of s. The rest of s is left untouched.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
