// Package phone normalizes North American phone numbers to E.164.
package phone

import "strings"

// NormalizeUS converts a NANP phone number in any common formatting to its
// E.164 form ("+15551234567"). The second return value is false when the
// input does not contain a ten-digit US number (optionally prefixed with 1);
// callers treat that as "no usable phone", never as an error.
func NormalizeUS(raw string) (string, bool) {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()

	switch {
	case len(digits) == 10:
		return "+1" + digits, true
	case len(digits) == 11 && digits[0] == '1':
		return "+" + digits, true
	default:
		return "", false
	}
}
