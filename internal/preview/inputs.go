package preview

import "strings"

// TruncateDecimals trims the fractional part of a typed numeric value to
// at most places digits. Truncation happens at input time, not only at
// validation time, so the stored answer never exceeds the configured
// precision.
func TruncateDecimals(input string, places int) string {
	dot := strings.IndexByte(input, '.')
	if dot < 0 {
		return input
	}
	if places <= 0 {
		return input[:dot]
	}
	frac := input[dot+1:]
	if len(frac) > places {
		frac = frac[:places]
	}
	return input[:dot+1] + frac
}

// SanitizeNumber keeps only the characters a number field accepts:
// digits, one leading minus, and (when decimals are allowed) one dot.
func SanitizeNumber(input string, allowDecimals bool) string {
	var b strings.Builder
	seenDot := false
	for i, r := range input {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '-' && i == 0:
			b.WriteRune(r)
		case r == '.' && allowDecimals && !seenDot:
			seenDot = true
			b.WriteRune(r)
		}
	}
	return b.String()
}
