package domain

import (
	"strings"
	"unicode"
)

// UpperSnake normalizes free text to UPPER_SNAKE_CASE: runs of
// non-alphanumeric characters collapse to a single underscore, letters
// are uppercased, and leading/trailing underscores are trimmed.
// Field names are normalized this way before transmission; option values
// are normalized on edit.
func UpperSnake(s string) string {
	var b strings.Builder
	pendingSep := false
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSep = false
			b.WriteRune(unicode.ToUpper(r))
		default:
			pendingSep = true
		}
	}
	return b.String()
}

// DuplicateFieldName scans the visit's fields for a repeated name.
// The comparison is case-sensitive. Returns the first repeated name.
func DuplicateFieldName(v Visit) (string, bool) {
	seen := make(map[string]bool)
	for _, sec := range v.Sections {
		for _, row := range sec.Rows {
			for _, f := range row.Fields {
				if seen[f.Name] {
					return f.Name, true
				}
				seen[f.Name] = true
			}
		}
	}
	return "", false
}
