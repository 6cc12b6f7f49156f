package schema

import (
	"strings"
	"unicode"
)

// SnakeCase converts a Go identifier to lower snake_case.
// Acronym runs are kept together: "UserID" -> "user_id",
// "HTMLBody" -> "html_body", "GmtCreated" -> "gmt_created".
func SnakeCase(name string) string {
	var b strings.Builder
	b.Grow(len(name) + 4)

	runes := []rune(name)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 {
				prev := runes[i-1]
				nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
				// Break before an upper rune that starts a new word:
				// either the previous rune is lower/digit, or this upper
				// rune is the last of an acronym run followed by a lower.
				if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
					b.WriteByte('_')
				}
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}

	return b.String()
}
