package utils

import (
	"strings"
	"unicode"
)

// SanitizeInput trims surrounding whitespace and strips control characters
// from caller-supplied free text. Applied to public submission fields before
// they are persisted.
func SanitizeInput(input string) string {
	trimmed := strings.TrimSpace(input)
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			return -1
		}
		return r
	}, trimmed)
}

// StripHTMLTags removes markup from HTML content, leaving the visible text.
// Used to derive the plain-text body of an email from its HTML template.
func StripHTMLTags(input string) string {
	var b strings.Builder
	inTag := false
	for _, r := range input {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
