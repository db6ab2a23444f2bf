// Package textnorm reduces arbitrary page text to comparable forms.
package textnorm

import (
	"strings"
	"unicode"
)

// Normalize lowercases s, drops every rune outside [a-z0-9] and whitespace,
// collapses whitespace runs to a single space and trims the result.
// Letters outside ASCII (ą, ł, é, ...) are dropped too.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	pendingSpace := false
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsSpace(r):
			pendingSpace = b.Len() > 0
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			if pendingSpace {
				b.WriteByte(' ')
				pendingSpace = false
			}
			b.WriteRune(r)
		}
	}
	return b.String()
}

// CollapseSpaces collapses whitespace runs to single spaces and trims s.
// Nothing else is changed.
func CollapseSpaces(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	lastSpace := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			if !lastSpace && b.Len() > 0 {
				lastSpace = true
			}
			continue
		}
		if lastSpace {
			b.WriteByte(' ')
			lastSpace = false
		}
		b.WriteRune(r)
	}
	return b.String()
}
