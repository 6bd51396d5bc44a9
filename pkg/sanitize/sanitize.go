// Package sanitize prepares user-supplied chat text for storage and for the
// Firestore mirror, which expects clean, comparable strings.
package sanitize

import (
	"html"
	"strings"
	"unicode"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/text/unicode/norm"
)

var strict = bluemonday.StrictPolicy()

// Message strips all markup from raw, drops control characters except
// newline and carriage return, and normalizes the result to NFC.
func Message(raw string) string {
	cleaned := html.UnescapeString(strict.Sanitize(raw))

	var b strings.Builder
	b.Grow(len(cleaned))
	for _, r := range cleaned {
		if unicode.IsControl(r) && r != '\n' && r != '\r' {
			continue
		}
		b.WriteRune(r)
	}

	return norm.NFC.String(b.String())
}
