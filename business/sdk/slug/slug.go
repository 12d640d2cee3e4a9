// Package slug derives URL safe identifiers from display text.
package slug

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
	"unicode"
)

// Make lowercases the text and folds every run of non alphanumeric characters
// into a single dash.
func Make(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	dash := false
	for _, r := range strings.ToLower(text) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			dash = false
			b.WriteRune(r)
		default:
			dash = true
		}
	}

	return b.String()
}

// MakeUnique appends a random 8 hex character disambiguator so two records
// with the same display text never collide on slug.
func MakeUnique(text string) string {
	var buf [4]byte
	rand.Read(buf[:])

	base := Make(text)
	if base == "" {
		return hex.EncodeToString(buf[:])
	}

	return base + "-" + hex.EncodeToString(buf[:])
}
