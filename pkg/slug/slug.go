package slug

import (
	"strings"
	"unicode"
)

// Generate derives the URL token used in brand and category filter links.
// The name is lower-cased and every run of whitespace collapses into a single
// hyphen. Whitespace is the set isSpace accepts. Nothing else is rewritten, so punctuation survives and leading or
// trailing whitespace becomes a leading or trailing hyphen.
//
// Examples:
//   - "Toggle Clamps" → "toggle-clamps"
//   - "Vibration   Mounts" → "vibration-mounts"
//   - "toggle-clamps" → "toggle-clamps"
func Generate(name string) string {
	var b strings.Builder
	b.Grow(len(name))

	inSpace := false
	for _, r := range strings.ToLower(name) {
		if isSpace(r) {
			if !inSpace {
				b.WriteByte('-')
				inSpace = true
			}
			continue
		}
		inSpace = false
		b.WriteRune(r)
	}

	return b.String()
}

// isSpace is the ECMAScript \s class: Unicode White_Space without U+0085 (NEL),
// plus U+FEFF (BOM).
func isSpace(r rune) bool {
	switch r {
	case '\u0085':
		return false
	case '\uFEFF':
		return true
	}
	return unicode.IsSpace(r)
}

// Matches reports whether name derives to token. The token is compared
// case-insensitively because query strings arrive as the user typed them.
// Two names with the same derived token both match; that ambiguity is accepted.
func Matches(name, token string) bool {
	return Generate(name) == strings.ToLower(token)
}
