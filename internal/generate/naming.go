package generate

import (
	"strings"
	"unicode"
)

// splitWords breaks a spec name into lowercase words, honoring spaces,
// hyphens, underscores and camel-case boundaries.
func splitWords(name string) []string {
	var words []string
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			words = append(words, strings.ToLower(current.String()))
			current.Reset()
		}
	}

	runes := []rune(name)
	for i, r := range runes {
		switch {
		case r == ' ' || r == '-' || r == '_' || r == '.':
			flush()
		case unicode.IsUpper(r) && i > 0 && (unicode.IsLower(runes[i-1]) ||
			(i+1 < len(runes) && unicode.IsLower(runes[i+1]))):
			flush()
			current.WriteRune(r)
		default:
			current.WriteRune(r)
		}
	}
	flush()
	return words
}

func pascal(name string) string {
	var b strings.Builder
	for _, w := range splitWords(name) {
		if w == "" {
			continue
		}
		b.WriteString(strings.ToUpper(w[:1]))
		b.WriteString(w[1:])
	}
	return b.String()
}

func camel(name string) string {
	p := pascal(name)
	if p == "" {
		return p
	}
	return strings.ToLower(p[:1]) + p[1:]
}

func snake(name string) string {
	return strings.Join(splitWords(name), "_")
}

func kebab(name string) string {
	return strings.Join(splitWords(name), "-")
}

func lowerJoined(name string) string {
	return strings.Join(splitWords(name), "")
}
