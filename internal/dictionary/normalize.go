package dictionary

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripAccents returns a fresh transformer; chains keep internal buffers and
// must not be shared between goroutines.
func stripAccents() transform.Transformer {
	return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
}

// NormalizeWord produces the lookup key for a word: trimmed, lower-cased,
// accents stripped (café -> cafe) and inner whitespace collapsed.
func NormalizeWord(word string) string {
	word = strings.TrimSpace(word)
	if word == "" {
		return ""
	}

	folded, _, err := transform.String(stripAccents(), strings.ToLower(word))
	if err != nil {
		folded = strings.ToLower(word)
	}

	return strings.Join(strings.Fields(folded), " ")
}
