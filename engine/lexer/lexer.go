// Package lexer splits raw player input into words. Intentionally
// minimal: lowercase, strip punctuation, preserve the original text of
// each word. Classification happens in the vocab package.
package lexer

import (
	"strings"
	"unicode"

	"github.com/jsredmond/lantern/types"
)

// Tokenize splits input into raw tokens. Words are lowercased and
// stripped of surrounding punctuation; hyphens and apostrophes inside a
// word are kept ("trap-door"). Empty input yields no tokens.
func Tokenize(input string) []types.Token {
	var tokens []types.Token
	for _, field := range strings.Fields(input) {
		word := trimPunct(field)
		if word == "" {
			continue
		}
		tokens = append(tokens, types.Token{
			Word:     strings.ToLower(word),
			Original: field,
		})
	}
	return tokens
}

// trimPunct strips leading and trailing non-letter, non-digit runes.
func trimPunct(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-' && r != '\''
	})
}
