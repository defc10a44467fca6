package domain

import (
	"strings"
	"unicode"
)

// MatchForbidden returns the blacklist entries that occur as standalone
// tokens in text. Matching is case-insensitive and word-boundary exact:
// "scam" does not match inside "scammer". Results keep blacklist order
// and are de-duplicated, so the comma-joined form is stable.
func MatchForbidden(text string, blacklist []string) []string {
	if text == "" || len(blacklist) == 0 {
		return nil
	}

	tokens := tokenize(text)
	if len(tokens) == 0 {
		return nil
	}

	var matched []string
	seen := make(map[string]bool)
	for _, word := range blacklist {
		lower := strings.ToLower(word)
		if seen[lower] {
			continue
		}
		if tokens[lower] {
			seen[lower] = true
			matched = append(matched, lower)
		}
	}
	return matched
}

// tokenize strips every rune that is not a letter, digit or whitespace,
// lower-cases the rest and splits on whitespace.
func tokenize(text string) map[string]bool {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}

	tokens := make(map[string]bool)
	for _, tok := range strings.Fields(b.String()) {
		tokens[tok] = true
	}
	return tokens
}
