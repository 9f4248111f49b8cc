package repodoc

import (
	"strings"
	"unicode"
)

// Tokenize lowercases text and splits it on every rune that is not a letter
// or a digit. Empty tokens are discarded.
func Tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// TermCounts returns the number of occurrences of each token in text.
func TermCounts(text string) map[string]int {
	counts := make(map[string]int)
	for _, tok := range Tokenize(text) {
		counts[tok]++
	}
	return counts
}

// UniqueTokens returns the distinct tokens of text in first-seen order.
func UniqueTokens(text string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, tok := range Tokenize(text) {
		if _, ok := seen[tok]; ok {
			continue
		}
		seen[tok] = struct{}{}
		out = append(out, tok)
	}
	return out
}
