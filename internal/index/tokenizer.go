// Package index provides the two ranked search indexes of the retrieval
// engine: a probabilistic BM25 index and a TF-IDF vector-space index.
// Both share one tokenizer so their scores stay comparable.
package index

import (
	"regexp"
	"strings"
	"unicode"
)

// tokenRegex matches word characters across scripts. The knowledge bases
// this engine serves are typically Russian, so ASCII-only classes won't do.
var tokenRegex = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// Tokenize normalizes raw text into lowercase word tokens.
// Tokens of one character and purely numeric tokens carry no ranking
// signal and are discarded.
func Tokenize(text string) []string {
	words := tokenRegex.FindAllString(strings.ToLower(text), -1)

	tokens := make([]string, 0, len(words))
	for _, w := range words {
		if runeLen(w) <= 1 || isNumeric(w) {
			continue
		}
		tokens = append(tokens, w)
	}
	return tokens
}

// TokenSet returns the distinct tokens of text.
func TokenSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range Tokenize(text) {
		set[tok] = struct{}{}
	}
	return set
}

// CountMatches returns the size of the intersection between the token
// sets of query and content.
func CountMatches(query, content string) int {
	queryTokens := TokenSet(query)
	contentTokens := TokenSet(content)

	n := 0
	for tok := range queryTokens {
		if _, ok := contentTokens[tok]; ok {
			n++
		}
	}
	return n
}

func runeLen(s string) int {
	n := 0
	for range s {
		n++
	}
	return n
}

func isNumeric(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return len(s) > 0
}
