package assistant

import (
	"regexp"
	"strings"
)

// MaxSuggestedWords is the most words returned from one suggestion.
const MaxSuggestedWords = 10

var (
	wordSeparator   = regexp.MustCompile(`[,\n\r\t•\-]`)
	numberingPrefix = regexp.MustCompile(`^\d+\.`)
)

// ParseWords splits a raw suggestion reply into words, keeping the provider's order.
// Numbered entries such as "1." are dropped.
func ParseWords(raw string) []string {
	words := make([]string, 0, MaxSuggestedWords)
	for _, piece := range wordSeparator.Split(raw, -1) {
		word := strings.TrimSpace(piece)
		if word == "" || numberingPrefix.MatchString(word) {
			continue
		}
		words = append(words, word)
		if len(words) == MaxSuggestedWords {
			break
		}
	}
	return words
}
