package smalltalk

import (
	"regexp"
	"strings"
)

// Greetings and acknowledgements that should never hit retrieval.
// Anchored on both ends so "hi, what does the contract say" still
// goes through the full pipeline.
var patterns = []*regexp.Regexp{
	regexp.MustCompile(`^hi$`),
	regexp.MustCompile(`^hello$`),
	regexp.MustCompile(`^hey$`),
	regexp.MustCompile(`^how are you\??$`),
	regexp.MustCompile(`^thanks?$`),
	regexp.MustCompile(`^thank you$`),
	regexp.MustCompile(`^ok$`),
	regexp.MustCompile(`^okay$`),
	regexp.MustCompile(`^cool$`),
}

// IsSmallTalk reports whether the query is conversational filler
// rather than a document question.
func IsSmallTalk(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	for _, p := range patterns {
		if p.MatchString(q) {
			return true
		}
	}
	return false
}
