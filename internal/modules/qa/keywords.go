package qa

import "strings"

// maxSearchKeywords caps how many keywords feed the LIKE search.
const maxSearchKeywords = 5

var stopWords = map[string]bool{
	"what": true, "how": true, "why": true, "when": true, "where": true,
	"who": true, "which": true, "do": true, "does": true,
	"is": true, "are": true, "the": true, "a": true, "an": true,
	"in": true, "on": true, "at": true, "to": true, "for": true, "of": true,
	"and": true, "or": true, "not": true, "about": true, "with": true,
	"from": true, "by": true, "it": true, "my": true, "your": true,
	"their": true, "our": true, "this": true, "that": true,
	"these": true, "those": true, "all": true, "any": true,
}

// ExtractKeywords tokenizes a question into search keywords: lowercased
// words longer than two characters that are not stop words. When everything
// is filtered out, the first three raw words are used instead.
func ExtractKeywords(question string) []string {
	words := strings.Fields(strings.ToLower(question))

	var keywords []string
	for _, w := range words {
		if stopWords[w] || len(w) <= 2 {
			continue
		}
		keywords = append(keywords, w)
	}

	if len(keywords) == 0 {
		if len(words) > 3 {
			words = words[:3]
		}
		keywords = words
	}
	return keywords
}
