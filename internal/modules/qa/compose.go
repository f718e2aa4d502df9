package qa

import (
	"fmt"
	"strings"

	"github.com/deepjyoti31/spec10x/internal/models"
)

// Finding is one insight surfaced in a templated answer.
type Finding struct {
	Category  string
	Title     string
	Quote     string
	Interview string
}

var categoryLabels = map[string]string{
	models.CategoryPainPoint:      "🔴 Pain Point",
	models.CategoryFeatureRequest: "🔵 Feature Request",
	models.CategoryPositive:       "🟢 Positive",
	models.CategorySuggestion:     "🟡 Suggestion",
}

// ComposeAnswer builds the templated markdown answer for keyword retrieval.
// findings come from insight search, chunkCount from chunk search, and
// interviewCount is how many distinct interviews the citations cover.
func ComposeAnswer(question string, findings []Finding, chunkCount, interviewCount int) string {
	if len(findings) == 0 && chunkCount == 0 {
		return fmt.Sprintf(
			"I couldn't find specific information about %q in your interviews. "+
				"Try uploading more interview transcripts or rephrasing your question.",
			question,
		)
	}

	parts := []string{
		fmt.Sprintf("Based on analysis of your interviews, here's what I found about **%q**:\n", question),
	}

	if len(findings) > 0 {
		parts = append(parts, fmt.Sprintf("\n**Key findings (%d relevant insights):**\n", len(findings)))

		shown := findings
		if len(shown) > 5 {
			shown = shown[:5]
		}
		for i, f := range shown {
			label, ok := categoryLabels[f.Category]
			if !ok {
				label = "📝"
			}

			quote := f.Quote
			if runes := []rune(quote); len(runes) > quoteExcerptSize {
				quote = string(runes[:quoteExcerptSize]) + "..."
			}

			parts = append(parts, fmt.Sprintf(
				"%d. %s: **%s**\n   > %q\n   — *%s*\n",
				i+1, label, f.Title, quote, f.Interview,
			))
		}
	}

	if chunkCount > 0 && len(findings) == 0 {
		parts = append(parts, fmt.Sprintf(
			"\nFound %d relevant passages across %d interviews. "+
				"The data suggests this topic appears across multiple interviews.\n",
			chunkCount, interviewCount,
		))
	}

	return strings.Join(parts, "\n")
}
