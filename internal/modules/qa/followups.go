package qa

import (
	"context"
	"strings"

	"github.com/deepjyoti31/spec10x/internal/modules/ai"
)

var baseFollowups = []string{
	"What solutions did users suggest for this?",
	"How does sentiment differ across user segments?",
	"What are the most frequently mentioned issues?",
	"Which users feel most strongly about this?",
	"Are there any positive aspects of this topic?",
	"How has this feedback changed over time?",
}

// SuggestFollowups picks three canned follow-up questions that do not repeat
// the question just asked.
func SuggestFollowups(question string) []string {
	questionLower := strings.ToLower(question)

	var selected []string
	for _, f := range baseFollowups {
		if len(selected) >= 3 {
			break
		}
		if strings.Contains(questionLower, strings.ToLower(f)) {
			continue
		}
		selected = append(selected, f)
	}
	return selected
}

// aiSuggestFollowups asks the model for three follow-up questions, falling
// back to the canned list on any failure.
func (s *Service) aiSuggestFollowups(ctx context.Context, question, answer string) []string {
	if s.client == nil || !s.client.Enabled() {
		return SuggestFollowups(question)
	}

	truncatedAnswer := answer
	if runes := []rune(truncatedAnswer); len(runes) > 500 {
		truncatedAnswer = string(runes[:500])
	}

	prompt := "Based on this Q&A about customer interviews, suggest exactly 3 concise follow-up questions.\n\n" +
		"Question: " + question + "\nAnswer: " + truncatedAnswer + "\n\n" +
		`Respond as a JSON array of 3 strings, e.g. ["q1", "q2", "q3"]`

	raw, err := s.client.GenerateText(ctx, s.assignment, "", prompt, 200)
	if err != nil {
		return SuggestFollowups(question)
	}

	var followups []string
	if err := ai.UnmarshalModelJSON(raw, &followups); err != nil || len(followups) == 0 {
		return SuggestFollowups(question)
	}
	if len(followups) > 3 {
		followups = followups[:3]
	}
	return followups
}
