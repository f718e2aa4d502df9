package export

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/deepjyoti31/spec10x/internal/models"
)

var categoryHeadings = map[string]string{
	models.CategoryPainPoint:      "Pain Points",
	models.CategoryFeatureRequest: "Feature Requests",
	models.CategoryPositive:       "Positive Feedback",
	models.CategorySuggestion:     "Suggestions",
}

// categoryOrder fixes section ordering in reports.
var categoryOrder = []string{
	models.CategoryPainPoint,
	models.CategoryFeatureRequest,
	models.CategoryPositive,
	models.CategorySuggestion,
}

var md = goldmark.New(goldmark.WithExtensions(extension.GFM))

// RenderHTML converts a markdown report to an HTML document body.
func RenderHTML(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(markdown), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// BuildInterviewReport renders one interview's findings as markdown.
func BuildInterviewReport(interview *models.InterviewModel, insights []models.InsightModel, speakers []models.SpeakerModel) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Interview Report: %s\n\n", interview.Filename)
	fmt.Fprintf(&b, "*Generated %s*\n\n", time.Now().UTC().Format("2006-01-02"))

	if interview.Summary != "" {
		b.WriteString("## Summary\n\n")
		b.WriteString(interview.Summary)
		b.WriteString("\n\n")
	}

	if len(speakers) > 0 {
		b.WriteString("## Participants\n\n")
		for _, sp := range speakers {
			name := sp.Label
			if sp.Name != nil && *sp.Name != "" {
				name = *sp.Name
			}
			if sp.IsInterviewer {
				fmt.Fprintf(&b, "- %s (interviewer)\n", name)
			} else {
				fmt.Fprintf(&b, "- %s\n", name)
			}
		}
		b.WriteString("\n")
	}

	byCategory := map[string][]models.InsightModel{}
	for _, in := range insights {
		if in.IsDismissed {
			continue
		}
		byCategory[in.Category] = append(byCategory[in.Category], in)
	}

	total := 0
	for _, cat := range categoryOrder {
		total += len(byCategory[cat])
	}
	fmt.Fprintf(&b, "## Insights (%d)\n\n", total)

	for _, cat := range categoryOrder {
		rows := byCategory[cat]
		if len(rows) == 0 {
			continue
		}
		fmt.Fprintf(&b, "### %s\n\n", categoryHeadings[cat])
		for _, in := range rows {
			fmt.Fprintf(&b, "- **%s**", in.Title)
			if in.Quote != "" {
				fmt.Fprintf(&b, "\n  > %s", strings.ReplaceAll(in.Quote, "\n", " "))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	return b.String()
}

// BuildThemesReport renders the cross-interview theme summary as markdown.
// insightsByTheme maps theme ID to its non-dismissed insights.
func BuildThemesReport(themes []models.ThemeModel, insightsByTheme map[string][]models.InsightModel) string {
	var b strings.Builder

	b.WriteString("# Research Themes\n\n")
	fmt.Fprintf(&b, "*Generated %s*\n\n", time.Now().UTC().Format("2006-01-02"))

	if len(themes) == 0 {
		b.WriteString("No themes yet. Themes appear once insights recur across at least two interviews.\n")
		return b.String()
	}

	for _, t := range themes {
		fmt.Fprintf(&b, "## %s\n\n", t.Name)
		if t.Description != "" {
			b.WriteString(t.Description)
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "Mentions: %d | Sentiment: %.0f%% positive, %.0f%% neutral, %.0f%% negative\n\n",
			t.MentionCount,
			t.SentimentPositive*100,
			t.SentimentNeutral*100,
			t.SentimentNegative*100)

		for _, in := range insightsByTheme[t.ID] {
			fmt.Fprintf(&b, "- **%s**", in.Title)
			if in.Quote != "" {
				fmt.Fprintf(&b, "\n  > %s", strings.ReplaceAll(in.Quote, "\n", " "))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	return b.String()
}
