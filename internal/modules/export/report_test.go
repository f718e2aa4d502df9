package export

import (
	"strings"
	"testing"

	"github.com/deepjyoti31/spec10x/internal/models"
)

func strPtr(s string) *string { return &s }

func TestBuildInterviewReport(t *testing.T) {
	interview := &models.InterviewModel{
		Filename: "customer-call.txt",
		Summary:  "Mixed feedback about onboarding.",
	}
	interview.ID = "iv-1"

	insights := []models.InsightModel{
		{Category: models.CategoryPositive, Title: "Loves the dashboard", Quote: "The dashboard is great"},
		{Category: models.CategoryPainPoint, Title: "Setup is confusing", Quote: "I got stuck on step two"},
		{Category: models.CategoryPainPoint, Title: "Dismissed item", IsDismissed: true},
	}
	speakers := []models.SpeakerModel{
		{Label: "Interviewer", IsInterviewer: true},
		{Label: "Speaker 2", Name: strPtr("Dana")},
	}

	got := BuildInterviewReport(interview, insights, speakers)

	for _, want := range []string{
		"# Interview Report: customer-call.txt",
		"Mixed feedback about onboarding.",
		"- Interviewer (interviewer)",
		"- Dana",
		"## Insights (2)",
		"### Pain Points",
		"**Setup is confusing**",
		"> I got stuck on step two",
		"### Positive Feedback",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("report missing %q\n%s", want, got)
		}
	}
	if strings.Contains(got, "Dismissed item") {
		t.Error("dismissed insight should not appear in report")
	}

	// Pain points come before positive feedback regardless of input order.
	if strings.Index(got, "### Pain Points") > strings.Index(got, "### Positive Feedback") {
		t.Error("category sections out of order")
	}
}

func TestBuildThemesReportEmpty(t *testing.T) {
	got := BuildThemesReport(nil, nil)
	if !strings.Contains(got, "No themes yet") {
		t.Errorf("empty report should explain absence of themes, got:\n%s", got)
	}
}

func TestBuildThemesReport(t *testing.T) {
	theme := models.ThemeModel{
		Name:              "Onboarding Friction",
		Description:       "Theme with 4 mentions across 2 interviews.",
		MentionCount:      4,
		SentimentNegative: 0.75,
		SentimentNeutral:  0.25,
	}
	theme.ID = "th-1"

	byTheme := map[string][]models.InsightModel{
		"th-1": {{Title: "Setup is confusing", Quote: "I got stuck"}},
	}

	got := BuildThemesReport([]models.ThemeModel{theme}, byTheme)

	for _, want := range []string{
		"## Onboarding Friction",
		"Mentions: 4",
		"75% negative",
		"**Setup is confusing**",
		"> I got stuck",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("report missing %q\n%s", want, got)
		}
	}
}

func TestRenderHTML(t *testing.T) {
	html, err := RenderHTML("# Title\n\n- item\n")
	if err != nil {
		t.Fatalf("RenderHTML: %v", err)
	}
	if !strings.Contains(html, "<h1") || !strings.Contains(html, "<li>item</li>") {
		t.Errorf("unexpected html: %s", html)
	}
}
