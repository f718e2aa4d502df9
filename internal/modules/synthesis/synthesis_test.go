package synthesis

import (
	"testing"

	"github.com/deepjyoti31/spec10x/internal/models"
)

func TestNormalizeThemeName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Export Features", "export features"},
		{"export_features", "export features"},
		{"Export-Features", "export features"},
		{"  Onboarding Experience  ", "onboarding experience"},
		{"UI", "ui"},
	}
	for _, tc := range cases {
		if got := NormalizeThemeName(tc.in); got != tc.want {
			t.Errorf("NormalizeThemeName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestPlanGroupsByNormalizedName(t *testing.T) {
	facts := []InsightFact{
		{ID: "a", InterviewID: "i1", Category: models.CategoryPainPoint, ThemeSuggestion: "Export Features", Sentiment: models.SentimentNegative},
		{ID: "b", InterviewID: "i2", Category: models.CategoryFeatureRequest, ThemeSuggestion: "export_features", Sentiment: models.SentimentNeutral},
		{ID: "c", InterviewID: "i1", Category: models.CategoryPositive, ThemeSuggestion: "Onboarding", Sentiment: models.SentimentPositive},
	}

	groups := Plan(facts)
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}

	export := groups[0]
	if export.Key != "export features" {
		t.Fatalf("unexpected key: %q", export.Key)
	}
	if export.MentionCount != 2 || export.UniqueInterviews != 2 {
		t.Fatalf("unexpected counts: mentions=%d interviews=%d", export.MentionCount, export.UniqueInterviews)
	}
	if len(export.InsightIDs) != 2 || export.InsightIDs[0] != "a" || export.InsightIDs[1] != "b" {
		t.Fatalf("unexpected insight ids: %v", export.InsightIDs)
	}

	onboarding := groups[1]
	if onboarding.UniqueInterviews != 1 {
		t.Fatalf("expected single-source group, got %d", onboarding.UniqueInterviews)
	}
}

func TestPlanPicksMostCommonName(t *testing.T) {
	facts := []InsightFact{
		{ID: "a", InterviewID: "i1", ThemeSuggestion: "export features", Category: models.CategoryPainPoint},
		{ID: "b", InterviewID: "i2", ThemeSuggestion: "Export Features", Category: models.CategoryPainPoint},
		{ID: "c", InterviewID: "i3", ThemeSuggestion: "Export Features", Category: models.CategoryPainPoint},
	}

	groups := Plan(facts)
	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(groups))
	}
	if groups[0].Name != "Export Features" {
		t.Fatalf("expected majority spelling, got %q", groups[0].Name)
	}
}

func TestPlanNameTieGoesToFirstSeen(t *testing.T) {
	facts := []InsightFact{
		{ID: "a", InterviewID: "i1", ThemeSuggestion: "export features", Category: models.CategoryPainPoint},
		{ID: "b", InterviewID: "i2", ThemeSuggestion: "Export Features", Category: models.CategoryPainPoint},
	}

	groups := Plan(facts)
	if groups[0].Name != "export features" {
		t.Fatalf("expected first-seen spelling on tie, got %q", groups[0].Name)
	}
}

func TestPlanSentimentFractions(t *testing.T) {
	facts := []InsightFact{
		{ID: "a", InterviewID: "i1", ThemeSuggestion: "Search", Sentiment: models.SentimentNegative, Category: models.CategoryPainPoint},
		{ID: "b", InterviewID: "i2", ThemeSuggestion: "Search", Sentiment: models.SentimentNegative, Category: models.CategoryPainPoint},
		{ID: "c", InterviewID: "i3", ThemeSuggestion: "Search", Sentiment: models.SentimentPositive, Category: models.CategoryPositive},
		{ID: "d", InterviewID: "i4", ThemeSuggestion: "Search", Sentiment: models.SentimentNeutral, Category: models.CategoryFeatureRequest},
	}

	groups := Plan(facts)
	g := groups[0]
	if g.SentimentNegative != 0.5 {
		t.Fatalf("negative = %v, want 0.5", g.SentimentNegative)
	}
	if g.SentimentPositive != 0.25 {
		t.Fatalf("positive = %v, want 0.25", g.SentimentPositive)
	}
	if g.SentimentNeutral != 0.25 {
		t.Fatalf("neutral = %v, want 0.25", g.SentimentNeutral)
	}
}

func TestPlanNoSentiment(t *testing.T) {
	facts := []InsightFact{
		{ID: "a", InterviewID: "i1", ThemeSuggestion: "Search", Category: models.CategoryPainPoint},
	}
	g := Plan(facts)[0]
	if g.SentimentPositive != 0 || g.SentimentNegative != 0 {
		t.Fatalf("expected zero fractions, got pos=%v neg=%v", g.SentimentPositive, g.SentimentNegative)
	}
	if g.SentimentNeutral != 1.0 {
		t.Fatalf("expected neutral 1.0, got %v", g.SentimentNeutral)
	}
}

func TestPlanSkipsEmptySuggestions(t *testing.T) {
	facts := []InsightFact{
		{ID: "a", InterviewID: "i1", ThemeSuggestion: "", Category: models.CategoryPainPoint},
		{ID: "b", InterviewID: "i2", ThemeSuggestion: "   ", Category: models.CategoryPainPoint},
	}
	if groups := Plan(facts); len(groups) != 0 {
		t.Fatalf("expected no groups, got %d", len(groups))
	}
}

func TestDescribeGroup(t *testing.T) {
	facts := []InsightFact{
		{ID: "a", InterviewID: "i1", ThemeSuggestion: "Search", Category: models.CategoryPainPoint, Sentiment: models.SentimentNegative},
		{ID: "b", InterviewID: "i1", ThemeSuggestion: "Search", Category: models.CategoryPainPoint, Sentiment: models.SentimentNegative},
		{ID: "c", InterviewID: "i2", ThemeSuggestion: "Search", Category: models.CategoryFeatureRequest, Sentiment: models.SentimentNeutral},
	}

	g := Plan(facts)[0]
	want := "Theme with 3 mentions across 2 interviews: 2 pain points, 1 feature requests."
	if g.Description != want {
		t.Fatalf("description = %q, want %q", g.Description, want)
	}
}
