package analysis

import "testing"

func TestGuessTheme(t *testing.T) {
	cases := []struct {
		text string
		want string
	}{
		{"the onboarding flow was confusing", "Onboarding Experience"},
		{"search never finds anything", "Search Functionality"},
		{"i want to export my data", "Export & Data Access"},
		{"push notifications are too noisy", "Notification System"},
		{"the mobile app crashes a lot", "Mobile Experience"},
		{"we collaborate across three teams", "Team Collaboration"},
		{"the dashboard loads slowly", "Dashboard & Analytics"},
		{"pricing feels steep for small teams", "Pricing & Value"},
		{"support took a week to reply", "Customer Support"},
		{"the documentation is out of date", "Documentation"},
		{"setup took an entire afternoon", "Setup & Configuration"},
		{"performance degrades with big files", "Performance"},
		{"the ui feels dated", "User Interface"},
		{"nothing here matches anything", "General Feedback"},
	}

	for _, tc := range cases {
		if got := GuessTheme(tc.text); got != tc.want {
			t.Errorf("GuessTheme(%q) = %q, want %q", tc.text, got, tc.want)
		}
	}
}

func TestGuessThemeOrderWins(t *testing.T) {
	// "search" appears before "export" in the keyword table, so a text
	// mentioning both resolves to the search theme.
	if got := GuessTheme("export results from search"); got != "Search Functionality" {
		t.Fatalf("expected earlier keyword to win, got %q", got)
	}
}

func TestPatternMatching(t *testing.T) {
	painCases := []string{
		"this is so frustrating",
		"it is hard to get started",
		"the report takes too long to generate",
		"the importer is broken again",
		"i can't find my projects",
	}
	for _, text := range painCases {
		found := false
		for _, rule := range painPatterns {
			if rule.re.MatchString(text) {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("expected pain pattern match for %q", text)
		}
	}

	featureCases := []string{
		"i wish it had dark mode",
		"we need a bulk edit option",
		"it is lacking an audit log",
	}
	for _, text := range featureCases {
		found := false
		for _, rule := range featurePatterns {
			if rule.re.MatchString(text) {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("expected feature pattern match for %q", text)
		}
	}

	positiveCases := []string{
		"i love the new editor",
		"the setup was easy",
		"i would recommend it to anyone",
	}
	for _, text := range positiveCases {
		found := false
		for _, rule := range positivePatterns {
			if rule.re.MatchString(text) {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("expected positive pattern match for %q", text)
		}
	}
}
