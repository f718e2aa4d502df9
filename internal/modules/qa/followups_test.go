package qa

import "testing"

func TestSuggestFollowups(t *testing.T) {
	got := SuggestFollowups("What are the biggest pain points?")
	if len(got) != 3 {
		t.Fatalf("expected 3 followups, got %d", len(got))
	}

	seen := make(map[string]bool)
	for _, f := range got {
		if seen[f] {
			t.Fatalf("duplicate followup: %q", f)
		}
		seen[f] = true
	}
}

func TestSuggestFollowupsSkipsRepeatedQuestion(t *testing.T) {
	question := "Tell me: what solutions did users suggest for this?"
	for _, f := range SuggestFollowups(question) {
		if f == "What solutions did users suggest for this?" {
			t.Fatal("followup repeats the asked question")
		}
	}
}
