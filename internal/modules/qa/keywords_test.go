package qa

import "testing"

func TestExtractKeywords(t *testing.T) {
	got := ExtractKeywords("What are the biggest export problems?")
	want := []string{"biggest", "export", "problems?"}
	if len(got) != len(want) {
		t.Fatalf("keywords = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("keywords[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestExtractKeywordsFiltersShortWords(t *testing.T) {
	for _, kw := range ExtractKeywords("why is it so slow in use") {
		if len(kw) <= 2 {
			t.Fatalf("short word survived: %q", kw)
		}
	}
}

func TestExtractKeywordsFallsBackToRawWords(t *testing.T) {
	got := ExtractKeywords("is it in my at")
	if len(got) != 3 {
		t.Fatalf("expected first 3 raw words, got %v", got)
	}
	if got[0] != "is" || got[1] != "it" || got[2] != "in" {
		t.Fatalf("unexpected fallback keywords: %v", got)
	}
}

func TestExtractKeywordsLowercases(t *testing.T) {
	got := ExtractKeywords("EXPORT Problems")
	if got[0] != "export" {
		t.Fatalf("expected lowercased keyword, got %q", got[0])
	}
}
