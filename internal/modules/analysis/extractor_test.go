package analysis

import (
	"context"
	"math/rand"
	"strings"
	"sync"
	"testing"

	"github.com/deepjyoti31/spec10x/internal/models"
)

func newTestExtractor() *Extractor {
	return NewExtractor(nil, nil, rand.New(rand.NewSource(1)), nil)
}

func TestAnalyzeKeywordMode(t *testing.T) {
	transcript := strings.Join([]string{
		"Interviewer: How has the tool been working for you?",
		"Sarah: The export process is so frustrating, it takes forever to finish.",
		"Sarah: I wish there was a way to schedule reports automatically.",
		"Sarah: The dashboard is great for tracking weekly numbers though.",
	}, "\n")

	result := newTestExtractor().Analyze(context.Background(), transcript)

	if result.Language != "en" {
		t.Fatalf("expected language en, got %q", result.Language)
	}
	if len(result.Speakers) != 2 {
		t.Fatalf("expected 2 speakers, got %d", len(result.Speakers))
	}

	var pain, feature, positive int
	for _, ins := range result.Insights {
		switch ins.Category {
		case models.CategoryPainPoint:
			pain++
			if ins.Sentiment != models.SentimentNegative {
				t.Fatalf("pain point sentiment = %q", ins.Sentiment)
			}
			if ins.Confidence < 0.75 || ins.Confidence > 0.95 {
				t.Fatalf("pain confidence out of range: %v", ins.Confidence)
			}
		case models.CategoryFeatureRequest:
			feature++
			if ins.Sentiment != models.SentimentNeutral {
				t.Fatalf("feature request sentiment = %q", ins.Sentiment)
			}
			if ins.Confidence < 0.70 || ins.Confidence > 0.90 {
				t.Fatalf("feature confidence out of range: %v", ins.Confidence)
			}
		case models.CategoryPositive:
			positive++
			if ins.Sentiment != models.SentimentPositive {
				t.Fatalf("positive sentiment = %q", ins.Sentiment)
			}
		}
	}
	if pain == 0 || feature == 0 || positive == 0 {
		t.Fatalf("expected all three categories, got pain=%d feature=%d positive=%d", pain, feature, positive)
	}

	if !strings.Contains(result.Summary, "pain points") {
		t.Fatalf("unexpected summary: %q", result.Summary)
	}
}

func TestAnalyzeQuoteOffsets(t *testing.T) {
	transcript := "Sarah: The export process is so frustrating for our whole team."
	result := newTestExtractor().Analyze(context.Background(), transcript)

	if len(result.Insights) == 0 {
		t.Fatal("expected at least one insight")
	}
	ins := result.Insights[0]
	if ins.QuoteStart == nil || ins.QuoteEnd == nil {
		t.Fatal("expected quote offsets")
	}
	if got := transcript[*ins.QuoteStart:*ins.QuoteEnd]; got != ins.Quote {
		t.Fatalf("offsets do not recover quote: %q != %q", got, ins.Quote)
	}
}

func TestAnalyzeCategoryPriority(t *testing.T) {
	// A sentence matching both pain and feature vocabulary yields one
	// pain point, not two insights.
	transcript := "Sarah: It is frustrating that we need a better export option."
	result := newTestExtractor().Analyze(context.Background(), transcript)

	if len(result.Insights) != 1 {
		t.Fatalf("expected 1 insight, got %d", len(result.Insights))
	}
	if result.Insights[0].Category != models.CategoryPainPoint {
		t.Fatalf("expected pain point to win, got %q", result.Insights[0].Category)
	}
}

func TestAnalyzeDuplicateQuoteSuppression(t *testing.T) {
	// The same positive sentence twice produces one insight: the second
	// occurrence is suppressed by the duplicate-quote check.
	transcript := "Sarah: The new dashboard layout is great.\nSarah: The new dashboard layout is great.\n"
	result := newTestExtractor().Analyze(context.Background(), transcript)

	if len(result.Insights) != 1 {
		t.Fatalf("expected duplicate suppression to 1 insight, got %d", len(result.Insights))
	}
}

func TestAnalyzeDuplicatePainPointsKept(t *testing.T) {
	// Pain points skip the duplicate check, so a repeated complaint is
	// counted each time it occurs.
	transcript := "Sarah: The export process is so frustrating right now.\nSarah: The export process is so frustrating right now.\n"
	result := newTestExtractor().Analyze(context.Background(), transcript)

	if len(result.Insights) != 2 {
		t.Fatalf("expected repeated pain points kept, got %d insights", len(result.Insights))
	}
}

func TestGenerateTitle(t *testing.T) {
	short := "The dashboard is great."
	if got := generateTitle(short); got != short {
		t.Fatalf("short title changed: %q", got)
	}

	long := strings.Repeat("word ", 30)
	got := generateTitle(long)
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("expected ellipsis on truncated title: %q", got)
	}
	if len(got) > 83 {
		t.Fatalf("title too long: %d chars", len(got))
	}
	if strings.HasSuffix(strings.TrimSuffix(got, "..."), " ") {
		t.Fatalf("title ends mid-word padding: %q", got)
	}

	prefixed := "Interviewer: This sentence has a speaker prefix."
	if got := generateTitle(prefixed); strings.HasPrefix(got, "Interviewer") {
		t.Fatalf("speaker prefix not stripped: %q", got)
	}
}

func TestGenerateTitleMultibyte(t *testing.T) {
	// 91 runes with the only space at rune 30. The boundary check counts
	// characters, so the space is too early to cut at and the title keeps
	// the full 80-rune prefix.
	text := strings.Repeat("日", 30) + " " + strings.Repeat("x", 60)
	want := strings.Repeat("日", 30) + " " + strings.Repeat("x", 49) + "..."
	if got := generateTitle(text); got != want {
		t.Fatalf("multibyte title = %q, want %q", got, want)
	}

	// Space at rune 50 is past the midpoint, so the cut lands on it even
	// though its byte offset is 150.
	text = strings.Repeat("日", 50) + " " + strings.Repeat("日", 40)
	want = strings.Repeat("日", 50) + "..."
	if got := generateTitle(text); got != want {
		t.Fatalf("multibyte boundary cut = %q, want %q", got, want)
	}
}

func TestConfidenceConcurrent(t *testing.T) {
	e := newTestExtractor()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				if v := e.confidence(0.70, 0.90); v < 0.70 || v > 0.90 {
					t.Errorf("confidence out of range: %v", v)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestConfidenceDeterministicWithoutRand(t *testing.T) {
	e := NewExtractor(nil, nil, nil, nil)
	if got := e.confidence(0.75, 0.95); got != 0.85 {
		t.Fatalf("expected midpoint 0.85, got %v", got)
	}
}
