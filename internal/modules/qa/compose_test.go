package qa

import (
	"strings"
	"testing"

	"github.com/deepjyoti31/spec10x/internal/models"
)

func TestComposeAnswerNoResults(t *testing.T) {
	answer := ComposeAnswer("export problems", nil, 0, 0)
	if !strings.Contains(answer, "couldn't find specific information") {
		t.Fatalf("unexpected empty-result answer: %q", answer)
	}
	if !strings.Contains(answer, "export problems") {
		t.Fatal("answer should echo the question")
	}
}

func TestComposeAnswerWithFindings(t *testing.T) {
	findings := []Finding{
		{Category: models.CategoryPainPoint, Title: "Export is slow", Quote: "the export takes forever", Interview: "interview-1.txt"},
		{Category: models.CategoryFeatureRequest, Title: "Scheduled exports", Quote: "I wish exports ran on a schedule", Interview: "interview-2.txt"},
	}

	answer := ComposeAnswer("export problems", findings, 4, 2)
	if !strings.Contains(answer, "Key findings (2 relevant insights)") {
		t.Fatalf("missing findings header: %q", answer)
	}
	if !strings.Contains(answer, "Pain Point") || !strings.Contains(answer, "Feature Request") {
		t.Fatal("missing category labels")
	}
	if !strings.Contains(answer, "**Export is slow**") {
		t.Fatal("missing bolded title")
	}
	if !strings.Contains(answer, "interview-1.txt") {
		t.Fatal("missing interview attribution")
	}
	// Passage summary only appears when there are no insight findings.
	if strings.Contains(answer, "relevant passages") {
		t.Fatal("passage summary should be suppressed when findings exist")
	}
}

func TestComposeAnswerChunksOnly(t *testing.T) {
	answer := ComposeAnswer("export problems", nil, 7, 3)
	if !strings.Contains(answer, "Found 7 relevant passages across 3 interviews") {
		t.Fatalf("missing passage summary: %q", answer)
	}
}

func TestComposeAnswerCapsFindings(t *testing.T) {
	findings := make([]Finding, 8)
	for i := range findings {
		findings[i] = Finding{Category: models.CategoryPainPoint, Title: "t", Quote: "q", Interview: "iv"}
	}
	answer := ComposeAnswer("q", findings, 0, 0)
	if strings.Contains(answer, "6.") {
		t.Fatal("expected at most 5 numbered findings")
	}
	if !strings.Contains(answer, "Key findings (8 relevant insights)") {
		t.Fatal("header should count all findings")
	}
}

func TestComposeAnswerTruncatesQuotes(t *testing.T) {
	long := strings.Repeat("x", 200)
	findings := []Finding{{Category: models.CategoryPositive, Title: "t", Quote: long, Interview: "iv"}}
	answer := ComposeAnswer("q", findings, 0, 0)
	if strings.Contains(answer, long) {
		t.Fatal("expected long quote truncated")
	}
	if !strings.Contains(answer, strings.Repeat("x", 150)+"...") {
		t.Fatal("expected 150-character excerpt with ellipsis")
	}
}
