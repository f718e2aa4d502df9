package analysis

import "testing"

const sampleTranscript = `Interviewer: Thanks for joining today. Can you tell me about your workflow?
Sarah: Sure, the dashboard is really helpful for tracking our weekly metrics.
Sarah: But honestly the export process is so frustrating, it takes forever every time.
Speaker 2: I agree with that completely.
I wish there was a way to schedule exports automatically every week.
`

func TestDetectSpeakers(t *testing.T) {
	speakers := DetectSpeakers(sampleTranscript)
	if len(speakers) != 3 {
		t.Fatalf("expected 3 speakers, got %d: %+v", len(speakers), speakers)
	}

	if speakers[0].Label != "Interviewer" {
		t.Fatalf("expected first speaker Interviewer, got %q", speakers[0].Label)
	}
	if !speakers[0].IsInterviewer {
		t.Fatal("expected Interviewer to be flagged as interviewer")
	}
	if speakers[0].Name == nil || *speakers[0].Name != "Interviewer" {
		t.Fatalf("expected Interviewer name kept, got %v", speakers[0].Name)
	}

	if speakers[1].Label != "Sarah" {
		t.Fatalf("expected second speaker Sarah, got %q", speakers[1].Label)
	}
	if speakers[1].Name == nil || *speakers[1].Name != "Sarah" {
		t.Fatalf("expected named speaker to keep name, got %v", speakers[1].Name)
	}

	if speakers[2].Label != "Speaker 2" {
		t.Fatalf("expected third speaker 'Speaker 2', got %q", speakers[2].Label)
	}
	if speakers[2].Name != nil {
		t.Fatalf("expected generic speaker label to have no name, got %q", *speakers[2].Name)
	}
}

func TestDetectSpeakersDeduplicates(t *testing.T) {
	transcript := "Sarah: First line here.\nSarah: Second line here.\n"
	speakers := DetectSpeakers(transcript)
	if len(speakers) != 1 {
		t.Fatalf("expected 1 speaker, got %d", len(speakers))
	}
}

func TestSplitSegmentsAttributesSpeakers(t *testing.T) {
	segments := SplitSegments(sampleTranscript)
	if len(segments) == 0 {
		t.Fatal("expected segments")
	}

	for _, seg := range segments {
		if len(seg.Text) <= 20 {
			t.Fatalf("segment shorter than threshold survived: %q", seg.Text)
		}
	}

	// The unlabeled line inherits the previous speaker.
	last := segments[len(segments)-1]
	if last.Speaker != "Speaker 2" {
		t.Fatalf("expected carried-over speaker 'Speaker 2', got %q", last.Speaker)
	}
}

func TestSplitSegmentsOffsets(t *testing.T) {
	transcript := "Sarah: The export process is frustrating. The export process is frustrating."
	segments := SplitSegments(transcript)
	if len(segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(segments))
	}

	first, second := segments[0], segments[1]
	if first.Start == nil || second.Start == nil {
		t.Fatal("expected offsets to be resolved")
	}
	if *first.Start >= *second.Start {
		t.Fatalf("expected monotonic offsets, got %d then %d", *first.Start, *second.Start)
	}
	if got := transcript[*first.Start:*first.End]; got != first.Text {
		t.Fatalf("offset mismatch: %q != %q", got, first.Text)
	}
	if got := transcript[*second.Start:*second.End]; got != second.Text {
		t.Fatalf("offset mismatch: %q != %q", got, second.Text)
	}
}

func TestSplitSegmentsDropsShortFragments(t *testing.T) {
	segments := SplitSegments("Sarah: Yes. No. Maybe so.\n")
	if len(segments) != 0 {
		t.Fatalf("expected no segments from short fragments, got %d", len(segments))
	}
}

func TestSplitSentences(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"One sentence only", []string{"One sentence only"}},
		{"First thing. Second thing!", []string{"First thing.", "Second thing!"}},
		{"Really? Yes.  Definitely.", []string{"Really?", "Yes.", "Definitely."}},
		{"Version 2.5 is out. Nice.", []string{"Version 2.5 is out.", "Nice."}},
	}

	for _, tc := range cases {
		got := splitSentences(tc.in)
		if len(got) != len(tc.want) {
			t.Fatalf("splitSentences(%q) = %v, want %v", tc.in, got, tc.want)
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Fatalf("splitSentences(%q)[%d] = %q, want %q", tc.in, i, got[i], tc.want[i])
			}
		}
	}
}
