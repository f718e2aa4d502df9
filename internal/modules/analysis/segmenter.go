package analysis

import (
	"regexp"
	"strings"
)

// Segment is one analyzable sentence with its speaker attribution and
// character offsets into the source transcript.
type Segment struct {
	Text    string
	Speaker string
	Start   *int
	End     *int
}

// Speaker is a participant detected from transcript labels.
type Speaker struct {
	Label         string
	Name          *string
	Role          *string
	IsInterviewer bool
}

const minSegmentLen = 20

var (
	speakerLineRe   = regexp.MustCompile(`(?i)^((?:Speaker\s*\d+|Interviewer|\w+)):\s*(.*)`)
	speakerDetectRe = regexp.MustCompile(`(?im)^((?:Speaker\s*\d+|Interviewer|\w+)):\s`)
)

// DetectSpeakers finds distinct speaker labels such as "Speaker 1:",
// "Interviewer:" or "Sarah:" at the start of lines.
func DetectSpeakers(transcript string) []Speaker {
	seen := make(map[string]bool)
	var speakers []Speaker

	for _, match := range speakerDetectRe.FindAllStringSubmatch(transcript, -1) {
		label := strings.TrimSpace(match[1])
		if seen[label] {
			continue
		}
		seen[label] = true

		sp := Speaker{
			Label:         label,
			IsInterviewer: strings.Contains(strings.ToLower(label), "interviewer"),
		}
		if !strings.HasPrefix(label, "Speaker") {
			name := label
			sp.Name = &name
		}
		speakers = append(speakers, sp)
	}
	return speakers
}

// SplitSegments breaks a transcript into sentence segments. Each line may
// start with a speaker label which carries over to following lines. Offsets
// are resolved with a monotonic forward search, so repeated sentences map to
// successive occurrences. Fragments of 20 characters or less are dropped.
func SplitSegments(transcript string) []Segment {
	var segments []Segment
	currentSpeaker := ""
	currentPos := 0

	for _, line := range strings.Split(transcript, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		text := line
		if m := speakerLineRe.FindStringSubmatch(line); m != nil {
			currentSpeaker = strings.TrimSpace(m[1])
			text = strings.TrimSpace(m[2])
		}
		if text == "" {
			continue
		}

		for _, sentence := range splitSentences(text) {
			sentence = strings.TrimSpace(sentence)
			if len(sentence) <= minSegmentLen {
				continue
			}

			seg := Segment{Text: sentence, Speaker: currentSpeaker}
			if pos := strings.Index(transcript[currentPos:], sentence); pos >= 0 {
				start := currentPos + pos
				end := start + len(sentence)
				seg.Start = &start
				seg.End = &end
				currentPos = end
			}
			segments = append(segments, seg)
		}
	}
	return segments
}

// splitSentences cuts text after sentence-ending punctuation followed by
// whitespace, consuming the whitespace.
func splitSentences(text string) []string {
	var out []string
	start := 0
	i := 0
	for i < len(text) {
		c := text[i]
		if (c == '.' || c == '!' || c == '?') && i+1 < len(text) && isSpace(text[i+1]) {
			out = append(out, text[start:i+1])
			i++
			for i < len(text) && isSpace(text[i]) {
				i++
			}
			start = i
			continue
		}
		i++
	}
	if start < len(text) {
		out = append(out, text[start:])
	}
	return out
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
