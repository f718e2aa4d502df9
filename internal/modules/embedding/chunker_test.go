package embedding

import (
	"fmt"
	"strings"
	"testing"
)

func makeWords(n int) string {
	words := make([]string, n)
	for i := range words {
		words[i] = fmt.Sprintf("w%d", i)
	}
	return strings.Join(words, " ")
}

func TestChunkTranscriptEmpty(t *testing.T) {
	if got := ChunkTranscript("", DefaultChunkSize, DefaultOverlap); got != nil {
		t.Fatalf("expected nil for empty input, got %v", got)
	}
	if got := ChunkTranscript("   \n\t  ", DefaultChunkSize, DefaultOverlap); got != nil {
		t.Fatalf("expected nil for whitespace input, got %v", got)
	}
}

func TestChunkTranscriptSingleChunk(t *testing.T) {
	text := makeWords(120)
	chunks := ChunkTranscript(text, DefaultChunkSize, DefaultOverlap)
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0] != text {
		t.Fatal("single chunk should carry full text")
	}
}

func TestChunkTranscriptOverlap(t *testing.T) {
	chunks := ChunkTranscript(makeWords(1200), DefaultChunkSize, DefaultOverlap)
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}

	for i := 1; i < len(chunks); i++ {
		prev := strings.Fields(chunks[i-1])
		cur := strings.Fields(chunks[i])
		tail := prev[len(prev)-DefaultOverlap:]
		head := cur[:DefaultOverlap]
		for j := range tail {
			if tail[j] != head[j] {
				t.Fatalf("chunk %d overlap mismatch at %d: %q != %q", i, j, tail[j], head[j])
			}
		}
	}
}

func TestChunkTranscriptNoWordLoss(t *testing.T) {
	const total = 1337
	chunks := ChunkTranscript(makeWords(total), 500, 50)

	seen := make(map[string]bool)
	for _, chunk := range chunks {
		for _, w := range strings.Fields(chunk) {
			seen[w] = true
		}
	}
	if len(seen) != total {
		t.Fatalf("expected all %d distinct words covered, got %d", total, len(seen))
	}
}

func TestChunkTranscriptSizes(t *testing.T) {
	chunks := ChunkTranscript(makeWords(1200), 500, 50)
	for i, chunk := range chunks {
		n := len(strings.Fields(chunk))
		if n > 500 {
			t.Fatalf("chunk %d exceeds size: %d words", i, n)
		}
	}

	// Last chunk carries the remainder: 1200 words advance 450 per step.
	last := strings.Fields(chunks[len(chunks)-1])
	if len(last) != 1200-2*450 {
		t.Fatalf("unexpected last chunk size: %d", len(last))
	}
}
