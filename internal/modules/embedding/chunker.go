package embedding

import "strings"

const (
	// DefaultChunkSize approximates tokens per chunk (1 token ~ 1 word).
	DefaultChunkSize = 500
	// DefaultOverlap is the word overlap between consecutive chunks.
	DefaultOverlap = 50
)

// ChunkTranscript splits text into overlapping word-window chunks. Every word
// of the input appears in at least one chunk, and each chunk after the first
// repeats the last overlap words of its predecessor.
func ChunkTranscript(transcript string, chunkSize, overlap int) []string {
	words := strings.Fields(transcript)
	if len(words) == 0 {
		return nil
	}

	var chunks []string
	start := 0
	for start < len(words) {
		end := start + chunkSize
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, strings.Join(words[start:end], " "))

		if end >= len(words) {
			break
		}
		start = end - overlap
	}
	return chunks
}
