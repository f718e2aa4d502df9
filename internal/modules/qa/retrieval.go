package qa

import (
	"math"
	"sort"

	"github.com/deepjyoti31/spec10x/internal/models"
)

// CosineSimilarity returns the cosine of the angle between two vectors, or 0
// when either has zero magnitude or the lengths differ.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		av, bv := float64(a[i]), float64(b[i])
		dot += av * bv
		normA += av * av
		normB += bv * bv
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// rankedChunk pairs a chunk with its similarity to the query.
type rankedChunk struct {
	chunk      models.TranscriptChunkModel
	similarity float64
}

// rankChunks orders chunks by descending cosine similarity to the query
// vector and returns the top limit. Chunks without embeddings are skipped.
func rankChunks(chunks []models.TranscriptChunkModel, query []float32, limit int) []rankedChunk {
	ranked := make([]rankedChunk, 0, len(chunks))
	for _, c := range chunks {
		if len(c.Embedding) == 0 {
			continue
		}
		ranked = append(ranked, rankedChunk{
			chunk:      c,
			similarity: CosineSimilarity(c.Embedding, query),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].similarity > ranked[j].similarity
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
