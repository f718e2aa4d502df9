package qa

import (
	"math"
	"testing"

	"github.com/deepjyoti31/spec10x/internal/models"
)

func TestCosineSimilarity(t *testing.T) {
	cases := []struct {
		name string
		a, b []float32
		want float64
	}{
		{"identical", []float32{1, 0, 0}, []float32{1, 0, 0}, 1},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0},
		{"opposite", []float32{1, 0}, []float32{-1, 0}, -1},
		{"zero vector", []float32{0, 0}, []float32{1, 1}, 0},
		{"length mismatch", []float32{1, 2}, []float32{1, 2, 3}, 0},
		{"empty", nil, nil, 0},
	}

	for _, tc := range cases {
		if got := CosineSimilarity(tc.a, tc.b); math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("%s: CosineSimilarity = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestCosineSimilarityScaleInvariant(t *testing.T) {
	a := []float32{0.3, 0.8, 0.1}
	b := []float32{0.6, 1.6, 0.2}
	if got := CosineSimilarity(a, b); math.Abs(got-1) > 1e-6 {
		t.Fatalf("scaled vectors should have similarity 1, got %v", got)
	}
}

func TestRankChunks(t *testing.T) {
	query := []float32{1, 0}
	chunks := []models.TranscriptChunkModel{
		{InterviewID: "i1", ChunkIndex: 0, Embedding: models.Vector{0, 1}},
		{InterviewID: "i1", ChunkIndex: 1, Embedding: models.Vector{1, 0}},
		{InterviewID: "i2", ChunkIndex: 0, Embedding: models.Vector{0.7, 0.7}},
		{InterviewID: "i2", ChunkIndex: 1, Embedding: nil},
	}

	ranked := rankChunks(chunks, query, 10)
	if len(ranked) != 3 {
		t.Fatalf("expected 3 ranked chunks (embedded only), got %d", len(ranked))
	}
	if ranked[0].chunk.ChunkIndex != 1 || ranked[0].chunk.InterviewID != "i1" {
		t.Fatalf("expected exact match first, got %+v", ranked[0].chunk)
	}
	if ranked[1].chunk.InterviewID != "i2" {
		t.Fatalf("expected diagonal vector second, got %+v", ranked[1].chunk)
	}
	if ranked[0].similarity < ranked[1].similarity || ranked[1].similarity < ranked[2].similarity {
		t.Fatal("expected descending similarity order")
	}
}

func TestRankChunksLimit(t *testing.T) {
	query := []float32{1, 0}
	chunks := make([]models.TranscriptChunkModel, 20)
	for i := range chunks {
		chunks[i] = models.TranscriptChunkModel{Embedding: models.Vector{1, float32(i)}}
	}
	if got := rankChunks(chunks, query, 10); len(got) != 10 {
		t.Fatalf("expected limit of 10, got %d", len(got))
	}
}
