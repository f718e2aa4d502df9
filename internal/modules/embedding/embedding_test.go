package embedding

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	appcfg "github.com/deepjyoti31/spec10x/internal/config"
	"github.com/deepjyoti31/spec10x/internal/modules/ai"
)

// liveClient builds an AI client whose embeddings endpoint is the given test
// server.
func liveClient(serverURL string, dims int) *ai.Client {
	return ai.NewClient(appcfg.AIConfig{
		Providers: []appcfg.AIProvider{{
			ID:      "test",
			Type:    "OpenAI",
			APIKey:  "test-key",
			Endpoint: serverURL,
			Enabled: true,
		}},
		EmbeddingModel:      "test-embed",
		EmbeddingDimensions: dims,
		RequestTimeoutSec:   5,
	})
}

// embeddingsResponse writes an OpenAI-style embeddings payload with one
// fixed vector per input.
func embeddingsResponse(w http.ResponseWriter, count int, vec []float64) {
	type item struct {
		Object    string    `json:"object"`
		Index     int       `json:"index"`
		Embedding []float64 `json:"embedding"`
	}
	items := make([]item, count)
	for i := range items {
		items[i] = item{Object: "embedding", Index: i, Embedding: vec}
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"object": "list",
		"data":   items,
		"model":  "test-embed",
		"usage":  map[string]int{"prompt_tokens": 0, "total_tokens": 0},
	})
}

func countInputs(r *http.Request) int {
	var body struct {
		Input []string `json:"input"`
	}
	_ = json.NewDecoder(r.Body).Decode(&body)
	return len(body.Input)
}

func TestRandomEmbeddingNormalized(t *testing.T) {
	e := NewEmbedder(nil, rand.New(rand.NewSource(42)), 768, nil)

	vec := e.randomEmbedding()
	if len(vec) != 768 {
		t.Fatalf("expected 768 dimensions, got %d", len(vec))
	}

	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	if norm := math.Sqrt(sum); math.Abs(norm-1.0) > 1e-4 {
		t.Fatalf("expected unit norm, got %v", norm)
	}
}

func TestEmbedChunksMockMode(t *testing.T) {
	e := NewEmbedder(nil, rand.New(rand.NewSource(7)), 64, nil)

	chunks := []string{"first chunk text", "second chunk text", "third chunk text"}
	vecs := e.EmbedChunks(context.Background(), chunks)
	if len(vecs) != len(chunks) {
		t.Fatalf("expected %d vectors, got %d", len(chunks), len(vecs))
	}
	for i, vec := range vecs {
		if len(vec) != 64 {
			t.Fatalf("vector %d has %d dims, want 64", i, len(vec))
		}
	}

	// Mock vectors come from a random stream, so consecutive chunks differ.
	same := true
	for i := range vecs[0] {
		if vecs[0][i] != vecs[1][i] {
			same = false
			break
		}
	}
	if same {
		t.Fatal("expected distinct random vectors per chunk")
	}
}

func TestEmbedChunksEmpty(t *testing.T) {
	e := NewEmbedder(nil, rand.New(rand.NewSource(7)), 64, nil)
	if got := e.EmbedChunks(context.Background(), nil); got != nil {
		t.Fatalf("expected nil for no chunks, got %v", got)
	}
}

func TestEmbedderDefaultDimensions(t *testing.T) {
	e := NewEmbedder(nil, nil, 0, nil)
	if e.Dimensions() != DefaultDimensions {
		t.Fatalf("expected default %d dims, got %d", DefaultDimensions, e.Dimensions())
	}
}

func TestEmbedChunksKeepsSuccessfulBatches(t *testing.T) {
	served := []float64{1, 0, 0}
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := countInputs(r)
		if calls.Add(1) == 1 {
			embeddingsResponse(w, n, served)
			return
		}
		http.Error(w, "upstream unavailable", http.StatusInternalServerError)
	}))
	defer srv.Close()

	e := NewEmbedder(liveClient(srv.URL, 3), rand.New(rand.NewSource(11)), 3, nil)

	chunks := make([]string, 150)
	for i := range chunks {
		chunks[i] = fmt.Sprintf("chunk %d", i)
	}

	vecs := e.EmbedChunks(context.Background(), chunks)
	if len(vecs) != len(chunks) {
		t.Fatalf("expected %d vectors, got %d", len(chunks), len(vecs))
	}

	// The first batch of 100 succeeded and must keep its real vectors.
	for i := 0; i < 100; i++ {
		for j, v := range vecs[i] {
			if float64(v) != served[j] {
				t.Fatalf("vector %d[%d] = %v, want %v: successful batch was discarded", i, j, v, served[j])
			}
		}
	}

	// The failed second batch falls back to random unit vectors.
	for i := 100; i < 150; i++ {
		var sum float64
		for _, v := range vecs[i] {
			sum += float64(v) * float64(v)
		}
		if norm := math.Sqrt(sum); math.Abs(norm-1.0) > 1e-4 {
			t.Fatalf("fallback vector %d has norm %v, want 1", i, norm)
		}
		if float64(vecs[i][0]) == served[0] && float64(vecs[i][1]) == served[1] {
			t.Fatalf("vector %d looks like a served vector, expected random fallback", i)
		}
	}
}

func TestEmbedQueryMockMode(t *testing.T) {
	e := NewEmbedder(nil, rand.New(rand.NewSource(3)), 16, nil)

	vec, err := e.EmbedQuery(context.Background(), "what do users complain about")
	if err != nil {
		t.Fatalf("mock mode should not error: %v", err)
	}
	if len(vec) != 16 {
		t.Fatalf("expected 16 dims, got %d", len(vec))
	}
}

func TestEmbedQueryFailureReturnsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream unavailable", http.StatusInternalServerError)
	}))
	defer srv.Close()

	e := NewEmbedder(liveClient(srv.URL, 3), rand.New(rand.NewSource(3)), 3, nil)

	if _, err := e.EmbedQuery(context.Background(), "anything"); err == nil {
		t.Fatal("expected an error when the provider call fails, so callers can fall back to keyword search")
	}
}

func TestRandomEmbeddingConcurrent(t *testing.T) {
	e := NewEmbedder(nil, rand.New(rand.NewSource(5)), 32, nil)

	chunks := []string{"a", "b", "c", "d"}
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 25; j++ {
				if vecs := e.EmbedChunks(context.Background(), chunks); len(vecs) != len(chunks) {
					t.Errorf("got %d vectors, want %d", len(vecs), len(chunks))
					return
				}
			}
		}()
	}
	wg.Wait()
}
