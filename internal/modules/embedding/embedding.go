package embedding

import (
	"context"
	"math"
	"math/rand"
	"sync"

	"github.com/deepjyoti31/spec10x/internal/modules/ai"
	"go.uber.org/zap"
)

// DefaultDimensions is the embedding vector width.
const DefaultDimensions = 768

// Embedder produces vectors for chunk texts. Without a usable AI client it
// generates random normalized vectors; real batches that fail fall back to
// random vectors for just that batch.
type Embedder struct {
	client *ai.Client
	dims   int
	log    *zap.Logger

	// rng is shared across pipeline and request goroutines; mu guards it.
	mu  sync.Mutex
	rng *rand.Rand
}

func NewEmbedder(client *ai.Client, rng *rand.Rand, dims int, log *zap.Logger) *Embedder {
	if dims <= 0 {
		dims = DefaultDimensions
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Embedder{client: client, rng: rng, dims: dims, log: log}
}

// Dimensions returns the configured vector width.
func (e *Embedder) Dimensions() int { return e.dims }

// EmbedChunks returns one vector per chunk, in order. Batches that fail are
// replaced with random vectors without discarding batches that succeeded.
func (e *Embedder) EmbedChunks(ctx context.Context, chunks []string) [][]float32 {
	if len(chunks) == 0 {
		return nil
	}

	live := e.client != nil && e.client.Enabled()

	out := make([][]float32, 0, len(chunks))
	for start := 0; start < len(chunks); start += ai.EmbeddingBatchSize {
		end := start + ai.EmbeddingBatchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		batch := chunks[start:end]

		if live {
			vecs, err := e.client.EmbedBatch(ctx, batch)
			if err == nil {
				out = append(out, vecs...)
				continue
			}
			e.log.Warn("embedding batch failed, using random vectors for this batch",
				zap.Int("batch_start", start), zap.Error(err))
		}
		for range batch {
			out = append(out, e.randomEmbedding())
		}
	}
	return out
}

// EmbedQuery embeds a single query string. In mock mode it returns a random
// vector; a failed call against a live provider is an error so the caller
// can fall back to keyword search.
func (e *Embedder) EmbedQuery(ctx context.Context, query string) ([]float32, error) {
	if e.client == nil || !e.client.Enabled() {
		return e.randomEmbedding(), nil
	}
	return e.client.EmbedQuery(ctx, query)
}

// randomEmbedding draws a standard-normal vector and L2-normalizes it.
func (e *Embedder) randomEmbedding() []float32 {
	vec := make([]float64, e.dims)
	var sum float64

	e.mu.Lock()
	for i := range vec {
		var v float64
		if e.rng != nil {
			v = e.rng.NormFloat64()
		} else {
			v = rand.NormFloat64()
		}
		vec[i] = v
		sum += v * v
	}
	e.mu.Unlock()

	magnitude := math.Sqrt(sum)
	if magnitude == 0 {
		magnitude = 1
	}

	out := make([]float32, e.dims)
	for i, v := range vec {
		out[i] = float32(v / magnitude)
	}
	return out
}
