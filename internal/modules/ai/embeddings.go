package ai

import (
	"context"
	"fmt"
	"strings"

	openaiclient "github.com/openai/openai-go/v2"
	openaioption "github.com/openai/openai-go/v2/option"
)

// EmbeddingBatchSize is the maximum number of texts per embeddings request.
const EmbeddingBatchSize = 100

// embeddingProvider picks the first enabled provider that can serve the
// OpenAI embeddings API. Anthropic does not expose one.
func (c *Client) embeddingProvider() *openaiclient.Client {
	for _, p := range c.cfg.Providers {
		if !p.Enabled || strings.TrimSpace(p.APIKey) == "" {
			continue
		}
		if isAnthropicProviderType(p.Type) {
			continue
		}

		opts := []openaioption.RequestOption{
			openaioption.WithAPIKey(strings.TrimSpace(p.APIKey)),
			openaioption.WithMaxRetries(1),
		}
		if normalized := normalizeOpenAIBaseURL(p.Endpoint); normalized != "" {
			opts = append(opts, openaioption.WithBaseURL(normalized))
		}
		client := openaiclient.NewClient(opts...)
		return &client
	}
	return nil
}

// EmbedBatch embeds up to EmbeddingBatchSize texts in one request. The
// result slice is parallel to the input. Callers own batching so that one
// failed batch does not discard the others.
func (c *Client) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	if len(texts) > EmbeddingBatchSize {
		return nil, fmt.Errorf("batch too large: %d texts, max %d", len(texts), EmbeddingBatchSize)
	}

	client := c.embeddingProvider()
	if client == nil {
		return nil, ErrNoProvider
	}

	model := strings.TrimSpace(c.cfg.EmbeddingModel)
	if model == "" {
		model = "text-embedding-3-small"
	}
	dims := c.cfg.EmbeddingDimensions
	if dims <= 0 {
		dims = 768
	}

	callCtx, cancel := context.WithTimeout(ctx, c.timeout())
	defer cancel()

	resp, err := client.Embeddings.New(callCtx, openaiclient.EmbeddingNewParams{
		Input:      openaiclient.EmbeddingNewParamsInputUnion{OfArrayOfStrings: texts},
		Model:      openaiclient.EmbeddingModel(model),
		Dimensions: openaiclient.Int(int64(dims)),
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("embedding count mismatch: got %d, want %d", len(resp.Data), len(texts))
	}

	out := make([][]float32, 0, len(texts))
	for _, item := range resp.Data {
		vec := make([]float32, len(item.Embedding))
		for i, v := range item.Embedding {
			vec[i] = float32(v)
		}
		out = append(out, vec)
	}
	return out, nil
}

// EmbedQuery embeds a single query string.
func (c *Client) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	vecs, err := c.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(vecs) == 0 {
		return nil, fmt.Errorf("no embedding returned")
	}
	return vecs[0], nil
}
