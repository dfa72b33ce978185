package embedding

import (
	"context"
	"fmt"

	"github.com/careerpilot/linkedin-optimizer-go/internal/constants"
	"github.com/careerpilot/linkedin-optimizer-go/internal/service/cache"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

// GeminiEmbedder embeds text through the hosted embedding model. Vectors
// are cached in Redis keyed by content hash so repeat candidates skip the
// API entirely.
type GeminiEmbedder struct {
	client *genai.Client
	model  string
	dims   int
	cache  *cache.CacheService
	logger *zap.Logger
}

func NewGeminiEmbedder(client *genai.Client, model string, cacheService *cache.CacheService, logger *zap.Logger) *GeminiEmbedder {
	if model == "" {
		model = "gemini-embedding-001"
	}
	return &GeminiEmbedder{
		client: client,
		model:  model,
		dims:   constants.EmbeddingConfig.Dimensions,
		cache:  cacheService,
		logger: logger,
	}
}

func (g *GeminiEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if g.client == nil {
		return nil, fmt.Errorf("gemini client not initialized")
	}
	if text == "" {
		return nil, fmt.Errorf("cannot embed empty text")
	}

	if vector, ok := g.cache.GetEmbedding(ctx, text); ok {
		if len(vector) == g.dims {
			return vector, nil
		}
	}

	dims := int32(g.dims)
	resp, err := g.client.Models.EmbedContent(ctx, g.model, []*genai.Content{
		{Parts: []*genai.Part{{Text: text}}},
	}, &genai.EmbedContentConfig{
		OutputDimensionality: &dims,
	})
	if err != nil {
		g.logger.Error("Embedding request failed", zap.Error(err))
		return nil, err
	}

	if resp == nil || len(resp.Embeddings) == 0 || len(resp.Embeddings[0].Values) == 0 {
		return nil, fmt.Errorf("empty embedding from %s", g.model)
	}

	vector := resp.Embeddings[0].Values
	if len(vector) != g.dims {
		return nil, fmt.Errorf("unexpected embedding dimensionality: got %d, want %d", len(vector), g.dims)
	}

	g.cache.SetEmbedding(ctx, text, vector)
	return vector, nil
}

func (g *GeminiEmbedder) Dimensions() int {
	return g.dims
}
