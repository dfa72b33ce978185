package embedding

import (
	"context"

	"go.uber.org/zap"
)

// Embedder turns text into a fixed-dimension vector
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Dimensions() int
}

// FallbackEmbedder answers from the primary embedder and degrades to the
// deterministic fallback when the hosted call fails. Both sides must agree
// on dimensionality or similarity queries would mix vector spaces.
type FallbackEmbedder struct {
	primary  Embedder
	fallback Embedder
	logger   *zap.Logger
}

func NewFallbackEmbedder(primary, fallback Embedder, logger *zap.Logger) *FallbackEmbedder {
	return &FallbackEmbedder{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

func (f *FallbackEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if f.primary != nil {
		vector, err := f.primary.Embed(ctx, text)
		if err == nil {
			return vector, nil
		}
		f.logger.Warn("Primary embedder failed, using local fallback", zap.Error(err))
	}
	return f.fallback.Embed(ctx, text)
}

func (f *FallbackEmbedder) Dimensions() int {
	return f.fallback.Dimensions()
}
