package embedding

import (
	"context"
	"math"
	"testing"

	"github.com/careerpilot/linkedin-optimizer-go/internal/constants"
)

func TestHashingEmbedderIsDeterministic(t *testing.T) {
	emb := NewHashingEmbedder(128)

	a, err := emb.Embed(context.Background(), "golang kubernetes distributed systems")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := emb.Embed(context.Background(), "golang kubernetes distributed systems")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(a) != len(b) {
		t.Fatalf("expected equal lengths, got %d and %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("expected identical vectors, differ at %d: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestHashingEmbedderProducesUnitVectors(t *testing.T) {
	emb := NewHashingEmbedder(256)

	vector, err := emb.Embed(context.Background(), "backend engineer building APIs in Go")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var sumSquares float64
	for _, v := range vector {
		sumSquares += float64(v) * float64(v)
	}
	if math.Abs(sumSquares-1.0) > 1e-5 {
		t.Fatalf("expected unit norm, got squared magnitude %f", sumSquares)
	}
}

func TestHashingEmbedderDimensions(t *testing.T) {
	if got := NewHashingEmbedder(64).Dimensions(); got != 64 {
		t.Fatalf("expected 64 dimensions, got %d", got)
	}
	if got := NewHashingEmbedder(0).Dimensions(); got != constants.EmbeddingConfig.Dimensions {
		t.Fatalf("expected default dimensions %d, got %d", constants.EmbeddingConfig.Dimensions, got)
	}

	vector, err := NewHashingEmbedder(64).Embed(context.Background(), "some text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(vector) != 64 {
		t.Fatalf("expected vector length 64, got %d", len(vector))
	}
}

func TestHashingEmbedderRejectsEmptyText(t *testing.T) {
	emb := NewHashingEmbedder(64)
	for _, text := range []string{"", "   ", "!!!"} {
		if _, err := emb.Embed(context.Background(), text); err == nil {
			t.Fatalf("expected error for unembeddable text %q", text)
		}
	}
}

func TestHashingEmbedderRanksOverlapHigher(t *testing.T) {
	emb := NewHashingEmbedder(constants.EmbeddingConfig.Dimensions)
	ctx := context.Background()

	base, _ := emb.Embed(ctx, "golang kubernetes docker microservices")
	near, _ := emb.Embed(ctx, "golang kubernetes docker monolith")
	far, _ := emb.Embed(ctx, "watercolor painting portrait gallery")

	if cosine(base, near) <= cosine(base, far) {
		t.Fatalf("expected overlapping text to score higher: near=%f far=%f",
			cosine(base, near), cosine(base, far))
	}
}

func cosine(a, b []float32) float64 {
	var dot float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
	}
	return dot
}
