package embedding

import (
	"context"
	"fmt"
	"hash/fnv"
	"math"
	"regexp"
	"strings"

	"github.com/careerpilot/linkedin-optimizer-go/internal/constants"
)

var wordPattern = regexp.MustCompile(`[a-z0-9#+.]+`)

// HashingEmbedder is the deterministic local fallback: token-hashed
// bag-of-words vectors, L2-normalized. It is no substitute for a learned
// model but it keeps similarity ranking stable and offline-testable.
type HashingEmbedder struct {
	dims int
}

func NewHashingEmbedder(dims int) *HashingEmbedder {
	if dims <= 0 {
		dims = constants.EmbeddingConfig.Dimensions
	}
	return &HashingEmbedder{dims: dims}
}

func (h *HashingEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	tokens := wordPattern.FindAllString(strings.ToLower(text), -1)
	if len(tokens) == 0 {
		return nil, fmt.Errorf("cannot embed empty text")
	}

	vector := make([]float32, h.dims)
	for _, token := range tokens {
		hasher := fnv.New32a()
		hasher.Write([]byte(token))
		idx := int(hasher.Sum32()) % h.dims
		if idx < 0 {
			idx += h.dims
		}
		vector[idx]++
	}

	var sumSquares float64
	for _, v := range vector {
		sumSquares += float64(v) * float64(v)
	}
	norm := float32(math.Sqrt(sumSquares))
	for i := range vector {
		vector[i] /= norm
	}

	return vector, nil
}

func (h *HashingEmbedder) Dimensions() int {
	return h.dims
}
