package utils

import (
	"context"
	"hash/fnv"
	"math"
	"strings"

	"github.com/pgvector/pgvector-go"
)

// EmbeddingDimensions matches the vector(1536) column on trips.
const EmbeddingDimensions = 1536

// AIClientInterface is a single prompt-in, text-out model plus an embedding source.
type AIClientInterface interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
	GetEmbedding(ctx context.Context, text string) (pgvector.Vector, error)
	Close() error
}

// HashedTextVector builds a deterministic bag-of-words vector. Used where the provider
// has no embedding endpoint of the right size.
func HashedTextVector(text string) pgvector.Vector {
	words := strings.Fields(strings.ToLower(strings.TrimSpace(text)))
	vector := make([]float32, EmbeddingDimensions)

	for _, word := range words {
		h := fnv.New32a()
		h.Write([]byte(word))
		hash := h.Sum32()
		for i := 0; i < EmbeddingDimensions; i++ {
			vector[i] += float32(math.Sin(float64(hash+uint32(i))) * 0.1)
		}
	}

	var magnitude float64
	for _, v := range vector {
		magnitude += float64(v * v)
	}
	magnitude = math.Sqrt(magnitude)

	if magnitude > 0 {
		for i := range vector {
			vector[i] = float32(float64(vector[i]) / magnitude)
		}
	}

	return pgvector.NewVector(vector)
}
