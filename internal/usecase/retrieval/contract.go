package retrieval

import (
	"context"

	"github.com/flight-insight/flightinsight/internal/domain"
)

// Extractor pulls structured parameters out of a free-form query.
type Extractor interface {
	Extract(ctx context.Context, query string) domain.ExtractedParameters
}

// Embedder vectorizes text into embeddings.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}

// Repository defines the storage contract for filtered review search.
type Repository interface {
	Search(ctx context.Context, filter domain.FilterParameters, vector []float32, topK int) ([]domain.ReviewRecord, error)
}
