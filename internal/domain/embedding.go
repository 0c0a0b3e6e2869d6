package domain

import "context"

// EmbeddingResult holds a vector and its token usage.
type EmbeddingResult struct {
	Embedding    []float32
	PromptTokens int
	TotalTokens  int
}

// BatchEmbeddingResult holds vectors for a batch of inputs, in input order.
type BatchEmbeddingResult struct {
	Embeddings   [][]float32
	PromptTokens int
	TotalTokens  int
}

// Embedder vectorizes text into embeddings. The model must match the one
// used to index the corpus or retrieved distances are meaningless.
type Embedder interface {
	Embed(ctx context.Context, text string) (EmbeddingResult, error)
}

// BatchEmbedder vectorizes many texts in one request. Used by the indexer;
// the query path only needs Embedder.
type BatchEmbedder interface {
	BatchEmbed(ctx context.Context, texts []string) (BatchEmbeddingResult, error)
}

// HealthChecker is optionally implemented by providers that can verify
// upstream availability.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}
