package answer

import (
	"context"

	"github.com/flight-insight/flightinsight/internal/domain"
)

// Retriever fetches the reviews most relevant to a query.
type Retriever interface {
	RelevantReviews(ctx context.Context, query string) ([]domain.ReviewRecord, domain.ExtractedParameters)
}

// StreamingGenerator produces a response chunk by chunk. A nil return means
// the model finished; an error means the stream did not complete. Errors
// returned by emit abort generation and propagate unchanged.
type StreamingGenerator interface {
	GenerateStream(ctx context.Context, prompt string, emit func(text string) error) error
}
