package answer

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/flight-insight/flightinsight/internal/domain"
	"github.com/flight-insight/flightinsight/internal/logger"
	"github.com/flight-insight/flightinsight/internal/metrics"
)

// Service answers user queries over the review corpus: retrieve relevant
// reviews, assemble a grounded prompt, and stream the generated response
// chunk by chunk through the caller's emit function.
type Service struct {
	retriever Retriever
	gen       StreamingGenerator
	vocab     *domain.Vocabulary
}

// New creates an answer service.
func New(retriever Retriever, gen StreamingGenerator, vocab *domain.Vocabulary) *Service {
	return &Service{retriever: retriever, gen: gen, vocab: vocab}
}

// Answer streams a generated answer for the query. Chunks reach emit in
// arrival order; an error from emit aborts generation and is returned
// unchanged so the caller can tell a gone peer from a provider failure.
func (s *Service) Answer(ctx context.Context, query string, emit func(text string) error) error {
	log := logger.FromContext(ctx)

	reviews, _ := s.retriever.RelevantReviews(ctx, query)

	prompt := BuildPrompt(query, reviews, s.vocab.Airlines())
	log.Debug("assembled prompt",
		zap.Int("reviews", len(reviews)),
		zap.Int("prompt_len", len(prompt)))

	if err := s.gen.GenerateStream(ctx, prompt, emit); err != nil {
		if errors.Is(err, domain.ErrGenerationProviderError) {
			metrics.GenerationStreamsTotal.WithLabelValues("failed").Inc()
			return fmt.Errorf("generate answer: %w", err)
		}
		metrics.GenerationStreamsTotal.WithLabelValues("aborted").Inc()
		return err
	}

	metrics.GenerationStreamsTotal.WithLabelValues("completed").Inc()
	return nil
}
