package retrieval

import (
	"context"

	"go.uber.org/zap"

	"github.com/flight-insight/flightinsight/internal/domain"
	"github.com/flight-insight/flightinsight/internal/logger"
	"github.com/flight-insight/flightinsight/internal/metrics"
)

// Service orchestrates the retrieval flow: extract parameters, validate
// them into a filter, then run a filtered vector search over the review
// corpus. An empty filter means the query names no supported airline, and
// the search is skipped entirely.
type Service struct {
	extractor Extractor
	embed     Embedder
	repo      Repository
	vocab     *domain.Vocabulary
	topK      int
}

// New creates a retrieval service.
func New(extractor Extractor, embed Embedder, repo Repository, vocab *domain.Vocabulary, topK int) *Service {
	return &Service{
		extractor: extractor,
		embed:     embed,
		repo:      repo,
		vocab:     vocab,
		topK:      topK,
	}
}

// RelevantReviews retrieves the reviews most relevant to the query, along
// with the raw extracted parameters. An empty result is not an error: it
// means no supported airline was recognized, or retrieval degraded after a
// provider failure.
func (s *Service) RelevantReviews(ctx context.Context, query string) ([]domain.ReviewRecord, domain.ExtractedParameters) {
	log := logger.FromContext(ctx)

	extracted := s.extractor.Extract(ctx, query)
	log.Info("extracted query parameters", zap.Any("parameters", extracted))

	filter := BuildFilter(extracted, s.vocab)
	if len(filter) == 0 {
		metrics.VectorSearchTotal.WithLabelValues("skipped").Inc()
		log.Info("no valid filter parameters, skipping vector search")
		return nil, extracted
	}

	embResult, err := s.embed.Embed(ctx, query)
	if err != nil {
		metrics.VectorSearchTotal.WithLabelValues("error").Inc()
		log.Error("failed to vectorize query", zap.Error(err))
		return nil, extracted
	}

	reviews, err := s.repo.Search(ctx, filter, embResult.Embedding, s.topK)
	if err != nil {
		metrics.VectorSearchTotal.WithLabelValues("error").Inc()
		log.Error("review search failed", zap.Error(err))
		return nil, extracted
	}

	metrics.VectorSearchTotal.WithLabelValues("success").Inc()
	metrics.RetrievedReviews.Observe(float64(len(reviews)))
	log.Info("retrieved reviews",
		zap.Int("count", len(reviews)),
		zap.Any("filter", filter))

	return reviews, extracted
}
