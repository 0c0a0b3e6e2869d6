package ingest

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/flight-insight/flightinsight/internal/domain"
	"github.com/flight-insight/flightinsight/internal/repository/review"
)

// Repository is the indexer's storage contract.
type Repository interface {
	EnsureIndex(ctx context.Context) error
	UpsertBatch(ctx context.Context, items []review.Item) error
}

// Stats summarizes an indexing run.
type Stats struct {
	Indexed       int
	FailedBatches int
}

// Indexer embeds cleaned reviews in batches and writes them to the review
// index. A failing batch is logged and skipped; the run continues so one
// bad batch does not lose the whole corpus.
type Indexer struct {
	repo      Repository
	embedder  domain.BatchEmbedder
	batchSize int
	logger    *zap.Logger
}

// NewIndexer creates an indexer. batchSize bounds both the embedding
// request and the storage pipeline round-trip.
func NewIndexer(repo Repository, embedder domain.BatchEmbedder, batchSize int, logger *zap.Logger) *Indexer {
	if batchSize <= 0 {
		batchSize = 100
	}
	return &Indexer{repo: repo, embedder: embedder, batchSize: batchSize, logger: logger}
}

// Run indexes all reviews and returns run statistics.
func (ix *Indexer) Run(ctx context.Context, reviews []CleanReview) (Stats, error) {
	if err := ix.repo.EnsureIndex(ctx); err != nil {
		return Stats{}, fmt.Errorf("ensure index: %w", err)
	}

	var stats Stats
	for start := 0; start < len(reviews); start += ix.batchSize {
		end := start + ix.batchSize
		if end > len(reviews) {
			end = len(reviews)
		}
		batch := reviews[start:end]

		if err := ix.indexBatch(ctx, batch); err != nil {
			stats.FailedBatches++
			ix.logger.Error("batch failed, skipping",
				zap.Int("start", start),
				zap.Int("size", len(batch)),
				zap.Error(err))
			if ctx.Err() != nil {
				return stats, ctx.Err()
			}
			continue
		}
		stats.Indexed += len(batch)

		ix.logger.Info("indexed batch",
			zap.Int("start", start),
			zap.Int("size", len(batch)),
			zap.Int("total_indexed", stats.Indexed))
	}

	return stats, nil
}

func (ix *Indexer) indexBatch(ctx context.Context, batch []CleanReview) error {
	texts := make([]string, len(batch))
	for i, r := range batch {
		texts[i] = r.Metadata.ReviewText
	}

	res, err := ix.embedder.BatchEmbed(ctx, texts)
	if err != nil {
		return fmt.Errorf("embed batch: %w", err)
	}
	if len(res.Embeddings) != len(batch) {
		return fmt.Errorf("got %d embeddings for %d reviews", len(res.Embeddings), len(batch))
	}

	items := make([]review.Item, len(batch))
	for i, r := range batch {
		items[i] = review.Item{
			ID:       strconv.Itoa(r.RowID),
			Vector:   res.Embeddings[i],
			Metadata: r.Metadata,
		}
	}

	if err := ix.repo.UpsertBatch(ctx, items); err != nil {
		return fmt.Errorf("upsert batch: %w", err)
	}
	return nil
}
