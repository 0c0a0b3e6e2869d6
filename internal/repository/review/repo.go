package review

import (
	"context"
	"errors"
	"fmt"

	"github.com/flight-insight/flightinsight/internal/db"
	"github.com/flight-insight/flightinsight/internal/domain"
)

// store is the consumer interface for review index operations (ISP).
type store interface {
	HSetMulti(ctx context.Context, items []db.HashSetItem) error
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	IndexExists(ctx context.Context, name string) (bool, error)
	SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error)
}

// Config holds review index settings.
type Config struct {
	IndexName       string
	KeyPrefix       string
	VectorDim       int
	HNSWM           int
	HNSWEFConstruct int
}

// Repo stores and searches review vectors with their metadata.
type Repo struct {
	store store
	cfg   Config
}

// New creates a review repository.
func New(s store, cfg Config) *Repo {
	return &Repo{store: s, cfg: cfg}
}

// Item is a review plus its embedding, ready for upsert.
type Item struct {
	ID       string
	Vector   []float32
	Metadata domain.ReviewMetadata
}

// EnsureIndex creates the review FT index if it does not exist yet.
func (r *Repo) EnsureIndex(ctx context.Context) error {
	exists, err := r.store.IndexExists(ctx, r.cfg.IndexName)
	if err != nil {
		return fmt.Errorf("check index %s: %w", r.cfg.IndexName, err)
	}
	if exists {
		return nil
	}

	def := db.NewIndex(r.cfg.IndexName).
		Prefix(r.cfg.KeyPrefix).
		Tag(domain.FieldAirline).
		Tag(domain.FieldTravelerType).
		Tag(domain.FieldCabinClass).
		Tag(domain.FieldRoute).
		Numeric(domain.FieldRating).
		Text(domain.FieldReviewText).
		VectorHNSW(vectorField, r.cfg.VectorDim, db.DistanceCosine, r.cfg.HNSWM, r.cfg.HNSWEFConstruct).
		Build()

	if err := r.store.CreateIndex(ctx, def); err != nil && !errors.Is(err, db.ErrIndexExists) {
		return fmt.Errorf("create index %s: %w", r.cfg.IndexName, err)
	}
	return nil
}

// IndexReady reports whether the review index has been created.
func (r *Repo) IndexReady(ctx context.Context) (bool, error) {
	exists, err := r.store.IndexExists(ctx, r.cfg.IndexName)
	if err != nil {
		return false, fmt.Errorf("check index %s: %w", r.cfg.IndexName, err)
	}
	return exists, nil
}

// UpsertBatch writes a batch of reviews in one pipelined round-trip.
func (r *Repo) UpsertBatch(ctx context.Context, items []Item) error {
	if len(items) == 0 {
		return nil
	}

	dbItems := make([]db.HashSetItem, len(items))
	for i, item := range items {
		if len(item.Vector) != r.cfg.VectorDim {
			return fmt.Errorf("review %s: vector dim %d, index expects %d",
				item.ID, len(item.Vector), r.cfg.VectorDim)
		}
		dbItems[i] = db.HashSetItem{
			Key:    r.cfg.KeyPrefix + item.ID,
			Fields: metadataToFields(item.Metadata, item.Vector),
		}
	}

	if err := r.store.HSetMulti(ctx, dbItems); err != nil {
		return fmt.Errorf("upsert %d reviews: %w", len(items), err)
	}
	return nil
}

// Search runs a filtered KNN search and returns scored review records sorted
// by descending similarity.
func (r *Repo) Search(
	ctx context.Context, filter domain.FilterParameters, vector []float32, topK int,
) ([]domain.ReviewRecord, error) {
	q := &db.KNNQuery{
		IndexName: r.cfg.IndexName,
		Filter:    filter,
		Vector:    vector,
		K:         topK,
		ReturnFields: []string{
			domain.FieldAirline,
			domain.FieldTravelerType,
			domain.FieldCabinClass,
			domain.FieldRoute,
			domain.FieldDate,
			domain.FieldRating,
			domain.FieldRowID,
			domain.FieldReviewText,
			vectorScoreField,
		},
	}

	sr, err := r.store.SearchKNN(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", r.cfg.IndexName, err)
	}

	return parseResults(sr, r.cfg.KeyPrefix), nil
}
