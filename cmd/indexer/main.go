package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/flight-insight/flightinsight/internal/config"
	dbRedis "github.com/flight-insight/flightinsight/internal/db/redis"
	"github.com/flight-insight/flightinsight/internal/ingest"
	logpkg "github.com/flight-insight/flightinsight/internal/logger"
	"github.com/flight-insight/flightinsight/internal/metrics"
	reviewrepo "github.com/flight-insight/flightinsight/internal/repository/review"
	openaiEmb "github.com/flight-insight/flightinsight/internal/transport/openai"
)

func main() {
	csvPath := flag.String("csv", "data/all_airlines_reviews_cleaned.csv", "path to the scraped reviews CSV")
	batchSize := flag.Int("batch-size", 100, "reviews per embedding/upsert batch")
	flag.Parse()

	_ = godotenv.Load()

	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	f, err := os.Open(*csvPath)
	if err != nil {
		logger.Fatal("Failed to open reviews CSV", zap.String("path", *csvPath), zap.Error(err))
	}
	defer f.Close()

	reviews, err := ingest.ReadReviews(f)
	if err != nil {
		logger.Fatal("Failed to read reviews", zap.String("path", *csvPath), zap.Error(err))
	}
	logger.Info("Loaded reviews", zap.String("path", *csvPath), zap.Int("count", len(reviews)))

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Password: cfg.Database.Password,
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}

	metrics.RegisterEmbeddingMetrics()

	embedder := openaiEmb.NewEmbedder(&openaiEmb.Config{
		APIKey:     cfg.Embedding.APIKey,
		BaseURL:    cfg.Embedding.BaseURL,
		Model:      cfg.Embedding.Model,
		Dimensions: cfg.Embedding.Dimensions,
		Logger:     logger,
	})

	repo := reviewrepo.New(store, reviewrepo.Config{
		IndexName:       cfg.Retrieval.IndexName,
		KeyPrefix:       cfg.Retrieval.KeyPrefix,
		VectorDim:       cfg.Embedding.Dimensions,
		HNSWM:           cfg.Retrieval.HNSWM,
		HNSWEFConstruct: cfg.Retrieval.HNSWEFConstruct,
	})

	indexer := ingest.NewIndexer(repo, embedder, *batchSize, logger)

	stats, err := indexer.Run(ctx, reviews)
	if err != nil {
		logger.Fatal("Indexing run failed", zap.Error(err))
	}

	logger.Info("Indexing completed",
		zap.Int("indexed", stats.Indexed),
		zap.Int("failed_batches", stats.FailedBatches),
	)
}
