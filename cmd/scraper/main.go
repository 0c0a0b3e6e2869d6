package main

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	logpkg "github.com/flight-insight/flightinsight/internal/logger"
	"github.com/flight-insight/flightinsight/internal/scrape"
)

func main() {
	outDir := flag.String("out", "data", "directory for scraped review CSVs")
	maxPages := flag.Int("pages", 5, "listing pages to scrape per airline")
	pageDelay := flag.Duration("page-delay", 2*time.Second, "delay between page fetches")
	airlineDelay := flag.Duration("airline-delay", 5*time.Second, "delay between airlines")
	flag.Parse()

	logger, err := logpkg.NewLogger("local")
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		logger.Fatal("Failed to create output directory", zap.String("dir", *outDir), zap.Error(err))
	}

	scraper := scrape.New(nil, *pageDelay, logger)
	ctx := context.Background()

	for i, src := range scrape.DefaultSources {
		logger.Info("Scraping airline", zap.String("airline", src.Airline))

		reviews, err := scraper.ScrapeAirline(ctx, src, *maxPages)
		if err != nil {
			logger.Warn("Scrape ended early",
				zap.String("airline", src.Airline),
				zap.Int("collected", len(reviews)),
				zap.Error(err))
		}
		if len(reviews) == 0 {
			continue
		}

		path := filepath.Join(*outDir, csvName(src.Airline))
		if err := writeReviews(path, reviews); err != nil {
			logger.Error("Failed to write CSV", zap.String("path", path), zap.Error(err))
			continue
		}
		logger.Info("Saved reviews",
			zap.String("airline", src.Airline),
			zap.String("path", path),
			zap.Int("count", len(reviews)))

		if i < len(scrape.DefaultSources)-1 {
			time.Sleep(*airlineDelay)
		}
	}

	logger.Info("Scraping completed")
}

func csvName(airline string) string {
	return strings.ReplaceAll(airline, " ", "_") + "_reviews.csv"
}

func writeReviews(path string, reviews []scrape.Review) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return scrape.WriteCSV(f, reviews)
}
