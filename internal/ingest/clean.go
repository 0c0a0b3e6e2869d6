package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/flight-insight/flightinsight/internal/domain"
)

const notSpecified = "Not specified"

// ratingMissing marks rows whose overall rating could not be parsed; they
// get the corpus mean in a second pass.
const ratingMissing = -1

// CleanReview is a scraped review after cleaning, ready for embedding.
type CleanReview struct {
	RowID    int
	Metadata domain.ReviewMetadata
}

// ReadReviews reads a scraped review CSV and applies the cleaning rules:
// rows without an airline or review text are dropped, missing categorical
// values become "Not specified", unparseable ratings get the corpus mean,
// and flight dates are normalized to YYYY-MM-DD.
func ReadReviews(r io.Reader) ([]CleanReview, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[name] = i
	}
	for _, required := range []string{"airline", "review_text"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("missing required column %q", required)
		}
	}

	field := func(record []string, name string) string {
		idx, ok := col[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	var reviews []CleanReview
	rowID := 0
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}

		airline := field(record, "airline")
		text := field(record, "review_text")
		if airline == "" || text == "" {
			continue
		}

		rating := ratingMissing
		if v, err := strconv.ParseFloat(field(record, "overall_rating"), 64); err == nil {
			rating = int(v)
		}

		reviews = append(reviews, CleanReview{
			RowID: rowID,
			Metadata: domain.ReviewMetadata{
				RowID:        rowID,
				Airline:      airline,
				Rating:       float64(rating),
				Date:         normalizeDate(field(record, "Date Flown")),
				Route:        orNotSpecified(field(record, "Route")),
				TravelerType: orNotSpecified(field(record, "Type Of Traveller")),
				CabinClass:   orNotSpecified(field(record, "Seat Type")),
				ReviewText:   text,
			},
		})
		rowID++
	}

	fillMissingRatings(reviews)
	return reviews, nil
}

// fillMissingRatings replaces unparseable ratings with the mean of the
// parseable ones.
func fillMissingRatings(reviews []CleanReview) {
	var sum float64
	var n int
	for _, r := range reviews {
		if r.Metadata.Rating != ratingMissing {
			sum += r.Metadata.Rating
			n++
		}
	}
	if n == 0 {
		for i := range reviews {
			reviews[i].Metadata.Rating = 0
		}
		return
	}

	mean := sum / float64(n)
	for i := range reviews {
		if reviews[i].Metadata.Rating == ratingMissing {
			reviews[i].Metadata.Rating = mean
		}
	}
}

func orNotSpecified(v string) string {
	if v == "" {
		return notSpecified
	}
	return v
}

// normalizeDate converts the site's "January 2006" flight dates to
// YYYY-MM-DD. Unparseable dates come back empty.
func normalizeDate(v string) string {
	if v == "" {
		return ""
	}
	t, err := time.Parse("January 2006", v)
	if err != nil {
		return ""
	}
	return t.Format("2006-01-02")
}
