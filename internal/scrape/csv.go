package scrape

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// CSVHeader is the column layout of scraped review files. The ingest
// pipeline reads files back by these column names.
var CSVHeader = []string{
	"airline",
	"overall_rating",
	"verification",
	"review_text",
	"Aircraft",
	"Type Of Traveller",
	"Seat Type",
	"Route",
	"Date Flown",
	"Seat Comfort",
	"Cabin Staff Service",
	"Food & Beverages",
	"Inflight Entertainment",
	"Ground Service",
	"Wifi & Connectivity",
	"Value For Money",
	"Recommended",
}

// WriteCSV writes reviews with a header row.
func WriteCSV(w io.Writer, reviews []Review) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, r := range reviews {
		record := []string{
			r.Airline,
			r.OverallRating,
			r.Verification,
			r.ReviewText,
			r.Aircraft,
			r.TravellerType,
			r.SeatType,
			r.Route,
			r.DateFlown,
			strconv.Itoa(r.SeatComfort),
			strconv.Itoa(r.CabinStaffService),
			strconv.Itoa(r.FoodAndBeverages),
			strconv.Itoa(r.InflightEntertain),
			strconv.Itoa(r.GroundService),
			strconv.Itoa(r.WifiAndConnectivity),
			strconv.Itoa(r.ValueForMoney),
			r.Recommended,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
