package review

import (
	"encoding/binary"
	"math"
	"strconv"
	"strings"

	"github.com/flight-insight/flightinsight/internal/db"
	"github.com/flight-insight/flightinsight/internal/domain"
)

const (
	vectorField      = "__vector"
	vectorScoreField = "__vector_score"
)

// metadataToFields flattens a review into hash fields for storage.
func metadataToFields(m domain.ReviewMetadata, vector []float32) map[string]string {
	return map[string]string{
		domain.FieldRowID:        strconv.Itoa(m.RowID),
		domain.FieldAirline:      m.Airline,
		domain.FieldRating:       strconv.FormatFloat(m.Rating, 'f', -1, 64),
		domain.FieldDate:         m.Date,
		domain.FieldRoute:        m.Route,
		domain.FieldTravelerType: m.TravelerType,
		domain.FieldCabinClass:   m.CabinClass,
		domain.FieldReviewText:   m.ReviewText,
		vectorField:              vectorToBytes(vector),
	}
}

// parseResults converts raw search entries into domain review records.
func parseResults(sr *db.SearchResult, keyPrefix string) []domain.ReviewRecord {
	if sr == nil || len(sr.Entries) == 0 {
		return nil
	}

	records := make([]domain.ReviewRecord, 0, len(sr.Entries))
	for _, entry := range sr.Entries {
		records = append(records, domain.ReviewRecord{
			ID:       strings.TrimPrefix(entry.Key, keyPrefix),
			Score:    entry.Score,
			Metadata: fieldsToMetadata(entry.Fields),
		})
	}
	return records
}

func fieldsToMetadata(fields map[string]string) domain.ReviewMetadata {
	m := domain.ReviewMetadata{
		Airline:      fields[domain.FieldAirline],
		Date:         fields[domain.FieldDate],
		Route:        fields[domain.FieldRoute],
		TravelerType: fields[domain.FieldTravelerType],
		CabinClass:   fields[domain.FieldCabinClass],
		ReviewText:   fields[domain.FieldReviewText],
	}
	if v, err := strconv.Atoi(fields[domain.FieldRowID]); err == nil {
		m.RowID = v
	}
	if v, err := strconv.ParseFloat(fields[domain.FieldRating], 64); err == nil {
		m.Rating = v
	}
	return m
}

// vectorToBytes serializes []float32 to a binary string (4 bytes per float, little-endian).
func vectorToBytes(v []float32) string {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return string(buf)
}
