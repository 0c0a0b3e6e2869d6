package domain

// Metadata field names as stored in the review index. The indexer writes
// them and the search filter references them.
const (
	FieldAirline      = "airline"
	FieldTravelerType = "traveler_type"
	FieldCabinClass   = "cabin_class"
	FieldRoute        = "route"
	FieldDate         = "date"
	FieldRating       = "rating"
	FieldRowID        = "row_id"
	FieldReviewText   = "review_text"
)

// ReviewMetadata is the structured payload stored alongside each review
// vector.
type ReviewMetadata struct {
	RowID        int
	Airline      string
	Rating       float64
	Date         string
	Route        string
	TravelerType string
	CabinClass   string
	ReviewText   string
}

// ReviewRecord is a single scored hit from the review index. Score is cosine
// similarity in [0,1]. Records are owned by the request that retrieved them
// and are never shared across requests.
type ReviewRecord struct {
	ID       string
	Score    float64
	Metadata ReviewMetadata
}
