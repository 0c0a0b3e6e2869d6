package retrieval

import "github.com/flight-insight/flightinsight/internal/domain"

// filterField maps an extracted parameter onto an indexed metadata field.
// Only enabled fields contribute to the search filter; traveller type and
// seat type are indexed but kept out of filtering until the corpus carries
// enough reviews per combination for filtered recall to stay useful.
type filterField struct {
	param   domain.Param
	field   string
	enabled bool
}

var filterFields = []filterField{
	{param: domain.ParamAirline, field: domain.FieldAirline, enabled: true},
	{param: domain.ParamTravellerType, field: domain.FieldTravelerType, enabled: false},
	{param: domain.ParamSeatType, field: domain.FieldCabinClass, enabled: false},
}

// BuildFilter validates extracted parameters against the vocabulary and
// returns exact-match filter parameters for the enabled fields. Values
// outside the vocabulary are dropped silently.
func BuildFilter(extracted domain.ExtractedParameters, vocab *domain.Vocabulary) domain.FilterParameters {
	filter := domain.FilterParameters{}

	for _, ff := range filterFields {
		if !ff.enabled {
			continue
		}
		value, ok := extracted[ff.param]
		if !ok {
			continue
		}
		if !vocab.Allows(ff.param, value) {
			continue
		}
		filter[ff.field] = value
	}

	return filter
}
