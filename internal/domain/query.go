package domain

// Param is a structured parameter key the extractor may infer from a query.
type Param string

// Parameters the extraction model is asked for. Airline, traveller type and
// seat type are vocabulary-constrained; route and aspect are free text.
const (
	ParamAirline       Param = "airline"
	ParamTravellerType Param = "traveller_type"
	ParamSeatType      Param = "seat_type"
	ParamRoute         Param = "route"
	ParamAspect        Param = "aspect"
)

// ExtractedParameters holds what the generative model inferred from a query.
// Values are untrusted until validated against the vocabulary: the model may
// emit values outside the supported sets.
type ExtractedParameters map[Param]string

// FilterParameters restricts a vector search to reviews whose metadata
// fields exactly match every entry (AND semantics). Values here have always
// passed vocabulary validation.
type FilterParameters map[string]string
