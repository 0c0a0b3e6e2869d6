package domain

// Vocabulary holds the fixed supported-value sets used both to instruct the
// extraction model and to validate its output. Built once at startup, never
// mutated, safe for concurrent reads.
type Vocabulary struct {
	airlines       []string
	travellerTypes []string
	seatTypes      []string
	sets           map[Param]map[string]struct{}
}

// NewVocabulary builds an immutable vocabulary from the configured sets.
func NewVocabulary(airlines, travellerTypes, seatTypes []string) *Vocabulary {
	v := &Vocabulary{
		airlines:       append([]string(nil), airlines...),
		travellerTypes: append([]string(nil), travellerTypes...),
		seatTypes:      append([]string(nil), seatTypes...),
	}
	v.sets = map[Param]map[string]struct{}{
		ParamAirline:       toSet(v.airlines),
		ParamTravellerType: toSet(v.travellerTypes),
		ParamSeatType:      toSet(v.seatTypes),
	}
	return v
}

// Allows reports whether value is a member of the supported set for param.
// Params without a vocabulary (route, aspect) are never allowed into a
// filter through this check.
func (v *Vocabulary) Allows(param Param, value string) bool {
	set, ok := v.sets[param]
	if !ok {
		return false
	}
	_, ok = set[value]
	return ok
}

// Airlines returns a copy of the supported airline list in declaration order.
func (v *Vocabulary) Airlines() []string {
	return append([]string(nil), v.airlines...)
}

// TravellerTypes returns a copy of the supported traveller type list.
func (v *Vocabulary) TravellerTypes() []string {
	return append([]string(nil), v.travellerTypes...)
}

// SeatTypes returns a copy of the supported seat type list.
func (v *Vocabulary) SeatTypes() []string {
	return append([]string(nil), v.seatTypes...)
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
