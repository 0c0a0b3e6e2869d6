package db

// KNNQuery is the input for vector similarity search. Filter is an AND of
// exact-match tag constraints over metadata fields.
type KNNQuery struct {
	IndexName    string
	Filter       map[string]string
	Vector       []float32
	K            int
	ReturnFields []string
}

// SearchResult is the output of a search operation.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// SearchEntry is a single document hit from a search. Score is cosine
// similarity in [0,1], converted from the raw vector distance.
type SearchEntry struct {
	Key    string
	Score  float64
	Fields map[string]string
}
