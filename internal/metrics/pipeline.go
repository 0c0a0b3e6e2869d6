package metrics

import "github.com/prometheus/client_golang/prometheus"

// Retrieval pipeline Prometheus metrics.
var (
	ExtractionRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "flightinsight",
			Name:      "extraction_requests_total",
			Help:      "Query parameter extraction calls by outcome",
		},
		[]string{"outcome"}, // ok, parse_error, api_error
	)

	VectorSearchTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "flightinsight",
			Name:      "vector_search_total",
			Help:      "Review vector searches by status",
		},
		[]string{"status"}, // success, error, skipped
	)

	GenerationStreamsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "flightinsight",
			Name:      "generation_streams_total",
			Help:      "Streamed answer generations by outcome",
		},
		[]string{"outcome"}, // completed, failed, aborted
	)

	RetrievedReviews = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "flightinsight",
			Name:      "retrieved_reviews_per_query",
			Help:      "Number of reviews retrieved per answered query",
			Buckets:   []float64{0, 1, 2, 5, 10, 20},
		},
	)
)

// RegisterPipelineMetrics registers retrieval pipeline metrics with the
// default registry.
func RegisterPipelineMetrics() {
	prometheus.MustRegister(
		ExtractionRequestsTotal,
		VectorSearchTotal,
		GenerationStreamsTotal,
		RetrievedReviews,
	)
}
