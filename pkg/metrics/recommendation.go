package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Latency of a full recommendation call, storage fetch included
	RecommendLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "recommendation_latency_seconds",
		Help:    "Latency of recommendation calls by type",
		Buckets: prometheus.DefBuckets,
	}, []string{"type"})

	RecommendRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "recommendation_requests_total",
		Help: "Total number of recommendation calls by type",
	}, []string{"type"})

	// Number of products returned, summed over calls
	RecommendResults = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "recommendation_results_total",
		Help: "Total number of recommended products returned by type",
	}, []string{"type"})
)

func Init() {
	prometheus.MustRegister(
		RecommendLatency,
		RecommendRequests,
		RecommendResults,
	)
}
