package metrics

import "github.com/prometheus/client_golang/prometheus"

// Embedding and LLM Prometheus metrics.
var (
	EmbeddingRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "prism",
			Name:      "embedding_requests_total",
			Help:      "Total number of embedding requests",
		},
		[]string{"model", "status"},
	)

	EmbeddingRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "prism",
			Name:      "embedding_request_duration_seconds",
			Help:      "Embedding request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"model"},
	)

	EmbeddingTokensTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "prism",
			Name:      "embedding_tokens_total",
			Help:      "Total embedding tokens consumed",
		},
		[]string{"model", "type"},
	)

	LLMRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "prism",
			Name:      "llm_requests_total",
			Help:      "Total number of LLM chat completion requests",
		},
		[]string{"model", "task", "status"},
	)

	LLMRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "prism",
			Name:      "llm_request_duration_seconds",
			Help:      "LLM chat completion duration in seconds",
			Buckets:   []float64{0.25, 0.5, 1, 2.5, 5, 10, 20, 40, 60},
		},
		[]string{"model", "task"},
	)

	LLMParseFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "prism",
			Name:      "llm_parse_failures_total",
			Help:      "Structured outputs that failed JSON extraction or validation",
		},
		[]string{"task"},
	)

	LLMFallbacksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "prism",
			Name:      "llm_fallbacks_total",
			Help:      "Structured generations that returned the fallback value",
		},
		[]string{"task"},
	)
)

var genaiMetricsRegistered bool

// RegisterGenAIMetrics registers embedding and LLM metrics. Must be called once from main.
func RegisterGenAIMetrics() {
	if genaiMetricsRegistered {
		return
	}
	prometheus.MustRegister(EmbeddingRequestsTotal)
	prometheus.MustRegister(EmbeddingRequestDuration)
	prometheus.MustRegister(EmbeddingTokensTotal)
	prometheus.MustRegister(LLMRequestsTotal)
	prometheus.MustRegister(LLMRequestDuration)
	prometheus.MustRegister(LLMParseFailuresTotal)
	prometheus.MustRegister(LLMFallbacksTotal)
	genaiMetricsRegistered = true
}
