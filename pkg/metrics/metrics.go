package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP 请求延迟（秒）
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)

	// 数据库查询延迟（秒）
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"operation", "table"},
	)

	// Gemini 调用延迟（毫秒）
	GeminiCallLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gemini_call_latency_ms",
			Help:    "Gemini API call latency in milliseconds",
			Buckets: prometheus.ExponentialBuckets(100, 2, 10), // 100ms to ~100s
		},
		[]string{"endpoint", "status"},
	)

	// 叙述降级计数
	NarrativeFallbackCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "narrative_fallback_count",
			Help: "Total number of AI narratives served from the template fallback",
		},
		[]string{"panel"}, // panel: summary, dashboard, chat
	)

	// 缓存命中计数
	CacheRequestCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "insight_cache_request_count",
			Help: "Insight cache lookups by outcome",
		},
		[]string{"key", "outcome"}, // outcome: hit, miss, error
	)
)

// RecordHTTPRequestDuration 记录 HTTP 请求延迟
func RecordHTTPRequestDuration(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// RecordDBQueryDuration 记录数据库查询延迟
func RecordDBQueryDuration(operation, table string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
}

// RecordGeminiCallLatency 记录 Gemini 调用延迟
func RecordGeminiCallLatency(endpoint, status string, duration time.Duration) {
	GeminiCallLatency.WithLabelValues(endpoint, status).Observe(float64(duration.Milliseconds()))
}

// IncrementNarrativeFallback 增加降级计数
func IncrementNarrativeFallback(panel string) {
	NarrativeFallbackCount.WithLabelValues(panel).Inc()
}

// IncrementCacheRequest 增加缓存查询计数
func IncrementCacheRequest(key, outcome string) {
	CacheRequestCount.WithLabelValues(key, outcome).Inc()
}
