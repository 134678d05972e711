package monitoring

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	// EnrichmentResults counts document analyses by outcome:
	// summary, no_credential, failed, empty.
	EnrichmentResults = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "enrichment_results_total",
			Help: "Document enrichment calls by outcome",
		},
		[]string{"outcome"},
	)

	EnrichmentDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "enrichment_duration_seconds",
			Help:    "Duration of remote document analysis calls",
			Buckets: []float64{0.5, 1, 2, 5, 10, 30},
		},
	)

	ActivityMutations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "activity_mutations_total",
			Help: "Practice and seminar mutations by kind and action",
		},
		[]string{"kind", "action"},
	)

	RejectedProofs = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "activity_rejected_proofs_total",
			Help: "Submissions rejected because of the attached proof",
		},
	)
)

var registerOnce sync.Once

func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(RequestCounter)
		prometheus.MustRegister(RequestDuration)
		prometheus.MustRegister(EnrichmentResults)
		prometheus.MustRegister(EnrichmentDuration)
		prometheus.MustRegister(ActivityMutations)
		prometheus.MustRegister(RejectedProofs)
	})
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()

		RequestCounter.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			strconv.Itoa(status),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
		).Observe(duration)
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
