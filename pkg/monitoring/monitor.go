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

	// 测验生成结果：generated 为模型生成，placeholder 为降级占位题
	QuizGenerationCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quiz_generation_total",
			Help: "Generated quizzes by outcome",
		},
		[]string{"outcome"},
	)

	TranscriptFetchCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "transcript_fetch_total",
			Help: "Transcript lookups by outcome",
		},
		[]string{"outcome"},
	)

	QuizSubmissionCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quiz_submissions_total",
			Help: "Graded quiz and assessment submissions",
		},
		[]string{"kind", "passed"},
	)

	HeatmapBuildDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "heatmap_build_duration_seconds",
			Help:    "Time spent aggregating the activity heatmap",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2},
		},
	)
)

var registerOnce sync.Once

func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(RequestCounter)
		prometheus.MustRegister(RequestDuration)
		prometheus.MustRegister(QuizGenerationCounter)
		prometheus.MustRegister(TranscriptFetchCounter)
		prometheus.MustRegister(QuizSubmissionCounter)
		prometheus.MustRegister(HeatmapBuildDuration)
	})
}

func ObserveSubmission(kind string, passed bool) {
	QuizSubmissionCounter.WithLabelValues(kind, strconv.FormatBool(passed)).Inc()
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
