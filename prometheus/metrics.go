package prometheus

import (
	"time"

	"trainer-api/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	HttpRequestsTotal   prometheus.CounterVec
	HttpRequestDuration prometheus.HistogramVec

	// QR scan metrics, labelled by outcome
	QRScansCounter prometheus.CounterVec

	// Product activation metrics
	ActivationsCounter prometheus.Counter

	// Support request metrics
	SupportRequestsCounter prometheus.Counter

	// Database operation metrics
	DbOperationDuration prometheus.HistogramVec
)

// Scan outcome label values.
const (
	ScanActivated     = "activated"
	ScanAlreadyActive = "already_active"
	ScanNotFound      = "not_found"
)

// InitMetrics initializes Prometheus metrics with configuration
func InitMetrics(cfg *config.Config) {
	// Use metric prefix from configuration
	prefix := cfg.Metrics.Prefix

	// HTTP request metrics
	HttpRequestsTotal = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTP request duration
	HttpRequestDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// QR scan metrics
	QRScansCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_qr_scans_total",
			Help: "Total number of QR scan attempts by outcome",
		},
		[]string{"result"},
	)

	// Product activation metrics
	ActivationsCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_product_activations_total",
			Help: "Total number of new product activations",
		},
	)

	// Support request metrics
	SupportRequestsCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_support_requests_total",
			Help: "Total number of support requests created",
		},
	)

	// Database operation metrics
	DbOperationDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_db_operation_duration_seconds",
			Help:    "Duration of database operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation_type"},
	)
}

// TrackDBOperation returns a function that records the duration of a database operation
func TrackDBOperation(operationType string) func(startTime time.Time) {
	return func(startTime time.Time) {
		duration := time.Since(startTime).Seconds()
		DbOperationDuration.WithLabelValues(operationType).Observe(duration)
	}
}

// RecordScan increments the QR scan counter for the given outcome
func RecordScan(result string) {
	QRScansCounter.WithLabelValues(result).Inc()
}
