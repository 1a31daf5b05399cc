package prometheus

import (
	"strconv"
	"time"

	"vendor-service/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	HttpRequestsTotal   prometheus.CounterVec
	HttpRequestDuration prometheus.HistogramVec

	// Authentication metrics
	AuthAttemptsCounter prometheus.Counter
	AuthSuccessCounter  prometheus.Counter
	AuthErrorsCounter   prometheus.Counter

	// Admin gate metrics
	AdminAccessDeniedCounter prometheus.Counter

	// Database operation metrics
	DbOperationDuration prometheus.HistogramVec

	// Vendor metrics
	VendorOperationsCounter prometheus.CounterVec

	// Category specific metrics
	VendorsPerCategoryGauge prometheus.GaugeVec

	// Active vendors in the directory
	ActiveVendorsGauge prometheus.Gauge

	initialized bool
)

// InitMetrics initializes Prometheus metrics with configuration. Repeated
// calls are no-ops so test helpers can initialize freely.
func InitMetrics(config *config.Config) {
	if initialized {
		return
	}
	initialized = true

	// Use metric prefix from configuration
	prefix := config.Metrics.Prefix

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

	// Authentication metrics
	AuthAttemptsCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_auth_attempts_total",
			Help: "Total number of authentication attempts",
		},
	)

	AuthSuccessCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_auth_success_total",
			Help: "Total number of successful authentications",
		},
	)

	AuthErrorsCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_auth_errors_total",
			Help: "Total number of authentication errors",
		},
	)

	// Admin gate metrics
	AdminAccessDeniedCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_admin_access_denied_total",
			Help: "Total number of write requests rejected for missing admin role",
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

	// Vendor metrics
	VendorOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_operations_total",
			Help: "Total number of vendor operations",
		},
		[]string{"operation"},
	)

	// Category specific metrics
	VendorsPerCategoryGauge = *promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: prefix + "_vendors_per_category",
			Help: "Number of active vendors per category",
		},
		[]string{"category"},
	)

	// Active vendors in the directory
	ActiveVendorsGauge = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: prefix + "_active_vendors",
			Help: "Number of active vendors in the directory",
		},
	)
}

// TrackDBOperation returns a function that records the duration of a database operation
func TrackDBOperation(operationType string) func(startTime time.Time) {
	return func(startTime time.Time) {
		duration := time.Since(startTime).Seconds()
		DbOperationDuration.WithLabelValues(operationType).Observe(duration)
	}
}

// RecordVendorOperation increments the counter for vendor operations
func RecordVendorOperation(operation string) {
	VendorOperationsCounter.WithLabelValues(operation).Inc()
}

// UpdateVendorsPerCategory updates the gauge for active vendors in a category
func UpdateVendorsPerCategory(category string, count int) {
	VendorsPerCategoryGauge.WithLabelValues(category).Set(float64(count))
}

// UpdateActiveVendors updates the active vendors gauge
func UpdateActiveVendors(count int64) {
	ActiveVendorsGauge.Set(float64(count))
}

// RecordHTTPRequest updates the request counter and duration histogram
func RecordHTTPRequest(method, path string, status int, duration float64) {
	statusStr := strconv.Itoa(status)
	HttpRequestsTotal.WithLabelValues(method, path, statusStr).Inc()
	HttpRequestDuration.WithLabelValues(method, path, statusStr).Observe(duration)
}
