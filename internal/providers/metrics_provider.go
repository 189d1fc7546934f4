package providers

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"time"
	"tracespace/internal/structures"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	IncSnapshotsWritten(source string)
	ObserveCycleDuration(duration time.Duration)
	ObserveMigrationDuration(duration time.Duration)
	AddMigratedBuckets(count int)
	SetTierBytes(tier string, bytes int64)
}

type MetricsProvider struct {
	requestsTotal     *prometheus.CounterVec
	requestDuration   *prometheus.HistogramVec
	cacheHits         prometheus.Counter
	cacheMisses       prometheus.Counter
	snapshotsWritten  *prometheus.CounterVec
	cycleDuration     prometheus.Histogram
	migrationDuration prometheus.Histogram
	migratedBuckets   prometheus.Counter
	tierBytes         *prometheus.GaugeVec
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) IncSnapshotsWritten(source string) {
	m.snapshotsWritten.WithLabelValues(source).Inc()
}

func (m *MetricsProvider) ObserveCycleDuration(duration time.Duration) {
	m.cycleDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) ObserveMigrationDuration(duration time.Duration) {
	m.migrationDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) AddMigratedBuckets(count int) {
	m.migratedBuckets.Add(float64(count))
}

func (m *MetricsProvider) SetTierBytes(tier string, bytes int64) {
	m.tierBytes.WithLabelValues(tier).Set(float64(bytes))
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	return &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "tracespace_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "tracespace_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tracespace_cache_hits_total",
			Help: "Total number of cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tracespace_cache_misses_total",
			Help: "Total number of cache misses",
		}),

		snapshotsWritten: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "tracespace_snapshots_written_total",
			Help: "Total number of snapshots written to the hot tier",
		}, []string{"source"}),

		cycleDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "tracespace_cycle_duration_seconds",
			Help:    "Duration of refresh cycles in seconds",
			Buckets: prometheus.DefBuckets,
		}),

		migrationDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "tracespace_migration_duration_seconds",
			Help:    "Duration of tier migration runs in seconds",
			Buckets: prometheus.DefBuckets,
		}),

		migratedBuckets: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tracespace_migrated_buckets_total",
			Help: "Total number of day buckets migrated to the warm tier",
		}),

		tierBytes: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "tracespace_tier_bytes",
			Help: "Bytes stored per retention tier",
		}, []string{"tier"}),
	}
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncCacheHits()                                    {}
func (n *noopMetrics) IncCacheMisses()                                  {}
func (n *noopMetrics) IncSnapshotsWritten(_ string)                     {}
func (n *noopMetrics) ObserveCycleDuration(_ time.Duration)             {}
func (n *noopMetrics) ObserveMigrationDuration(_ time.Duration)         {}
func (n *noopMetrics) AddMigratedBuckets(_ int)                         {}
func (n *noopMetrics) SetTierBytes(_ string, _ int64)                   {}
