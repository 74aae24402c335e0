package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	syncRunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_sync_runs_total",
			Help: "Total number of catalog sync runs.",
		},
		[]string{"status"},
	)
	syncDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "catalog_sync_duration_seconds",
			Help:    "Histogram of catalog sync run durations.",
			Buckets: []float64{1, 5, 15, 30, 60, 120, 300},
		},
	)
	entriesPublished = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_entries_published",
			Help: "Number of catalog entries in the last successful publish.",
		},
	)
	recordsDroppedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_records_dropped_total",
			Help: "Raw provider records dropped during normalization.",
		},
		[]string{"reason"},
	)
)

func init() {
	prometheus.MustRegister(syncRunsTotal)
	prometheus.MustRegister(syncDuration)
	prometheus.MustRegister(entriesPublished)
	prometheus.MustRegister(recordsDroppedTotal)
}

// RecordRun записывает исход прогона конвейера.
func RecordRun(status string, duration time.Duration) {
	syncRunsTotal.WithLabelValues(status).Inc()
	syncDuration.Observe(duration.Seconds())
}

func RecordPublished(count int) {
	entriesPublished.Set(float64(count))
}

func RecordDropped(reason string, count int) {
	recordsDroppedTotal.WithLabelValues(reason).Add(float64(count))
}

// MetricsHandler возвращает HTTP-обработчик для экспорта метрик Prometheus.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
