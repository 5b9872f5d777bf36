package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	ImagesProcessed *prometheus.CounterVec
	GeocodeErrors   prometheus.Counter
	GeocodeSeconds  *prometheus.HistogramVec
	HistoryEntries  prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		ImagesProcessed: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "images_processed_total",
			Help: "Total number of processed images.",
		}, []string{"status"}),
		GeocodeErrors: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "geocoding_provider_api_errors_total",
			Help: "Total number of errors received from the reverse geocoding provider API.",
		}),
		GeocodeSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "geocoding_provider_request_duration_seconds",
			Help:    "Duration of requests to the reverse geocoding provider API.",
			Buckets: prometheus.DefBuckets,
		}, []string{"provider"}),
		HistoryEntries: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "history_entries",
			Help: "Current number of records in the processed-image history.",
		}),
	}
}
