package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"UsageCast/internal/domain/models"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	rowsLoaded  *prometheus.CounterVec
	rowsSkipped *prometheus.CounterVec
	forecasts   *prometheus.CounterVec
	evaluation  *prometheus.GaugeVec
	latency     *prometheus.HistogramVec
}

// New creates a Prometheus recorder registered on reg.
func New(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)
	return &Recorder{
		rowsLoaded: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "usagecast_rows_loaded_total",
				Help: "Total number of data rows parsed into observations",
			},
			[]string{"mode"},
		),
		rowsSkipped: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "usagecast_rows_skipped_total",
				Help: "Total number of data rows dropped by the lenient loader",
			},
			[]string{"mode"},
		),
		forecasts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "usagecast_forecasts_total",
				Help: "Total number of forecast runs by backend and outcome",
			},
			[]string{"backend", "outcome"},
		),
		evaluation: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "usagecast_last_evaluation",
				Help: "Most recent evaluation metric value per predictor",
			},
			[]string{"predictor", "metric"},
		),
		latency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "usagecast_operation_duration_seconds",
				Help:    "Duration of pipeline operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

func (r *Recorder) RecordRowsLoaded(mode string, n int) {
	r.rowsLoaded.WithLabelValues(mode).Add(float64(n))
}

func (r *Recorder) RecordRowsSkipped(mode string, n int) {
	r.rowsSkipped.WithLabelValues(mode).Add(float64(n))
}

func (r *Recorder) RecordForecast(backend, outcome string) {
	r.forecasts.WithLabelValues(backend, outcome).Inc()
}

func (r *Recorder) RecordEvaluation(predictor string, m models.ErrorMetrics) {
	r.evaluation.WithLabelValues(predictor, "mae").Set(m.MAE)
	r.evaluation.WithLabelValues(predictor, "rmse").Set(m.RMSE)
	r.evaluation.WithLabelValues(predictor, "mape").Set(m.MAPE)
}

func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
