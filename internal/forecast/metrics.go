package forecast

import "github.com/prometheus/client_golang/prometheus"

// Outcome label values for forecastsTotal.
const (
	outcomeOK         = "ok"
	outcomeNotFound   = "not_found"
	outcomeBadHorizon = "bad_horizon"
	outcomeModelError = "model_error"
	outcomeCanceled   = "canceled"
)

var (
	forecastsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "aqicast",
			Subsystem: "forecast",
			Name:      "requests_total",
			Help:      "Forecast requests by outcome",
		},
		[]string{"outcome"},
	)

	modelLoadDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "aqicast",
			Subsystem: "forecast",
			Name:      "model_load_duration_seconds",
			Help:      "Time spent decoding a model artifact",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12),
		},
	)

	horizonDays = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "aqicast",
			Subsystem: "forecast",
			Name:      "horizon_days",
			Help:      "Requested forecast horizons",
			Buckets:   []float64{1, 3, 7, 14, 30, 60},
		},
	)
)

func init() {
	prometheus.MustRegister(forecastsTotal, modelLoadDuration, horizonDays)
}
