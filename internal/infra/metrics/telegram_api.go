package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func init() {
	register(
		telegramAPICallsTotal,
		telegramAPILatencyMs,
	)
}

var (
	telegramAPICallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "telegram_api_calls_total",
			Help: "Bot API calls by method and outcome.",
		},
		[]string{"method", "success"},
	)

	telegramAPILatencyMs = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "telegram_api_latency_ms",
			Help:    "Bot API call latency distribution in milliseconds.",
			Buckets: []float64{10, 25, 50, 100, 200, 400, 800, 1600, 3000, 5000},
		},
		[]string{"method"},
	)
)

// ObserveTelegramCall records one Bot API round trip.
func ObserveTelegramCall(method string, started time.Time, err error) {
	telegramAPICallsTotal.WithLabelValues(norm(method), strconv.FormatBool(err == nil)).Inc()
	telegramAPILatencyMs.WithLabelValues(norm(method)).Observe(float64(time.Since(started).Milliseconds()))
}
