package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

func init() {
	register(
		webhookRequestsTotal,
		webhookUpdatesTotal,
		dispatchRoutesTotal,
		deliveryFailuresTotal,
	)
}

var (
	webhookRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "webhook_requests_total",
			Help: "Webhook HTTP requests by response status.",
		},
		[]string{"status"},
	)

	webhookUpdatesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "webhook_updates_total",
			Help: "Accepted updates by event kind.",
		},
		[]string{"kind"},
	)

	dispatchRoutesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dispatch_routes_total",
			Help: "Replies produced per dispatch table route.",
		},
		[]string{"route"},
	)

	deliveryFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "delivery_failures_total",
			Help: "Replies that could not be delivered, by delivery mode.",
		},
		[]string{"delivery"},
	)
)

func IncWebhookRequest(status int) {
	webhookRequestsTotal.WithLabelValues(strconv.Itoa(status)).Inc()
}

func IncUpdate(kind string) {
	webhookUpdatesTotal.WithLabelValues(norm(kind)).Inc()
}

func IncRoute(route string) {
	dispatchRoutesTotal.WithLabelValues(norm(route)).Inc()
}

func IncDeliveryFailure(delivery string) {
	deliveryFailuresTotal.WithLabelValues(norm(delivery)).Inc()
}
