package fallback

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var fallbackServedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "innervoice_client",
		Name:      "fallback_responses_total",
		Help:      "Canned responses served while the backend was unreachable or disabled.",
	},
	[]string{"persona"},
)
