package client

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "innervoice_client",
			Name:      "requests_total",
			Help:      "Backend calls by operation and outcome.",
		},
		[]string{"operation", "outcome"},
	)

	tokenRefreshesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "innervoice_client",
			Name:      "token_refreshes_total",
			Help:      "Single-flight token refresh attempts by outcome.",
		},
		[]string{"outcome"},
	)
)

// observe records one operation outcome and returns err unchanged so call
// sites can stay single-line.
func observe(operation string, err error) error {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	requestsTotal.WithLabelValues(operation, outcome).Inc()
	return err
}
