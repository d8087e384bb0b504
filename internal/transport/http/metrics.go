package http

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "entropyx_http_requests_total",
		Help: "HTTP requests served, by method and status code.",
	}, []string{"method", "status"})

	reportLoads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "entropyx_report_loads_total",
		Help: "Statistics report loads from disk, by axis and outcome.",
	}, []string{"axis", "outcome"})
)
