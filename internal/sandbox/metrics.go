package sandbox

import "github.com/prometheus/client_golang/prometheus"

// Prometheus sandbox metrics.
var requestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
	Name: "lanscope_sandbox_requests_total",
	Help: "Total number of command requests, by result.",
}, []string{"result"})

func init() {
	prometheus.MustRegister(requestsTotal)
}
