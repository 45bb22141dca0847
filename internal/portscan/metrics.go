package portscan

import "github.com/prometheus/client_golang/prometheus"

// Prometheus portscan metrics.
var (
	portProbesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "lanscope_portscan_probes_total",
		Help: "Total number of port probes, by resulting state.",
	}, []string{"state"})
	scanDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "lanscope_portscan_duration_seconds",
		Help:    "Duration of full port scan runs in seconds.",
		Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
	})
)

func init() {
	prometheus.MustRegister(portProbesTotal)
	prometheus.MustRegister(scanDuration)
}
