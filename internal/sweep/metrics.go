package sweep

import "github.com/prometheus/client_golang/prometheus"

// Prometheus sweep metrics.
var (
	hostsProbedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "lanscope_sweep_hosts_probed_total",
		Help: "Total number of host liveness probes launched.",
	})
	hostsOnlineTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "lanscope_sweep_hosts_online_total",
		Help: "Total number of hosts found online, by probe method.",
	}, []string{"method"})
	sweepDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "lanscope_sweep_duration_seconds",
		Help:    "Duration of full discovery sweeps in seconds.",
		Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
	})
)

func init() {
	prometheus.MustRegister(hostsProbedTotal)
	prometheus.MustRegister(hostsOnlineTotal)
	prometheus.MustRegister(sweepDuration)
}
