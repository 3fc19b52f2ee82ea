package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"sigs.k8s.io/controller-runtime/pkg/metrics"
)

// Sync hook metric collectors.
var (
	syncRequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mpi_operator_sync_request_total",
			Help: "Total number of sync hook requests.",
		},
		[]string{"result"},
	)

	syncRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mpi_operator_sync_request_duration_seconds",
			Help:    "Latency of sync hook handling in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"result"},
	)

	jobInfo = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "mpi_operator_job_info",
			Help: "Info-style metric for MPIJob discovery and launcher state tracking. Always 1.",
		},
		[]string{"name", "namespace", "state"},
	)

	jobWorkerReplicas = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "mpi_operator_job_worker_replicas",
			Help: "Worker replica counts for an MPIJob.",
		},
		[]string{"name", "namespace", "state"},
	)
)

func init() {
	metrics.Registry.MustRegister(Collectors()...)
}

// Collectors returns all registered metric collectors.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		syncRequestTotal,
		syncRequestDuration,
		jobInfo,
		jobWorkerReplicas,
	}
}
