package monitoring

import "time"

const (
	resultSuccess = "success"
	resultError   = "error"
)

// RecordSyncRequest records a sync request's result and duration.
func RecordSyncRequest(err error, duration time.Duration) {
	result := resultSuccess
	if err != nil {
		result = resultError
	}
	syncRequestTotal.WithLabelValues(result).Inc()
	syncRequestDuration.WithLabelValues(result).Observe(duration.Seconds())
}

// SetJobInfo sets the info-style gauge for an MPIJob. The previous state
// label is removed via DeletePartialMatch. An empty state is reported as
// "Pending".
func SetJobInfo(name, namespace, state string) {
	if state == "" {
		state = "Pending"
	}
	jobInfo.DeletePartialMatch(map[string]string{
		"name":      name,
		"namespace": namespace,
	})
	jobInfo.WithLabelValues(name, namespace, state).Set(1)
}

// SetJobWorkerReplicas sets the desired, current and ready worker gauges.
func SetJobWorkerReplicas(name, namespace string, desired, current, ready int32) {
	jobWorkerReplicas.WithLabelValues(name, namespace, "desired").Set(float64(desired))
	jobWorkerReplicas.WithLabelValues(name, namespace, "current").Set(float64(current))
	jobWorkerReplicas.WithLabelValues(name, namespace, "ready").Set(float64(ready))
}
