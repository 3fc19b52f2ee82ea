// Package monitoring provides Prometheus metrics, OpenTelemetry tracing and
// recording helpers for the MPIJob sync hook.
//
// All metrics follow the naming convention mpi_operator_<metric>_<unit> and
// are registered against controller-runtime's default Prometheus registry on
// import, which is what the hook server exposes on /metrics.
//
// Usage in the sync handler:
//
//	ctx, span := monitoring.StartSyncSpan(ctx, job.Name, job.Namespace)
//	defer span.End()
//	...
//	monitoring.SetJobWorkerReplicas(base, job.Namespace, desired, current, ready)
//	monitoring.RecordSyncRequest(err, time.Since(start))
package monitoring
