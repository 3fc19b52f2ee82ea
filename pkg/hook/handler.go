package hook

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sigs.k8s.io/controller-runtime/pkg/log"

	mpiv1alpha1 "github.com/numtide/mpi-operator/api/v1alpha1"
	"github.com/numtide/mpi-operator/pkg/document"
	"github.com/numtide/mpi-operator/pkg/monitoring"
	"github.com/numtide/mpi-operator/pkg/names"
	"github.com/numtide/mpi-operator/pkg/resource-handler/controller/mpijob"
	"github.com/numtide/mpi-operator/pkg/util/status"
)

// ErrMissingParent is returned for a sync request without a parent.
var ErrMissingParent = errors.New("sync request has no parent")

// SyncResponse is the body returned to the control loop.
type SyncResponse struct {
	// Status replaces the status of the parent MPIJob.
	Status mpiv1alpha1.MPIJobStatus `json:"status"`

	// Children is the full desired set of children, always
	// mpijob.ChildCount of them.
	Children []*document.Object `json:"children"`
}

// Handler computes sync responses.
type Handler struct {
	Names   *names.Resolver
	Builder *mpijob.Builder
}

// NewHandler creates a Handler that renders children with builder and names
// unnamed MPIJobs with random UUIDs.
func NewHandler(builder *mpijob.Builder) *Handler {
	return &Handler{
		Names:   names.NewResolver(),
		Builder: builder,
	}
}

// Sync computes the status and desired children for one sync request. It
// either returns all children or an error, never a partial set.
func (h *Handler) Sync(ctx context.Context, req *mpiv1alpha1.SyncRequest) (resp *SyncResponse, err error) {
	start := time.Now()
	defer func() {
		monitoring.RecordSyncRequest(err, time.Since(start))
	}()

	if req == nil || req.Parent == nil {
		return nil, ErrMissingParent
	}
	job := req.Parent

	ctx, span := monitoring.StartSyncSpan(ctx, job.Name, job.Namespace)
	defer span.End()
	defer func() {
		monitoring.RecordSpanError(span, err)
	}()

	logger := monitoring.EnrichLogger(ctx, log.FromContext(ctx)).
		WithValues("mpijob", job.Name, "namespace", job.Namespace)
	ctx = log.IntoContext(ctx, logger)
	logger.V(1).Info("Sync request", "spec", job.Spec, "observed", observedCounts(req.Children))

	if err := mpijob.Validate(job); err != nil {
		return nil, err
	}

	aggCtx, aggSpan := monitoring.StartChildSpan(ctx, "AggregateStatus")
	agg, err := status.Aggregate(aggCtx, req.Children)
	monitoring.RecordSpanError(aggSpan, err)
	aggSpan.End()
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate status: %w", err)
	}

	n := h.Names.Resolve(job.Name, agg.Observed)

	_, buildSpan := monitoring.StartChildSpan(ctx, "BuildChildren")
	children, err := h.Builder.BuildChildren(job, n)
	monitoring.RecordSpanError(buildSpan, err)
	buildSpan.End()
	if err != nil {
		return nil, fmt.Errorf("failed to build children: %w", err)
	}

	// Per-job series are keyed on the parent. An unnamed parent gets a fresh
	// base name until its workers are observed and is not recorded.
	if job.Name != "" {
		monitoring.SetJobInfo(job.Name, job.Namespace, string(agg.Status.Job.State))
		monitoring.SetJobWorkerReplicas(job.Name, job.Namespace,
			mpijob.Replicas(job), agg.Status.CurrentReplicas, agg.Status.ReadyReplicas)
	}

	logger.V(1).Info("Sync response",
		"base", n.Base,
		"status", agg.Status,
		"children", len(children),
		"duration", time.Since(start))

	return &SyncResponse{
		Status:   agg.Status,
		Children: children,
	}, nil
}

func observedCounts(children mpiv1alpha1.ObservedChildren) map[string]int {
	counts := make(map[string]int, len(children))
	for tag, objs := range children {
		counts[tag] = len(objs)
	}
	return counts
}
