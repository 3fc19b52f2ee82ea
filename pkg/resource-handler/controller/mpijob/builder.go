package mpijob

import (
	"errors"
	"fmt"

	mpiv1alpha1 "github.com/numtide/mpi-operator/api/v1alpha1"
	"github.com/numtide/mpi-operator/pkg/document"
	"github.com/numtide/mpi-operator/pkg/names"
)

var (
	// ErrMissingSpec is returned for an MPIJob without a spec.
	ErrMissingSpec = errors.New("MPIJob has no spec")

	// ErrNegativeReplicas is returned when spec.replicas is below zero.
	ErrNegativeReplicas = errors.New("MPIJob spec.replicas must not be negative")

	// ErrTooManyReplicas is returned when spec.replicas exceeds MaxReplicas.
	ErrTooManyReplicas = errors.New("MPIJob spec.replicas exceeds the maximum")
)

// Builder renders the children of an MPIJob. It holds process-wide settings
// that are fixed at startup.
type Builder struct {
	// KubectlDeliveryImage is the image of the init container that stages
	// kubectl into the launcher pod.
	KubectlDeliveryImage string

	// DefaultImage is used for the launcher and workers when the MPIJob does
	// not set spec.image.
	DefaultImage string
}

// NewBuilder returns a Builder using kubectlDeliveryImage, or
// DefaultKubectlDeliveryImage when it is empty.
func NewBuilder(kubectlDeliveryImage string) *Builder {
	if kubectlDeliveryImage == "" {
		kubectlDeliveryImage = DefaultKubectlDeliveryImage
	}
	return &Builder{
		KubectlDeliveryImage: kubectlDeliveryImage,
		DefaultImage:         DefaultImage,
	}
}

// Validate checks the fields the builders depend on.
func Validate(job *mpiv1alpha1.MPIJob) error {
	if job.Spec == nil {
		return ErrMissingSpec
	}
	if job.Spec.Replicas != nil && *job.Spec.Replicas < 0 {
		return fmt.Errorf("%w: got %d", ErrNegativeReplicas, *job.Spec.Replicas)
	}
	if job.Spec.Replicas != nil && *job.Spec.Replicas > MaxReplicas {
		return fmt.Errorf("%w: got %d, max %d", ErrTooManyReplicas, *job.Spec.Replicas, MaxReplicas)
	}
	return nil
}

// BuildChildren returns the ServiceAccount, Role, RoleBinding, ConfigMap,
// worker StatefulSet and launcher Job for job, in that order. Either all
// ChildCount children are returned or an error.
func (b *Builder) BuildChildren(
	job *mpiv1alpha1.MPIJob,
	n names.Names,
) ([]*document.Object, error) {
	if err := Validate(job); err != nil {
		return nil, err
	}

	override, err := PodTemplateOverride(job)
	if err != nil {
		return nil, err
	}

	builders := []struct {
		kind  string
		build func() (*document.Object, error)
	}{
		{"ServiceAccount", func() (*document.Object, error) { return toDocument(BuildServiceAccount(n)) }},
		{"Role", func() (*document.Object, error) { return toDocument(BuildRole(job, n)) }},
		{"RoleBinding", func() (*document.Object, error) { return toDocument(BuildRoleBinding(job, n)) }},
		{"ConfigMap", func() (*document.Object, error) { return toDocument(BuildConfigMap(job, n)) }},
		{"StatefulSet", func() (*document.Object, error) { return b.buildWorkers(job, n, override) }},
		{"Job", func() (*document.Object, error) { return b.buildLauncher(job, n, override) }},
	}

	children := make([]*document.Object, 0, ChildCount)
	for _, child := range builders {
		obj, err := child.build()
		if err != nil {
			return nil, fmt.Errorf("failed to build %s: %w", child.kind, err)
		}
		children = append(children, obj)
	}
	return children, nil
}

func (b *Builder) buildWorkers(
	job *mpiv1alpha1.MPIJob,
	n names.Names,
	override *document.Object,
) (*document.Object, error) {
	doc, err := toDocument(b.BuildWorkerStatefulSet(job, n))
	if err != nil {
		return nil, err
	}
	if override == nil {
		return doc, nil
	}

	// The override is shared with the launcher; strip a copy.
	tmpl := override.Clone()
	StripContainerInvocation(tmpl)
	if err := mergePodTemplate(doc, tmpl); err != nil {
		return nil, err
	}
	return doc, nil
}

func (b *Builder) buildLauncher(
	job *mpiv1alpha1.MPIJob,
	n names.Names,
	override *document.Object,
) (*document.Object, error) {
	doc, err := toDocument(b.BuildLauncherJob(job, n))
	if err != nil {
		return nil, err
	}
	if override == nil {
		return doc, nil
	}
	if err := mergePodTemplate(doc, override); err != nil {
		return nil, err
	}
	return doc, nil
}

func (b *Builder) image(job *mpiv1alpha1.MPIJob) string {
	if job.Spec != nil && job.Spec.Image != "" {
		return job.Spec.Image
	}
	if b.DefaultImage != "" {
		return b.DefaultImage
	}
	return DefaultImage
}

// Replicas returns the desired worker count of job.
func Replicas(job *mpiv1alpha1.MPIJob) int32 {
	if job.Spec != nil && job.Spec.Replicas != nil {
		return *job.Spec.Replicas
	}
	return DefaultReplicas
}
