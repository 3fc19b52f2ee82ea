package mpijob

import (
	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/resource"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/utils/ptr"

	mpiv1alpha1 "github.com/numtide/mpi-operator/api/v1alpha1"
	"github.com/numtide/mpi-operator/pkg/names"
	"github.com/numtide/mpi-operator/pkg/resource-handler/controller/metadata"
)

// workerCommand keeps worker pods alive until the launcher execs into them.
var workerCommand = []string{"sleep"}

var workerArgs = []string{"365d"}

// BuildWorkerStatefulSet creates the base worker StatefulSet, before the
// pod template override is applied.
func (b *Builder) BuildWorkerStatefulSet(
	job *mpiv1alpha1.MPIJob,
	n names.Names,
) *appsv1.StatefulSet {
	selector := metadata.BuildWorkloadLabels(n.Base, metadata.RoleTypeWorker)

	return &appsv1.StatefulSet{
		TypeMeta: metav1.TypeMeta{
			APIVersion: appsv1.SchemeGroupVersion.String(),
			Kind:       "StatefulSet",
		},
		ObjectMeta: metav1.ObjectMeta{
			Name:   n.Worker,
			Labels: metadata.AddManagedByLabel(metadata.MergeLabels(selector, nil)),
		},
		Spec: appsv1.StatefulSetSpec{
			PodManagementPolicy:  appsv1.ParallelPodManagement,
			Replicas:             ptr.To(Replicas(job)),
			RevisionHistoryLimit: ptr.To(workerRevisionHistoryLimit),
			Selector: &metav1.LabelSelector{
				MatchLabels: selector,
			},
			ServiceName: n.Worker,
			Template: corev1.PodTemplateSpec{
				ObjectMeta: metav1.ObjectMeta{
					Labels: metadata.MergeLabels(selector, nil),
				},
				Spec: corev1.PodSpec{
					Containers: []corev1.Container{
						{
							Name:            WorkerContainerName,
							Image:           b.image(job),
							Command:         workerCommand,
							Args:            workerArgs,
							ImagePullPolicy: corev1.PullIfNotPresent,
							Resources: corev1.ResourceRequirements{
								Limits: corev1.ResourceList{
									GPUResourceName: resource.MustParse("0"),
								},
							},
							TerminationMessagePath:   corev1.TerminationMessagePathDefault,
							TerminationMessagePolicy: corev1.TerminationMessageReadFile,
							VolumeMounts: []corev1.VolumeMount{
								{
									Name:      ConfigVolumeName,
									MountPath: ConfigMountPath,
								},
							},
						},
					},
					DNSPolicy:                     corev1.DNSClusterFirst,
					RestartPolicy:                 corev1.RestartPolicyAlways,
					SchedulerName:                 corev1.DefaultSchedulerName,
					SecurityContext:               &corev1.PodSecurityContext{},
					TerminationGracePeriodSeconds: ptr.To(terminationGracePeriodSeconds),
					Volumes: []corev1.Volume{
						configVolume(n.Config, kubexecItem()),
					},
				},
			},
			UpdateStrategy: appsv1.StatefulSetUpdateStrategy{
				Type: appsv1.RollingUpdateStatefulSetStrategyType,
				RollingUpdate: &appsv1.RollingUpdateStatefulSetStrategy{
					Partition: ptr.To(int32(0)),
				},
			},
		},
	}
}
