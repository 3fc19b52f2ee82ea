package mpijob

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/resource"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/utils/ptr"

	mpiv1alpha1 "github.com/numtide/mpi-operator/api/v1alpha1"
	"github.com/numtide/mpi-operator/pkg/names"
)

func testNames(jobName string) names.Names {
	return names.NewResolver().Resolve(jobName, names.Observed{})
}

func TestBuildWorkerStatefulSet(t *testing.T) {
	tests := map[string]struct {
		job  *mpiv1alpha1.MPIJob
		want *appsv1.StatefulSet
	}{
		"minimal spec - all defaults": {
			job: &mpiv1alpha1.MPIJob{
				ObjectMeta: metav1.ObjectMeta{Name: "foo"},
				Spec:       &mpiv1alpha1.MPIJobSpec{},
			},
			want: &appsv1.StatefulSet{
				TypeMeta: metav1.TypeMeta{APIVersion: "apps/v1", Kind: "StatefulSet"},
				ObjectMeta: metav1.ObjectMeta{
					Name: "mpioperator-foo-worker",
					Labels: map[string]string{
						"group_name":                   "skatelescope.org",
						"mpi_job_name":                 "mpioperator-foo",
						"mpi_role_type":                "worker",
						"app.kubernetes.io/managed-by": "mpi-operator",
					},
				},
				Spec: appsv1.StatefulSetSpec{
					PodManagementPolicy:  appsv1.ParallelPodManagement,
					Replicas:             ptr.To(int32(1)),
					RevisionHistoryLimit: ptr.To(int32(10)),
					Selector: &metav1.LabelSelector{
						MatchLabels: map[string]string{
							"group_name":    "skatelescope.org",
							"mpi_job_name":  "mpioperator-foo",
							"mpi_role_type": "worker",
						},
					},
					ServiceName: "mpioperator-foo-worker",
					Template: corev1.PodTemplateSpec{
						ObjectMeta: metav1.ObjectMeta{
							Labels: map[string]string{
								"group_name":    "skatelescope.org",
								"mpi_job_name":  "mpioperator-foo",
								"mpi_role_type": "worker",
							},
						},
						Spec: corev1.PodSpec{
							Containers: []corev1.Container{
								{
									Name:            "mpiexecutor",
									Image:           DefaultImage,
									Command:         []string{"sleep"},
									Args:            []string{"365d"},
									ImagePullPolicy: corev1.PullIfNotPresent,
									Resources: corev1.ResourceRequirements{
										Limits: corev1.ResourceList{
											"nvidia.com/gpu": resource.MustParse("0"),
										},
									},
									TerminationMessagePath:   "/dev/termination-log",
									TerminationMessagePolicy: corev1.TerminationMessageReadFile,
									VolumeMounts: []corev1.VolumeMount{
										{Name: "mpi-job-config", MountPath: "/etc/mpi"},
									},
								},
							},
							DNSPolicy:                     corev1.DNSClusterFirst,
							RestartPolicy:                 corev1.RestartPolicyAlways,
							SchedulerName:                 "default-scheduler",
							SecurityContext:               &corev1.PodSecurityContext{},
							TerminationGracePeriodSeconds: ptr.To(int64(30)),
							Volumes: []corev1.Volume{
								{
									Name: "mpi-job-config",
									VolumeSource: corev1.VolumeSource{
										ConfigMap: &corev1.ConfigMapVolumeSource{
											LocalObjectReference: corev1.LocalObjectReference{
												Name: "mpioperator-foo-config",
											},
											Items: []corev1.KeyToPath{
												{Key: "kubexec.sh", Path: "kubexec.sh", Mode: ptr.To(int32(0o555))},
											},
											DefaultMode: ptr.To(int32(0o644)),
										},
									},
								},
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
			},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got := NewBuilder("").BuildWorkerStatefulSet(tc.job, testNames(tc.job.Name))
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("BuildWorkerStatefulSet() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBuildWorkerStatefulSet_CustomSpec(t *testing.T) {
	job := &mpiv1alpha1.MPIJob{
		ObjectMeta: metav1.ObjectMeta{Name: "foo"},
		Spec: &mpiv1alpha1.MPIJobSpec{
			Replicas: ptr.To(int32(4)),
			Image:    "registry.example/mpi:2",
		},
	}
	n := names.Names{Base: "bar", Worker: "bar-worker", Config: "legacy-config", Launcher: "bar-launcher"}

	got := NewBuilder("").BuildWorkerStatefulSet(job, n)

	if got.Name != "bar-worker" {
		t.Errorf("name = %q, want bar-worker", got.Name)
	}
	if *got.Spec.Replicas != 4 {
		t.Errorf("replicas = %d, want 4", *got.Spec.Replicas)
	}
	if img := got.Spec.Template.Spec.Containers[0].Image; img != "registry.example/mpi:2" {
		t.Errorf("image = %q, want registry.example/mpi:2", img)
	}
	if cm := got.Spec.Template.Spec.Volumes[0].ConfigMap.Name; cm != "legacy-config" {
		t.Errorf("config volume references %q, want the observed ConfigMap legacy-config", cm)
	}
	if got.Spec.Selector.MatchLabels["mpi_job_name"] != "bar" {
		t.Errorf("selector = %v, want mpi_job_name=bar", got.Spec.Selector.MatchLabels)
	}
}

func TestBuilderDefaultImage(t *testing.T) {
	b := &Builder{DefaultImage: "site/default:1"}
	job := &mpiv1alpha1.MPIJob{Spec: &mpiv1alpha1.MPIJobSpec{}}

	got := b.BuildWorkerStatefulSet(job, testNames("x"))
	if img := got.Spec.Template.Spec.Containers[0].Image; img != "site/default:1" {
		t.Errorf("image = %q, want site/default:1", img)
	}
}
