package mpijob

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/utils/ptr"

	mpiv1alpha1 "github.com/numtide/mpi-operator/api/v1alpha1"
)

func TestBuildLauncherJob(t *testing.T) {
	job := &mpiv1alpha1.MPIJob{
		ObjectMeta: metav1.ObjectMeta{Name: "foo"},
		Spec:       &mpiv1alpha1.MPIJobSpec{Image: "mpi:1"},
	}

	got := NewBuilder("").BuildLauncherJob(job, testNames("foo"))

	if got.Name != "mpioperator-foo-launcher" {
		t.Errorf("name = %q, want mpioperator-foo-launcher", got.Name)
	}
	if diff := cmp.Diff(
		[]*int32{ptr.To(int32(6)), ptr.To(int32(1)), ptr.To(int32(1))},
		[]*int32{got.Spec.BackoffLimit, got.Spec.Completions, got.Spec.Parallelism},
	); diff != "" {
		t.Errorf("backoffLimit/completions/parallelism mismatch (-want +got):\n%s", diff)
	}

	wantLabels := map[string]string{
		"group_name":    "skatelescope.org",
		"mpi_job_name":  "mpioperator-foo",
		"mpi_role_type": "launcher",
		"job-name":      "mpioperator-foo-launcher",
	}
	if diff := cmp.Diff(wantLabels, got.Spec.Template.Labels); diff != "" {
		t.Errorf("pod labels mismatch (-want +got):\n%s", diff)
	}

	pod := got.Spec.Template.Spec
	if pod.RestartPolicy != corev1.RestartPolicyNever {
		t.Errorf("restartPolicy = %q, want Never", pod.RestartPolicy)
	}
	if pod.ServiceAccountName != "mpioperator-foo-launcher" || pod.DeprecatedServiceAccount != "mpioperator-foo-launcher" {
		t.Errorf("service account = %q/%q, want the launcher name", pod.ServiceAccountName, pod.DeprecatedServiceAccount)
	}

	main := pod.Containers[0]
	if main.Image != "mpi:1" {
		t.Errorf("launcher image = %q, want mpi:1", main.Image)
	}
	wantEnv := []corev1.EnvVar{
		{Name: "OMPI_MCA_plm_rsh_agent", Value: "/etc/mpi/kubexec.sh"},
		{Name: "OMPI_MCA_orte_default_hostfile", Value: "/etc/mpi/hostfile"},
	}
	if diff := cmp.Diff(wantEnv, main.Env); diff != "" {
		t.Errorf("launcher env mismatch (-want +got):\n%s", diff)
	}
	if len(main.Command) != 0 || len(main.Args) != 0 {
		t.Errorf("launcher must not set command/args, got %v %v", main.Command, main.Args)
	}

	wantVolumes := []corev1.Volume{
		{
			Name:         "mpi-job-kubectl",
			VolumeSource: corev1.VolumeSource{EmptyDir: &corev1.EmptyDirVolumeSource{}},
		},
		{
			Name: "mpi-job-config",
			VolumeSource: corev1.VolumeSource{
				ConfigMap: &corev1.ConfigMapVolumeSource{
					LocalObjectReference: corev1.LocalObjectReference{Name: "mpioperator-foo-config"},
					Items: []corev1.KeyToPath{
						{Key: "kubexec.sh", Path: "kubexec.sh", Mode: ptr.To(int32(0o555))},
						{Key: "hostfile", Path: "hostfile", Mode: ptr.To(int32(0o444))},
					},
					DefaultMode: ptr.To(int32(0o644)),
				},
			},
		},
	}
	if diff := cmp.Diff(wantVolumes, pod.Volumes); diff != "" {
		t.Errorf("volumes mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildLauncherJob_InitContainers(t *testing.T) {
	tests := map[string]struct {
		kubectlImage string
		wantImage    string
	}{
		"default delivery image": {
			kubectlImage: "",
			wantImage:    "mpioperator/kubectl-delivery:latest",
		},
		"configured delivery image": {
			kubectlImage: "registry.example/kubectl-delivery:v1.30",
			wantImage:    "registry.example/kubectl-delivery:v1.30",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			job := &mpiv1alpha1.MPIJob{Spec: &mpiv1alpha1.MPIJobSpec{Image: "mpi:1"}}
			got := NewBuilder(tc.kubectlImage).BuildLauncherJob(job, testNames("foo"))

			inits := got.Spec.Template.Spec.InitContainers
			if len(inits) != 2 {
				t.Fatalf("got %d init containers, want 2", len(inits))
			}

			delivery := inits[0]
			if delivery.Name != KubectlDeliveryContainerName || delivery.Image != tc.wantImage {
				t.Errorf("delivery container = %s/%s, want %s/%s", delivery.Name, delivery.Image, KubectlDeliveryContainerName, tc.wantImage)
			}
			if diff := cmp.Diff([]corev1.EnvVar{{Name: "TARGET_DIR", Value: "/opt/kube"}}, delivery.Env); diff != "" {
				t.Errorf("delivery env mismatch (-want +got):\n%s", diff)
			}
			if delivery.ImagePullPolicy != corev1.PullAlways {
				t.Errorf("delivery pull policy = %q, want Always", delivery.ImagePullPolicy)
			}

			wait := inits[1]
			if wait.Name != WaitForWorkersContainerName || wait.Image != "mpi:1" {
				t.Errorf("wait container = %s/%s, want %s/mpi:1", wait.Name, wait.Image, WaitForWorkersContainerName)
			}
			if diff := cmp.Diff([]string{"/bin/sh", "-c", WaitForWorkersScript}, wait.Command); diff != "" {
				t.Errorf("wait command mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(launcherVolumeMounts(), wait.VolumeMounts); diff != "" {
				t.Errorf("wait mounts mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
