package mpijob

import (
	_ "embed"
	"fmt"
	"strings"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/utils/ptr"

	mpiv1alpha1 "github.com/numtide/mpi-operator/api/v1alpha1"
	"github.com/numtide/mpi-operator/pkg/names"
	"github.com/numtide/mpi-operator/pkg/resource-handler/controller/metadata"
)

// KubexecScript is the Open MPI rsh agent. It takes the target pod name as
// its first argument and runs the remaining arguments there via kubectl exec.
//
//go:embed templates/kubexec.sh
var KubexecScript string

// WaitForWorkersScript exits non-zero unless every hostfile entry is a
// Running pod.
//
//go:embed templates/wait-for-workers.sh
var WaitForWorkersScript string

// BuildConfigMap creates the ConfigMap holding the hostfile and kubexec.sh.
func BuildConfigMap(job *mpiv1alpha1.MPIJob, n names.Names) *corev1.ConfigMap {
	return &corev1.ConfigMap{
		TypeMeta: metav1.TypeMeta{
			APIVersion: corev1.SchemeGroupVersion.String(),
			Kind:       "ConfigMap",
		},
		ObjectMeta: metav1.ObjectMeta{
			Name:   n.Config,
			Labels: metadata.AddManagedByLabel(metadata.BuildAppLabels(n.Base)),
		},
		Data: map[string]string{
			HostfileKey:      BuildHostfile(n.Base, Replicas(job)),
			KubexecScriptKey: KubexecScript,
		},
	}
}

// BuildHostfile renders the MPI hostfile: one "<host> slots=N" line per
// worker, newline separated.
func BuildHostfile(base string, replicas int32) string {
	hosts := names.WorkerHostnames(base, replicas)
	lines := make([]string, len(hosts))
	for i, host := range hosts {
		lines[i] = fmt.Sprintf("%s slots=%d", host, SlotsPerWorker)
	}
	return strings.Join(lines, "\n")
}

// configVolume mounts the given ConfigMap items.
func configVolume(configName string, items ...corev1.KeyToPath) corev1.Volume {
	return corev1.Volume{
		Name: ConfigVolumeName,
		VolumeSource: corev1.VolumeSource{
			ConfigMap: &corev1.ConfigMapVolumeSource{
				LocalObjectReference: corev1.LocalObjectReference{Name: configName},
				Items:                items,
				DefaultMode:          ptr.To(configDefaultMode),
			},
		},
	}
}

func kubexecItem() corev1.KeyToPath {
	return corev1.KeyToPath{Key: KubexecScriptKey, Path: KubexecScriptKey, Mode: ptr.To(scriptMode)}
}

func hostfileItem() corev1.KeyToPath {
	return corev1.KeyToPath{Key: HostfileKey, Path: HostfileKey, Mode: ptr.To(hostfileMode)}
}
