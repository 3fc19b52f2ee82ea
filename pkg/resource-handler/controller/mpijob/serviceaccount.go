package mpijob

import (
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/numtide/mpi-operator/pkg/names"
	"github.com/numtide/mpi-operator/pkg/resource-handler/controller/metadata"
)

// BuildServiceAccount creates the ServiceAccount the launcher pod runs as.
func BuildServiceAccount(n names.Names) *corev1.ServiceAccount {
	return &corev1.ServiceAccount{
		TypeMeta: metav1.TypeMeta{
			APIVersion: corev1.SchemeGroupVersion.String(),
			Kind:       "ServiceAccount",
		},
		ObjectMeta: metav1.ObjectMeta{
			Name:   n.Launcher,
			Labels: metadata.AddManagedByLabel(metadata.BuildAppLabels(n.Base)),
		},
	}
}
