package mpijob

import (
	rbacv1 "k8s.io/api/rbac/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	mpiv1alpha1 "github.com/numtide/mpi-operator/api/v1alpha1"
	"github.com/numtide/mpi-operator/pkg/names"
	"github.com/numtide/mpi-operator/pkg/resource-handler/controller/metadata"
)

// BuildRole creates the Role that lets the launcher look up worker pods and
// exec into them. Both rules are limited to the worker pod names; with no
// workers the Role has no rules, since a rule without resourceNames matches
// every pod in the namespace.
func BuildRole(job *mpiv1alpha1.MPIJob, n names.Names) *rbacv1.Role {
	hosts := names.WorkerHostnames(n.Base, Replicas(job))

	role := &rbacv1.Role{
		TypeMeta: metav1.TypeMeta{
			APIVersion: rbacv1.SchemeGroupVersion.String(),
			Kind:       "Role",
		},
		ObjectMeta: metav1.ObjectMeta{
			Name:   n.Launcher,
			Labels: metadata.AddManagedByLabel(metadata.BuildAppLabels(n.Base)),
		},
		Rules: []rbacv1.PolicyRule{
			{
				APIGroups:     []string{""},
				ResourceNames: hosts,
				Resources:     []string{"pods"},
				Verbs:         []string{"get"},
			},
			{
				APIGroups:     []string{""},
				ResourceNames: hosts,
				Resources:     []string{"pods/exec"},
				Verbs:         []string{"create"},
			},
		},
	}
	if len(hosts) == 0 {
		role.Rules = []rbacv1.PolicyRule{}
	}
	return role
}

// BuildRoleBinding binds the launcher Role to the launcher ServiceAccount in
// the namespace of the MPIJob.
func BuildRoleBinding(job *mpiv1alpha1.MPIJob, n names.Names) *rbacv1.RoleBinding {
	return &rbacv1.RoleBinding{
		TypeMeta: metav1.TypeMeta{
			APIVersion: rbacv1.SchemeGroupVersion.String(),
			Kind:       "RoleBinding",
		},
		ObjectMeta: metav1.ObjectMeta{
			Name:   n.Launcher,
			Labels: metadata.AddManagedByLabel(metadata.BuildAppLabels(n.Base)),
		},
		RoleRef: rbacv1.RoleRef{
			APIGroup: rbacv1.GroupName,
			Kind:     "Role",
			Name:     n.Launcher,
		},
		Subjects: []rbacv1.Subject{
			{
				Kind:      rbacv1.ServiceAccountKind,
				Name:      n.Launcher,
				Namespace: job.Namespace,
			},
		},
	}
}
