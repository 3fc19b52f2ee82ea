package mpijob

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	corev1 "k8s.io/api/core/v1"
	rbacv1 "k8s.io/api/rbac/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/utils/ptr"

	mpiv1alpha1 "github.com/numtide/mpi-operator/api/v1alpha1"
)

func TestBuildServiceAccount(t *testing.T) {
	want := &corev1.ServiceAccount{
		TypeMeta: metav1.TypeMeta{APIVersion: "v1", Kind: "ServiceAccount"},
		ObjectMeta: metav1.ObjectMeta{
			Name: "mpioperator-foo-launcher",
			Labels: map[string]string{
				"group_name":                   "skatelescope.org",
				"mpi_job_name":                 "mpioperator-foo",
				"app":                          "mpioperator-foo",
				"app.kubernetes.io/managed-by": "mpi-operator",
			},
		},
	}
	if diff := cmp.Diff(want, BuildServiceAccount(testNames("foo"))); diff != "" {
		t.Errorf("BuildServiceAccount() mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildRole(t *testing.T) {
	scoped := func(hosts ...string) []rbacv1.PolicyRule {
		return []rbacv1.PolicyRule{
			{APIGroups: []string{""}, ResourceNames: hosts, Resources: []string{"pods"}, Verbs: []string{"get"}},
			{APIGroups: []string{""}, ResourceNames: hosts, Resources: []string{"pods/exec"}, Verbs: []string{"create"}},
		}
	}

	tests := map[string]struct {
		replicas  *int32
		wantRules []rbacv1.PolicyRule
	}{
		"default replicas": {
			wantRules: scoped("mpioperator-foo-worker-0"),
		},
		"three replicas": {
			replicas:  ptr.To(int32(3)),
			wantRules: scoped("mpioperator-foo-worker-0", "mpioperator-foo-worker-1", "mpioperator-foo-worker-2"),
		},
		"zero replicas grants nothing": {
			replicas:  ptr.To(int32(0)),
			wantRules: []rbacv1.PolicyRule{},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			job := &mpiv1alpha1.MPIJob{Spec: &mpiv1alpha1.MPIJobSpec{Replicas: tc.replicas}}
			got := BuildRole(job, testNames("foo"))

			if diff := cmp.Diff(tc.wantRules, got.Rules); diff != "" {
				t.Errorf("rules mismatch (-want +got):\n%s", diff)
			}
			if got.Name != "mpioperator-foo-launcher" {
				t.Errorf("name = %q, want the launcher name", got.Name)
			}
		})
	}
}

func TestBuildRoleBinding(t *testing.T) {
	job := &mpiv1alpha1.MPIJob{ObjectMeta: metav1.ObjectMeta{Name: "foo", Namespace: "hpc"}}
	got := BuildRoleBinding(job, testNames("foo"))

	wantRef := rbacv1.RoleRef{APIGroup: "rbac.authorization.k8s.io", Kind: "Role", Name: "mpioperator-foo-launcher"}
	if diff := cmp.Diff(wantRef, got.RoleRef); diff != "" {
		t.Errorf("roleRef mismatch (-want +got):\n%s", diff)
	}
	wantSubjects := []rbacv1.Subject{{Kind: "ServiceAccount", Name: "mpioperator-foo-launcher", Namespace: "hpc"}}
	if diff := cmp.Diff(wantSubjects, got.Subjects); diff != "" {
		t.Errorf("subjects mismatch (-want +got):\n%s", diff)
	}
}
