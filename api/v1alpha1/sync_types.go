/*
Copyright 2025.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package v1alpha1

import (
	"encoding/json"
	"maps"
	"slices"

	appsv1 "k8s.io/api/apps/v1"
	batchv1 "k8s.io/api/batch/v1"
	corev1 "k8s.io/api/core/v1"
	rbacv1 "k8s.io/api/rbac/v1"
	"k8s.io/apimachinery/pkg/runtime/schema"
)

// KindTag returns the key under which the control loop groups observed
// children of the given kind, e.g. "StatefulSet.apps/v1".
func KindTag(gvk schema.GroupVersionKind) string {
	return gvk.Kind + "." + gvk.GroupVersion().String()
}

// Kind tags of the six child kinds owned by an MPIJob.
var (
	ServiceAccountKindTag = KindTag(corev1.SchemeGroupVersion.WithKind("ServiceAccount"))
	RoleKindTag           = KindTag(rbacv1.SchemeGroupVersion.WithKind("Role"))
	RoleBindingKindTag    = KindTag(rbacv1.SchemeGroupVersion.WithKind("RoleBinding"))
	ConfigMapKindTag      = KindTag(corev1.SchemeGroupVersion.WithKind("ConfigMap"))
	StatefulSetKindTag    = KindTag(appsv1.SchemeGroupVersion.WithKind("StatefulSet"))
	JobKindTag            = KindTag(batchv1.SchemeGroupVersion.WithKind("Job"))
)

// ObservedChildren maps a kind tag to the observed objects of that kind,
// keyed by object name. Objects stay raw until a consumer decodes them.
type ObservedChildren map[string]map[string]json.RawMessage

// Names returns the names observed under kindTag in ascending order. A
// missing kind tag yields no names.
func (c ObservedChildren) Names(kindTag string) []string {
	return slices.Sorted(maps.Keys(c[kindTag]))
}

// Get returns the raw object named name under kindTag.
func (c ObservedChildren) Get(kindTag, name string) (json.RawMessage, bool) {
	obj, ok := c[kindTag][name]
	return obj, ok
}

// SyncRequest is the body the control loop POSTs to the sync hook.
type SyncRequest struct {
	// Parent is the MPIJob being reconciled.
	Parent *MPIJob `json:"parent"`

	// Children are the objects the hook returned on earlier calls, as they
	// currently exist in the cluster.
	Children ObservedChildren `json:"children"`
}
