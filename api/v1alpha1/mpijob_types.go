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
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
)

// ============================================================================
// MPIJob Spec
// ============================================================================

// MPIJobSpec defines the desired state of an MPIJob.
type MPIJobSpec struct {
	// Replicas is the number of worker pods.
	// Defaults to 1.
	// +optional
	// +kubebuilder:validation:Minimum=0
	Replicas *int32 `json:"replicas,omitempty"`

	// Image is the container image for the launcher and the workers.
	// +optional
	Image string `json:"image,omitempty"`

	// Template is a partial PodTemplateSpec merged onto the generated worker
	// and launcher pod templates. Worker containers never take command or args
	// from it.
	// +optional
	// +kubebuilder:pruning:PreserveUnknownFields
	Template *runtime.RawExtension `json:"template,omitempty"`
}

// ============================================================================
// MPIJob Status
// ============================================================================

// LauncherState is the coarse lifecycle state of the launcher Job.
type LauncherState string

const (
	// LauncherStateNone means no launcher Job has been observed yet.
	LauncherStateNone LauncherState = ""
	// LauncherStateRunning means the launcher is active or not yet finished.
	LauncherStateRunning LauncherState = "Running"
	// LauncherStateFinished means the launcher reported Complete or Failed.
	LauncherStateFinished LauncherState = "Finished"
)

// LauncherResult is the outcome of the launcher Job.
type LauncherResult string

const (
	LauncherResultNone      LauncherResult = ""
	LauncherResultUnknown   LauncherResult = "Unknown"
	LauncherResultSucceeded LauncherResult = "succeeded"
	LauncherResultFailed    LauncherResult = "Failed"
)

// LauncherStatus summarises the launcher Job.
type LauncherStatus struct {
	// State is the lifecycle state of the launcher.
	State LauncherState `json:"state"`

	// Status is the type of the last Job condition observed.
	Status string `json:"status"`

	// Success is the outcome of a finished launcher.
	Success LauncherResult `json:"success"`
}

// MPIJobStatus defines the observed state of an MPIJob.
type MPIJobStatus struct {
	// CurrentReplicas is copied from the worker StatefulSet.
	CurrentReplicas int32 `json:"currentReplicas"`

	// ReadyReplicas is copied from the worker StatefulSet.
	ReadyReplicas int32 `json:"readyReplicas"`

	// Replicas is copied from the worker StatefulSet.
	Replicas int32 `json:"replicas"`

	// Job is the launcher summary.
	Job LauncherStatus `json:"job"`
}

// ============================================================================
// MPIJob
// ============================================================================

// MPIJob is a distributed MPI workload: a StatefulSet of idle workers and a
// launcher Job that drives them over kubectl exec.
type MPIJob struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	// Spec is required; a nil Spec is rejected by the sync hook.
	Spec   *MPIJobSpec  `json:"spec,omitempty"`
	Status MPIJobStatus `json:"status,omitempty"`
}
