package metadata

import "maps"

// Label keys carried by every object the sync hook generates. They predate the
// kubernetes.io recommended labels and double as StatefulSet selectors, so they
// must never change for an existing MPIJob.
const (
	// LabelGroupName identifies the owning project.
	LabelGroupName = "group_name"

	// LabelMPIJobName carries the base name of the owning MPIJob.
	LabelMPIJobName = "mpi_job_name"

	// LabelMPIRoleType is "worker" or "launcher" on workload objects.
	LabelMPIRoleType = "mpi_role_type"

	// LabelApp carries the base name on RBAC objects and the ConfigMap.
	LabelApp = "app"

	// LabelJobName is the label the Job controller selects launcher pods by.
	LabelJobName = "job-name"
)

const (
	// LabelAppManagedBy is the standard label key for the tool managing the
	// resource.
	//
	// See: https://kubernetes.io/docs/concepts/overview/working-with-objects/common-labels/
	LabelAppManagedBy = "app.kubernetes.io/managed-by"

	// ManagedByMPIOperator identifies the sync hook as the manager.
	ManagedByMPIOperator = "mpi-operator"
)

const (
	// GroupName is the fixed value of LabelGroupName.
	GroupName = "skatelescope.org"

	// RoleTypeWorker marks the worker StatefulSet and its pods.
	RoleTypeWorker = "worker"

	// RoleTypeLauncher marks the launcher Job and its pod.
	RoleTypeLauncher = "launcher"
)

// BuildWorkloadLabels builds the selector labels for a worker StatefulSet or
// launcher Job and their pods.
//
// Example usage:
//
//	labels := BuildWorkloadLabels("mpioperator-foo", RoleTypeWorker)
//	// Returns: {
//	//   "group_name":    "skatelescope.org",
//	//   "mpi_job_name":  "mpioperator-foo",
//	//   "mpi_role_type": "worker",
//	// }
func BuildWorkloadLabels(baseName, roleType string) map[string]string {
	return map[string]string{
		LabelGroupName:   GroupName,
		LabelMPIJobName:  baseName,
		LabelMPIRoleType: roleType,
	}
}

// BuildAppLabels builds the labels for the ServiceAccount, Role, RoleBinding
// and ConfigMap.
func BuildAppLabels(baseName string) map[string]string {
	return map[string]string{
		LabelGroupName:  GroupName,
		LabelMPIJobName: baseName,
		LabelApp:        baseName,
	}
}

// AddManagedByLabel adds the managed-by label to the provided labels map.
// Only object metadata carries it; selectors and pod templates do not.
func AddManagedByLabel(labels map[string]string) map[string]string {
	labels[LabelAppManagedBy] = ManagedByMPIOperator
	return labels
}

// MergeLabels merges custom labels with standard labels.
//
// Note that standard labels take precedence over custom labels to prevent users
// from overriding critical operator-managed labels.
func MergeLabels(standardLabels, customLabels map[string]string) map[string]string {
	merged := make(map[string]string)

	// Copy custom labels first (if provided)
	maps.Copy(merged, customLabels)

	// Copy standard labels (overwriting any duplicates from custom)
	maps.Copy(merged, standardLabels)

	return merged
}
