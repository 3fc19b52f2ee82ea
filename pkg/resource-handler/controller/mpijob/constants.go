package mpijob

import corev1 "k8s.io/api/core/v1"

const (
	// DefaultImage is the launcher and worker image when the MPIJob sets none.
	DefaultImage = "gitlab.catalyst.net.nz:4567/piers/k8s-hack/kube-grid:opr"

	// DefaultKubectlDeliveryImage stages kubectl into the launcher pod.
	DefaultKubectlDeliveryImage = "mpioperator/kubectl-delivery:latest"

	// DefaultReplicas is the worker count when the MPIJob sets none.
	DefaultReplicas int32 = 1

	// MaxReplicas bounds spec.replicas. Every worker adds a hostfile line and
	// two Role resource names, so this keeps the ConfigMap far below the 1 MiB
	// object limit.
	MaxReplicas int32 = 10000

	// ChildCount is the number of children returned for every MPIJob.
	ChildCount = 6
)

const (
	// WorkerContainerName is the idle container in every worker pod.
	WorkerContainerName = "mpiexecutor"

	// LauncherContainerName is the container that runs the MPI program.
	LauncherContainerName = "mpi-launcher"

	// KubectlDeliveryContainerName copies kubectl into KubectlMountPath.
	KubectlDeliveryContainerName = "kubectl-delivery"

	// WaitForWorkersContainerName blocks the launcher until workers run.
	WaitForWorkersContainerName = "wait-for-workers"
)

const (
	// ConfigVolumeName mounts the ConfigMap.
	ConfigVolumeName = "mpi-job-config"

	// ConfigMountPath is where the ConfigMap items are mounted.
	ConfigMountPath = "/etc/mpi"

	// KubectlVolumeName is the emptyDir shared with the delivery container.
	KubectlVolumeName = "mpi-job-kubectl"

	// KubectlMountPath is where the kubectl binary is staged.
	KubectlMountPath = "/opt/kube"

	// HostfileKey is the ConfigMap key of the MPI hostfile.
	HostfileKey = "hostfile"

	// KubexecScriptKey is the ConfigMap key of the rsh agent script.
	KubexecScriptKey = "kubexec.sh"

	// SlotsPerWorker is the MPI slot count of every hostfile entry.
	SlotsPerWorker = 1
)

// Environment understood by Open MPI.
const (
	EnvRshAgent        = "OMPI_MCA_plm_rsh_agent"
	EnvDefaultHostfile = "OMPI_MCA_orte_default_hostfile"
	EnvTargetDir       = "TARGET_DIR"
)

// GPUResourceName is limited to zero on workers unless the override raises it.
const GPUResourceName corev1.ResourceName = "nvidia.com/gpu"

const (
	launcherBackoffLimit          int32 = 6
	workerRevisionHistoryLimit    int32 = 10
	terminationGracePeriodSeconds int64 = 30

	configDefaultMode int32 = 0o644
	scriptMode        int32 = 0o555
	hostfileMode      int32 = 0o444
)
