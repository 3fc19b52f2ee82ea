package mpijob

import (
	"path"

	batchv1 "k8s.io/api/batch/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/utils/ptr"

	mpiv1alpha1 "github.com/numtide/mpi-operator/api/v1alpha1"
	"github.com/numtide/mpi-operator/pkg/names"
	"github.com/numtide/mpi-operator/pkg/resource-handler/controller/metadata"
)

// BuildLauncherJob creates the base launcher Job, before the pod template
// override is applied.
func (b *Builder) BuildLauncherJob(
	job *mpiv1alpha1.MPIJob,
	n names.Names,
) *batchv1.Job {
	selector := metadata.BuildWorkloadLabels(n.Base, metadata.RoleTypeLauncher)
	image := b.image(job)

	return &batchv1.Job{
		TypeMeta: metav1.TypeMeta{
			APIVersion: batchv1.SchemeGroupVersion.String(),
			Kind:       "Job",
		},
		ObjectMeta: metav1.ObjectMeta{
			Name:   n.Launcher,
			Labels: metadata.AddManagedByLabel(metadata.MergeLabels(selector, nil)),
		},
		Spec: batchv1.JobSpec{
			BackoffLimit: ptr.To(launcherBackoffLimit),
			Completions:  ptr.To(int32(1)),
			Parallelism:  ptr.To(int32(1)),
			Template: corev1.PodTemplateSpec{
				ObjectMeta: metav1.ObjectMeta{
					Labels: metadata.MergeLabels(selector, map[string]string{
						metadata.LabelJobName: n.Launcher,
					}),
				},
				Spec: corev1.PodSpec{
					Containers: []corev1.Container{
						{
							Name: LauncherContainerName,
							Env: []corev1.EnvVar{
								{
									Name:  EnvRshAgent,
									Value: path.Join(ConfigMountPath, KubexecScriptKey),
								},
								{
									Name:  EnvDefaultHostfile,
									Value: path.Join(ConfigMountPath, HostfileKey),
								},
							},
							Image:                    image,
							ImagePullPolicy:          corev1.PullIfNotPresent,
							TerminationMessagePath:   corev1.TerminationMessagePathDefault,
							TerminationMessagePolicy: corev1.TerminationMessageReadFile,
							VolumeMounts:             launcherVolumeMounts(),
						},
					},
					DNSPolicy: corev1.DNSClusterFirst,
					InitContainers: []corev1.Container{
						b.buildKubectlDeliveryContainer(),
						buildWaitForWorkersContainer(image),
					},
					RestartPolicy:                 corev1.RestartPolicyNever,
					SchedulerName:                 corev1.DefaultSchedulerName,
					SecurityContext:               &corev1.PodSecurityContext{},
					DeprecatedServiceAccount:      n.Launcher,
					ServiceAccountName:            n.Launcher,
					TerminationGracePeriodSeconds: ptr.To(terminationGracePeriodSeconds),
					Volumes: []corev1.Volume{
						{
							Name: KubectlVolumeName,
							VolumeSource: corev1.VolumeSource{
								EmptyDir: &corev1.EmptyDirVolumeSource{},
							},
						},
						configVolume(n.Config, kubexecItem(), hostfileItem()),
					},
				},
			},
		},
	}
}

func (b *Builder) buildKubectlDeliveryContainer() corev1.Container {
	image := b.KubectlDeliveryImage
	if image == "" {
		image = DefaultKubectlDeliveryImage
	}
	return corev1.Container{
		Name: KubectlDeliveryContainerName,
		Env: []corev1.EnvVar{
			{
				Name:  EnvTargetDir,
				Value: KubectlMountPath,
			},
		},
		Image:                    image,
		ImagePullPolicy:          corev1.PullAlways,
		TerminationMessagePath:   corev1.TerminationMessagePathDefault,
		TerminationMessagePolicy: corev1.TerminationMessageReadFile,
		VolumeMounts: []corev1.VolumeMount{
			{
				Name:      KubectlVolumeName,
				MountPath: KubectlMountPath,
			},
		},
	}
}

// buildWaitForWorkersContainer polls worker pod phases with the staged kubectl.
// It fails instead of looping; the Job backoff limit bounds the retries.
func buildWaitForWorkersContainer(image string) corev1.Container {
	return corev1.Container{
		Name:                     WaitForWorkersContainerName,
		Image:                    image,
		Command:                  []string{"/bin/sh", "-c", WaitForWorkersScript},
		ImagePullPolicy:          corev1.PullIfNotPresent,
		TerminationMessagePath:   corev1.TerminationMessagePathDefault,
		TerminationMessagePolicy: corev1.TerminationMessageReadFile,
		VolumeMounts:             launcherVolumeMounts(),
	}
}

func launcherVolumeMounts() []corev1.VolumeMount {
	return []corev1.VolumeMount{
		{
			Name:      KubectlVolumeName,
			MountPath: KubectlMountPath,
		},
		{
			Name:      ConfigVolumeName,
			MountPath: ConfigMountPath,
		},
	}
}
