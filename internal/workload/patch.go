package workload

import (
	corev1 "k8s.io/api/core/v1"
	apiequality "k8s.io/apimachinery/pkg/api/equality"
	"k8s.io/apimachinery/pkg/api/resource"
)

// EnvPatch is one environment variable to append to the workload container.
// Exactly one source should be set: Value, ConfigMapKeyRef, FieldRef, or
// ResourceFieldRef. Equality is structural (name plus source) and is how
// "already applied" is tested.
type EnvPatch struct {
	Name  string
	Value string

	ConfigMapKeyRef  *ConfigMapKeyRef
	FieldRef         *FieldRef
	ResourceFieldRef *ResourceFieldRef
}

// ConfigMapKeyRef sources an env var from a ConfigMap key.
type ConfigMapKeyRef struct {
	Name string
	Key  string
}

// FieldRef sources an env var from a pod field.
type FieldRef struct {
	FieldPath  string
	APIVersion string
}

// ResourceFieldRef sources an env var from a container resource field.
type ResourceFieldRef struct {
	ContainerName string
	Resource      string
	Divisor       string
}

// EnvVar renders the patch as a corev1.EnvVar.
func (p EnvPatch) EnvVar() corev1.EnvVar {
	v := corev1.EnvVar{Name: p.Name, Value: p.Value}
	switch {
	case p.ConfigMapKeyRef != nil:
		v.ValueFrom = &corev1.EnvVarSource{
			ConfigMapKeyRef: &corev1.ConfigMapKeySelector{
				LocalObjectReference: corev1.LocalObjectReference{Name: p.ConfigMapKeyRef.Name},
				Key:                  p.ConfigMapKeyRef.Key,
			},
		}
	case p.FieldRef != nil:
		v.ValueFrom = &corev1.EnvVarSource{
			FieldRef: &corev1.ObjectFieldSelector{
				FieldPath:  p.FieldRef.FieldPath,
				APIVersion: p.FieldRef.APIVersion,
			},
		}
	case p.ResourceFieldRef != nil:
		ref := &corev1.ResourceFieldSelector{
			ContainerName: p.ResourceFieldRef.ContainerName,
			Resource:      p.ResourceFieldRef.Resource,
		}
		if p.ResourceFieldRef.Divisor != "" {
			ref.Divisor = resource.MustParse(p.ResourceFieldRef.Divisor)
		}
		v.ValueFrom = &corev1.EnvVarSource{ResourceFieldRef: ref}
	}
	return v
}

// Matches reports whether v is structurally equal to this patch.
func (p EnvPatch) Matches(v corev1.EnvVar) bool {
	return apiequality.Semantic.DeepEqual(p.EnvVar(), v)
}

// VolumeMount describes one mount of an init container.
type VolumeMount struct {
	MountPath string
	SubPath   string
	Name      string
}

// InitContainerSpec declares one init container to append to the pod
// template.
type InitContainerSpec struct {
	Name            string
	Image           string
	ImagePullPolicy corev1.PullPolicy
	Command         []string
	Env             []EnvPatch
	VolumeMounts    []VolumeMount

	// Security settings. Capabilities are additive; the pointers are only
	// rendered when set.
	Capabilities             []corev1.Capability
	AllowPrivilegeEscalation *bool
	ReadOnlyRootFilesystem   *bool
	RunAsUser                *int64
}

// Container renders the spec as a corev1.Container.
func (s InitContainerSpec) Container() corev1.Container {
	c := corev1.Container{
		Name:            s.Name,
		Image:           s.Image,
		ImagePullPolicy: s.ImagePullPolicy,
		Command:         s.Command,
	}
	for _, e := range s.Env {
		c.Env = append(c.Env, e.EnvVar())
	}
	for _, m := range s.VolumeMounts {
		c.VolumeMounts = append(c.VolumeMounts, corev1.VolumeMount{
			MountPath: m.MountPath,
			SubPath:   m.SubPath,
			Name:      m.Name,
		})
	}
	if len(s.Capabilities) > 0 || s.AllowPrivilegeEscalation != nil ||
		s.ReadOnlyRootFilesystem != nil || s.RunAsUser != nil {
		sc := &corev1.SecurityContext{
			AllowPrivilegeEscalation: s.AllowPrivilegeEscalation,
			ReadOnlyRootFilesystem:   s.ReadOnlyRootFilesystem,
			RunAsUser:                s.RunAsUser,
		}
		if len(s.Capabilities) > 0 {
			sc.Capabilities = &corev1.Capabilities{Add: s.Capabilities}
		}
		c.SecurityContext = sc
	}
	return c
}

// ResourceLimits sizes the workload container. Requests and limits are set
// identically; the workloads are real-time packet processors with no burst
// headroom.
type ResourceLimits struct {
	CPU    string
	Memory string
}

// Requirements renders the limits as a corev1.ResourceRequirements.
func (l ResourceLimits) Requirements() corev1.ResourceRequirements {
	list := corev1.ResourceList{
		corev1.ResourceCPU:    resource.MustParse(l.CPU),
		corev1.ResourceMemory: resource.MustParse(l.Memory),
	}
	return corev1.ResourceRequirements{
		Limits:   list,
		Requests: list.DeepCopy(),
	}
}

// StatefulSetPatch is the mutation to converge onto the workload
// StatefulSet. It is computed fresh each reconciliation pass and applied
// only when the sentinel env var is absent from the target container.
type StatefulSetPatch struct {
	// TargetContainer is the name of the workload container. The container
	// is addressed by name, not index, so reordering the pod template does
	// not silently retarget the patch.
	TargetContainer string

	// Sentinel marks a patched container. Its presence in the target
	// container's env list is the sole drift-detection mechanism.
	Sentinel EnvPatch

	Env            []EnvPatch
	InitContainers []InitContainerSpec
	Limits         *ResourceLimits
	Stdin          bool
	TTY            bool

	// Capabilities to add to the target container's security context.
	Capabilities []corev1.Capability
	// Volumes to append to the pod template.
	Volumes []corev1.Volume
	// PodAnnotations to set on the pod template metadata.
	PodAnnotations map[string]string
}
