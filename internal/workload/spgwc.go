package workload

import (
	"fmt"

	corev1 "k8s.io/api/core/v1"
	"k8s.io/utils/ptr"

	"github.com/omec-project/spgw-operator/internal/config"
	"github.com/omec-project/spgw-operator/internal/constants"
	operatorerrors "github.com/omec-project/spgw-operator/internal/errors"
)

// buildSPGWC returns the Services the control plane needs beyond what the
// deployment artifact creates: the CP communication port toward the user
// plane and the S11 interface toward the MME. The control plane ships its
// files via container pushes, not ConfigMaps.
func buildSPGWC(cfg *config.Config) ([]Descriptor, error) {
	if cfg.AppName == "" || cfg.Namespace == "" {
		return nil, operatorerrors.WrapConfig(fmt.Errorf("app name and namespace are required"))
	}

	return []Descriptor{
		ServiceDescriptor{
			Namespace: cfg.Namespace,
			Name:      constants.ServiceCPComm,
			Labels:    selectorLabels(cfg.AppName),
			Selector:  selectorLabels(cfg.AppName),
			Ports: []ServicePort{
				{
					Name:     "cp-comm",
					Port:     constants.PortCPComm,
					Protocol: corev1.ProtocolUDP,
				},
			},
		},
		ServiceDescriptor{
			Namespace: cfg.Namespace,
			Name:      constants.ServiceS11,
			Labels:    selectorLabels(cfg.AppName),
			Selector:  selectorLabels(cfg.AppName),
			Type:      corev1.ServiceTypeNodePort,
			Ports: []ServicePort{
				{
					Name:     "s11",
					Port:     constants.PortS11,
					Protocol: corev1.ProtocolUDP,
					NodePort: constants.NodePortS11,
				},
			},
		},
	}, nil
}

// spgwcStatefulSetPatch mutates the spgwc container with MME addressing,
// the dependency-check init container, and fixed resource limits. MME_ADDR
// is the sentinel: once present, the StatefulSet counts as patched.
func spgwcStatefulSetPatch() *StatefulSetPatch {
	sentinel := EnvPatch{
		Name: constants.EnvMMEAddr,
		ConfigMapKeyRef: &ConfigMapKeyRef{
			Name: constants.ConfigMapMMEIP,
			Key:  constants.ConfigMapMMEIPKey,
		},
	}

	return &StatefulSetPatch{
		TargetContainer: constants.WorkloadSPGWC,
		Sentinel:        sentinel,
		Env: []EnvPatch{
			sentinel,
			{
				Name:     constants.EnvPodIP,
				FieldRef: &FieldRef{FieldPath: "status.podIP"},
			},
			{
				Name: constants.EnvMemLimit,
				ResourceFieldRef: &ResourceFieldRef{
					ContainerName: constants.WorkloadSPGWC,
					Resource:      "limits.memory",
					Divisor:       constants.MemLimitDivisor,
				},
			},
		},
		InitContainers: []InitContainerSpec{
			{
				Name:            constants.InitContainerDepCheck,
				Image:           constants.ImageKubernetesEntrypoint,
				ImagePullPolicy: corev1.PullIfNotPresent,
				Command:         []string{"kubernetes-entrypoint"},
				Env: []EnvPatch{
					{
						Name:     constants.EnvNamespace,
						FieldRef: &FieldRef{FieldPath: "metadata.namespace", APIVersion: "v1"},
					},
					{
						Name:     constants.EnvPodName,
						FieldRef: &FieldRef{FieldPath: "metadata.name", APIVersion: "v1"},
					},
					{Name: constants.EnvPath, Value: constants.EntrypointPath},
					{Name: constants.EnvCommand, Value: constants.EntrypointCommand},
					{Name: constants.EnvDependencyPodJSON, Value: constants.EntrypointMMEDependency},
				},
				AllowPrivilegeEscalation: ptr.To(false),
				ReadOnlyRootFilesystem:   ptr.To(false),
				RunAsUser:                ptr.To(int64(0)),
			},
		},
		Limits: &ResourceLimits{CPU: "2", Memory: "2Gi"},
		Stdin:  true,
		TTY:    true,
	}
}
