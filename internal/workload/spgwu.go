package workload

import (
	"fmt"

	corev1 "k8s.io/api/core/v1"
	"k8s.io/utils/ptr"

	"github.com/omec-project/spgw-operator/internal/config"
	"github.com/omec-project/spgw-operator/internal/constants"
	operatorerrors "github.com/omec-project/spgw-operator/internal/errors"
)

// buildSPGWU returns the user plane's NodePort Service and the ConfigMaps
// carrying its script bundles. The scripts bundle is mandatory: the
// iptables init container executes from it.
func buildSPGWU(cfg *config.Config, bundles Bundles) ([]Descriptor, error) {
	if cfg.AppName == "" || cfg.Namespace == "" {
		return nil, operatorerrors.WrapConfig(fmt.Errorf("app name and namespace are required"))
	}
	if bundles.Scripts.IsEmpty() {
		return nil, operatorerrors.WrapConfig(fmt.Errorf("scripts bundle is empty"))
	}

	descriptors := []Descriptor{
		ServiceDescriptor{
			Namespace: cfg.Namespace,
			Name:      constants.ServiceDPComm,
			Labels:    selectorLabels(cfg.AppName),
			Selector:  selectorLabels(cfg.AppName),
			Type:      corev1.ServiceTypeNodePort,
			Ports: []ServicePort{
				{
					Name:     "dp-comm",
					Port:     constants.PortDPComm,
					Protocol: corev1.ProtocolUDP,
					NodePort: constants.NodePortDPComm,
				},
			},
		},
		ConfigMapDescriptor{
			Namespace: cfg.Namespace,
			Name:      constants.ConfigMapSPGWUScripts,
			Labels:    configMapLabels(cfg.AppName),
			Data:      bundles.Scripts,
		},
	}

	if !bundles.Config.IsEmpty() {
		descriptors = append(descriptors, ConfigMapDescriptor{
			Namespace: cfg.Namespace,
			Name:      constants.ConfigMapSPGWUScripts + "-config",
			Labels:    configMapLabels(cfg.AppName),
			Data:      bundles.Config,
		})
	}
	if !bundles.RunScripts.IsEmpty() {
		descriptors = append(descriptors, ConfigMapDescriptor{
			Namespace: cfg.Namespace,
			Name:      constants.ConfigMapSPGWUScripts + "-run",
			Labels:    configMapLabels(cfg.AppName),
			Data:      bundles.RunScripts,
		})
	}

	return descriptors, nil
}

// spgwuStatefulSetPatch mutates the spgwu container with packet-processing
// capabilities, the iptables init container, Multus interfaces, and fixed
// resource limits. MEM_LIMIT is the sentinel for patch detection.
func spgwuStatefulSetPatch() *StatefulSetPatch {
	sentinel := EnvPatch{
		Name: constants.EnvMemLimit,
		ResourceFieldRef: &ResourceFieldRef{
			ContainerName: constants.WorkloadSPGWU,
			Resource:      "limits.memory",
			Divisor:       constants.MemLimitDivisor,
		},
	}

	return &StatefulSetPatch{
		TargetContainer: constants.WorkloadSPGWU,
		Sentinel:        sentinel,
		Env:             []EnvPatch{sentinel},
		InitContainers: []InitContainerSpec{
			{
				Name:            constants.InitContainerIptablesInit,
				Image:           constants.ImagePodInit,
				ImagePullPolicy: corev1.PullIfNotPresent,
				Command:         []string{constants.PathDPScripts + "/setup-af-iface.sh"},
				Capabilities:    []corev1.Capability{"IPC_LOCK", "NET_ADMIN"},
				VolumeMounts: []VolumeMount{
					{
						MountPath: constants.PathDPScripts + "/setup-af-iface.sh",
						SubPath:   "setup-af-iface.sh",
						Name:      constants.VolumeDPScript,
					},
				},
			},
		},
		Limits:       &ResourceLimits{CPU: "4", Memory: "8Gi"},
		Stdin:        true,
		TTY:          true,
		Capabilities: []corev1.Capability{"IPC_LOCK", "NET_ADMIN"},
		Volumes: []corev1.Volume{
			{
				Name: constants.VolumeDPScript,
				VolumeSource: corev1.VolumeSource{
					ConfigMap: &corev1.ConfigMapVolumeSource{
						LocalObjectReference: corev1.LocalObjectReference{
							Name: constants.ConfigMapSPGWUScripts,
						},
						DefaultMode: ptr.To(constants.ScriptVolumeMode),
					},
				},
			},
		},
		PodAnnotations: map[string]string{
			constants.AnnotationCNINetworks: constants.CNINetworksSPGWU,
		},
	}
}
