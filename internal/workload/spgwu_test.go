package workload

import (
	"testing"

	corev1 "k8s.io/api/core/v1"

	"github.com/omec-project/spgw-operator/internal/bundle"
	"github.com/omec-project/spgw-operator/internal/config"
	operatorerrors "github.com/omec-project/spgw-operator/internal/errors"
)

func spgwuConfig() *config.Config {
	return &config.Config{AppName: "spgwu", Workload: "spgwu", Namespace: "omec"}
}

func spgwuBundles() Bundles {
	return Bundles{
		Scripts: bundle.Bundle{"setup-af-iface.sh": "#!/bin/sh\n"},
	}
}

func TestBuildSPGWUService(t *testing.T) {
	descriptors, err := Build(spgwuConfig(), spgwuBundles())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(descriptors) != 2 {
		t.Fatalf("expected 2 descriptors, got %d", len(descriptors))
	}

	svc, ok := descriptors[0].Desired().(*corev1.Service)
	if !ok {
		t.Fatalf("expected first descriptor to be a Service, got %T", descriptors[0].Desired())
	}
	if svc.Name != "spgwu-dp-comm" {
		t.Fatalf("expected service spgwu-dp-comm, got %q", svc.Name)
	}
	if svc.Spec.Type != corev1.ServiceTypeNodePort {
		t.Fatalf("expected NodePort service, got %q", svc.Spec.Type)
	}
	if len(svc.Spec.Ports) != 1 {
		t.Fatalf("expected 1 port, got %d", len(svc.Spec.Ports))
	}
	port := svc.Spec.Ports[0]
	if port.Port != 8085 || port.NodePort != 30020 || port.Protocol != corev1.ProtocolUDP {
		t.Fatalf("unexpected port shape: %+v", port)
	}
	if svc.Spec.Selector["app.kubernetes.io/name"] != "spgwu" {
		t.Fatalf("unexpected selector: %v", svc.Spec.Selector)
	}
}

func TestBuildSPGWUConfigMap(t *testing.T) {
	descriptors, err := Build(spgwuConfig(), spgwuBundles())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cm, ok := descriptors[1].Desired().(*corev1.ConfigMap)
	if !ok {
		t.Fatalf("expected second descriptor to be a ConfigMap, got %T", descriptors[1].Desired())
	}
	if cm.Name != "spgwu" {
		t.Fatalf("expected configmap spgwu, got %q", cm.Name)
	}
	if cm.Labels["app.kubernetes.io/name"] != "spgwu" || cm.Labels["app"] != "spgwu" {
		t.Fatalf("configmap must carry both label keys, got %v", cm.Labels)
	}
	if _, ok := cm.Data["setup-af-iface.sh"]; !ok {
		t.Fatalf("expected scripts bundle in configmap data, got %v", cm.Data)
	}
}

func TestBuildSPGWUOptionalBundles(t *testing.T) {
	bundles := spgwuBundles()
	bundles.Config = bundle.Bundle{"interface.cfg": "mode = af_packet\n"}
	bundles.RunScripts = bundle.Bundle{"run.sh": "#!/bin/sh\n"}

	descriptors, err := Build(spgwuConfig(), bundles)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(descriptors) != 4 {
		t.Fatalf("expected 4 descriptors with all bundle categories, got %d", len(descriptors))
	}
}

func TestBuildSPGWUEmptyScriptsBundle(t *testing.T) {
	_, err := Build(spgwuConfig(), Bundles{})
	if err == nil {
		t.Fatal("expected error for empty scripts bundle")
	}
	if !operatorerrors.IsConfig(err) {
		t.Fatalf("expected config error, got %v", err)
	}
}

func TestSPGWUStatefulSetPatch(t *testing.T) {
	patch, err := StatefulSetPatchFor(spgwuConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if patch.TargetContainer != "spgwu" {
		t.Fatalf("expected target container spgwu, got %q", patch.TargetContainer)
	}
	if patch.Sentinel.Name != "MEM_LIMIT" {
		t.Fatalf("expected MEM_LIMIT sentinel, got %q", patch.Sentinel.Name)
	}
	if patch.Sentinel.ResourceFieldRef == nil || patch.Sentinel.ResourceFieldRef.Resource != "limits.memory" {
		t.Fatalf("sentinel must reference limits.memory, got %+v", patch.Sentinel.ResourceFieldRef)
	}
	if patch.Limits.CPU != "4" || patch.Limits.Memory != "8Gi" {
		t.Fatalf("unexpected limits: %+v", patch.Limits)
	}
	if len(patch.InitContainers) != 1 || patch.InitContainers[0].Name != "spgwu-iptables-init" {
		t.Fatalf("expected spgwu-iptables-init init container, got %+v", patch.InitContainers)
	}
	if len(patch.Volumes) != 1 || patch.Volumes[0].Name != "dp-script" {
		t.Fatalf("expected dp-script volume, got %+v", patch.Volumes)
	}
	if _, ok := patch.PodAnnotations["k8s.v1.cni.cncf.io/networks"]; !ok {
		t.Fatalf("expected CNI networks annotation, got %v", patch.PodAnnotations)
	}
	if !patch.Stdin || !patch.TTY {
		t.Fatal("expected stdin and tty set")
	}
}

func TestSPGWUInitContainerShape(t *testing.T) {
	patch, err := StatefulSetPatchFor(spgwuConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	c := patch.InitContainers[0].Container()
	if c.Image != "docker.io/omecproject/pod-init:1.0.0" {
		t.Fatalf("unexpected image %q", c.Image)
	}
	if c.SecurityContext == nil || c.SecurityContext.Capabilities == nil {
		t.Fatal("expected capabilities on init container")
	}
	got := c.SecurityContext.Capabilities.Add
	if len(got) != 2 || got[0] != "IPC_LOCK" || got[1] != "NET_ADMIN" {
		t.Fatalf("unexpected capabilities %v", got)
	}
	if len(c.VolumeMounts) != 1 || c.VolumeMounts[0].SubPath != "setup-af-iface.sh" {
		t.Fatalf("unexpected volume mounts %+v", c.VolumeMounts)
	}
}
