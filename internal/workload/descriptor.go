// Package workload declares the desired Kubernetes footprint of the SPGW
// workloads: resource descriptors for Services and ConfigMaps, the
// StatefulSet patch model, and the per-workload desired-state builders.
package workload

import (
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/types"
	"sigs.k8s.io/controller-runtime/pkg/client"
)

// Descriptor is a declarative specification of one namespaced resource.
// Name+namespace is the identity key used for existence checks; a
// descriptor carries enough information to create the object or to fully
// replace an existing one, so the reconciler never needs descriptor-side
// read-modify-write.
type Descriptor interface {
	// Kind returns the Kubernetes kind, for logs and metrics.
	Kind() string
	// Key returns the identity of the described object.
	Key() types.NamespacedName
	// Desired returns the full desired object body.
	Desired() client.Object
	// NewList returns an empty list receiver for existence checks.
	NewList() client.ObjectList
}

// ServicePort describes one port of a Service descriptor.
type ServicePort struct {
	Name     string
	Port     int32
	Protocol corev1.Protocol
	// NodePort is only honored for NodePort services; zero means
	// cluster-assigned.
	NodePort int32
}

// ServiceDescriptor declares a Service.
type ServiceDescriptor struct {
	Namespace string
	Name      string
	Labels    map[string]string
	Type      corev1.ServiceType
	Selector  map[string]string
	Ports     []ServicePort
}

// Kind implements Descriptor.
func (d ServiceDescriptor) Kind() string { return "Service" }

// Key implements Descriptor.
func (d ServiceDescriptor) Key() types.NamespacedName {
	return types.NamespacedName{Namespace: d.Namespace, Name: d.Name}
}

// Desired implements Descriptor.
func (d ServiceDescriptor) Desired() client.Object {
	ports := make([]corev1.ServicePort, 0, len(d.Ports))
	for _, p := range d.Ports {
		ports = append(ports, corev1.ServicePort{
			Name:     p.Name,
			Port:     p.Port,
			Protocol: p.Protocol,
			NodePort: p.NodePort,
		})
	}
	return &corev1.Service{
		TypeMeta: metav1.TypeMeta{
			Kind:       "Service",
			APIVersion: "v1",
		},
		ObjectMeta: metav1.ObjectMeta{
			Namespace: d.Namespace,
			Name:      d.Name,
			Labels:    d.Labels,
		},
		Spec: corev1.ServiceSpec{
			Type:     d.Type,
			Selector: d.Selector,
			Ports:    ports,
		},
	}
}

// NewList implements Descriptor.
func (d ServiceDescriptor) NewList() client.ObjectList { return &corev1.ServiceList{} }

// ConfigMapDescriptor declares a ConfigMap whose data is a file bundle.
type ConfigMapDescriptor struct {
	Namespace string
	Name      string
	Labels    map[string]string
	Data      map[string]string
}

// Kind implements Descriptor.
func (d ConfigMapDescriptor) Kind() string { return "ConfigMap" }

// Key implements Descriptor.
func (d ConfigMapDescriptor) Key() types.NamespacedName {
	return types.NamespacedName{Namespace: d.Namespace, Name: d.Name}
}

// Desired implements Descriptor.
func (d ConfigMapDescriptor) Desired() client.Object {
	return &corev1.ConfigMap{
		TypeMeta: metav1.TypeMeta{
			Kind:       "ConfigMap",
			APIVersion: "v1",
		},
		ObjectMeta: metav1.ObjectMeta{
			Namespace: d.Namespace,
			Name:      d.Name,
			Labels:    d.Labels,
		},
		Data: d.Data,
	}
}

// NewList implements Descriptor.
func (d ConfigMapDescriptor) NewList() client.ObjectList { return &corev1.ConfigMapList{} }
