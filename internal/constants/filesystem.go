package constants

// Paths inside the workload containers that receive pushed files.
const (
	PathCPScripts = "/opt/cp/scripts"
	PathCPConfig  = "/etc/cp/config"
	PathDPScripts = "/opt/dp/scripts"
	PathDPConfig  = "/etc/dp/config"
)

// ServiceAccountNamespaceFile holds the namespace of the pod's mounted
// ServiceAccount; used for namespace autodetection when running in-cluster.
const ServiceAccountNamespaceFile = "/var/run/secrets/kubernetes.io/serviceaccount/namespace"

// PushedFileMode is the permission set on every pushed script/config file.
// The run scripts must be executable by the container supervisor.
const PushedFileMode = 0o755

// ScriptVolumeMode is the defaultMode of ConfigMap-backed script volumes.
const ScriptVolumeMode = int32(0o755)
