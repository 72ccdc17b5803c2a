package constants

// Init container images. These are fixed upstream references; the workload
// images themselves are owned by the deployment artifact, not the operator.
const (
	ImageKubernetesEntrypoint = "quay.io/stackanetes/kubernetes-entrypoint:v0.3.1"
	ImagePodInit              = "docker.io/omecproject/pod-init:1.0.0"
)
