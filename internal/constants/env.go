package constants

// Environment variable keys injected into the workload containers.
const (
	// Kubernetes metadata
	EnvNamespace = "NAMESPACE"
	EnvPodName   = "POD_NAME"
	EnvPodIP     = "POD_IP"

	// Workload addressing and sizing. EnvMMEAddr and EnvMemLimit also act
	// as the per-workload sentinel markers for patch detection.
	EnvMMEAddr  = "MME_ADDR"
	EnvMemLimit = "MEM_LIMIT"

	// kubernetes-entrypoint dependency checker
	EnvPath              = "PATH"
	EnvCommand           = "COMMAND"
	EnvDependencyPodJSON = "DEPENDENCY_POD_JSON"
)

// Values for the kubernetes-entrypoint dependency checker.
const (
	EntrypointPath          = "/usr/local/sbin:/usr/local/bin:/usr/sbin:/usr/bin:/sbin:/bin:/"
	EntrypointCommand       = "echo done"
	EntrypointMMEDependency = `[{"labels": {"app.kubernetes.io/name": "mme"}, "requireSameNode": false}]`
)

// MemLimitDivisor scales limits.memory into MiB for the MEM_LIMIT env var.
const MemLimitDivisor = "1Mi"
