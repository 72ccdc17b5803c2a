package constants

// Workload roles managed by the operator. The role doubles as the name of
// the workload container inside the StatefulSet pod template.
const (
	WorkloadSPGWC = "spgwc"
	WorkloadSPGWU = "spgwu"
)

// Service names and ports for the SPGW control-plane and user-plane.
const (
	ServiceCPComm = "spgwc-cp-comm"
	ServiceS11    = "spgwc-s11"
	ServiceDPComm = "spgwu-dp-comm"

	PortCPComm = int32(8085)
	PortS11    = int32(2123)
	PortDPComm = int32(8085)

	NodePortS11    = int32(32124)
	NodePortDPComm = int32(30020)
)

// ConfigMap names.
const (
	// ConfigMapMMEIP is published by the MME charm and read by spgwc for
	// control-plane addressing.
	ConfigMapMMEIP    = "mme-ip"
	ConfigMapMMEIPKey = "IP"

	ConfigMapSPGWUScripts = "spgwu"
)

// Init container names.
const (
	InitContainerDepCheck     = "spgwc-dep-check"
	InitContainerIptablesInit = "spgwu-iptables-init"
)

// VolumeDPScript exposes the spgwu ConfigMap scripts to the iptables init
// container.
const VolumeDPScript = "dp-script"
