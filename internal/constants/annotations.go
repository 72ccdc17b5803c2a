package constants

// AnnotationCNINetworks requests the additional Multus interfaces the
// user-plane needs for S1-U and SGi traffic.
const AnnotationCNINetworks = "k8s.v1.cni.cncf.io/networks"

// CNINetworksSPGWU is the Multus attachment list for the spgwu pod.
const CNINetworksSPGWU = `[
    {
        "name": "s1u-net",
        "interface": "s1u-net",
        "ips": "11.1.1.110/24"
    },
    {
        "name": "sgi-net",
        "interface": "sgi-net",
        "ips": "13.1.1.110/24"
    }
]`
