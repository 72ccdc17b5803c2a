package constants

// Common Kubernetes label keys used by the operator.
const (
	LabelAppName = "app.kubernetes.io/name"

	// LabelApp is the legacy selector key carried on ConfigMaps for
	// compatibility with the upstream OMEC helm charts.
	LabelApp = "app"
)
