package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"sigs.k8s.io/controller-runtime/pkg/metrics"
)

var (
	reconcileOperationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "spgw",
			Name:      "reconcile_operations_total",
			Help:      "Total number of cluster mutations issued by the reconciler",
		},
		[]string{"verb", "kind"},
	)

	reconcileErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "spgw",
			Name:      "reconcile_errors_total",
			Help:      "Total number of reconciliation errors",
		},
		[]string{"reason"},
	)

	statefulSetPatchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "spgw",
			Name:      "statefulset_patches_total",
			Help:      "StatefulSet patch attempts by outcome (applied or already-applied)",
		},
		[]string{"outcome"},
	)

	filesPushedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "spgw",
			Name:      "files_pushed_total",
			Help:      "Total number of files pushed into workload containers",
		},
	)
)

func init() {
	metrics.Registry.MustRegister(
		reconcileOperationsTotal,
		reconcileErrorsTotal,
		statefulSetPatchesTotal,
		filesPushedTotal,
	)
}

// RecordOperation counts one issued cluster mutation.
func RecordOperation(verb, kind string) {
	reconcileOperationsTotal.WithLabelValues(verb, kind).Inc()
}

// RecordError counts one reconciliation error by reason.
func RecordError(reason string) {
	reconcileErrorsTotal.WithLabelValues(reason).Inc()
}

// RecordPatchOutcome counts one StatefulSet patch attempt.
func RecordPatchOutcome(outcome string) {
	statefulSetPatchesTotal.WithLabelValues(outcome).Inc()
}

// RecordFilePushed counts one pushed file.
func RecordFilePushed() {
	filesPushedTotal.Inc()
}
