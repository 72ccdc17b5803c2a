// Package status models the operator-visible unit status. Each lifecycle
// event leaves the unit in exactly one state; the recorder is how the core
// surfaces transitions without owning the presentation layer.
package status

import "github.com/go-logr/logr"

// State enumerates the unit states the operator can report.
type State string

const (
	// StateActive means the workload's Kubernetes footprint is converged.
	StateActive State = "active"
	// StateMaintenance means a convergence step is in flight.
	StateMaintenance State = "maintenance"
	// StateBlocked means operator action is required (typically granting
	// cluster privileges) before reconciliation can proceed.
	StateBlocked State = "blocked"
	// StateError means an unrecoverable failure surfaced to the operator.
	StateError State = "error"
)

// Status pairs a state with a human-readable message.
type Status struct {
	State   State
	Message string
}

// Active returns an active status with no message.
func Active() Status { return Status{State: StateActive} }

// Maintenance returns a maintenance status with the given message.
func Maintenance(message string) Status {
	return Status{State: StateMaintenance, Message: message}
}

// Blocked returns a blocked status with the given message.
func Blocked(message string) Status {
	return Status{State: StateBlocked, Message: message}
}

// Recorder receives unit status transitions.
type Recorder interface {
	Record(s Status)
}

// LogRecorder records status transitions as structured log lines.
type LogRecorder struct {
	Log logr.Logger
}

// Record implements Recorder.
func (r LogRecorder) Record(s Status) {
	r.Log.Info("unit status changed", "state", string(s.State), "message", s.Message)
}
