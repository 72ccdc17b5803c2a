// Package logging provides the audit trail for the operator's mutating
// actions. Audit events are distinct from regular debug/info logs and are
// tagged with "audit=true" for easy filtering in log aggregation systems.
package logging

import "github.com/go-logr/logr"

// Event names one auditable mutating action. The set is closed: every
// cluster write and container file push maps to exactly one event.
type Event string

const (
	EventResourceCreated    Event = "resource_created"
	EventResourcePatched    Event = "resource_patched"
	EventResourceDeleted    Event = "resource_deleted"
	EventStatefulSetPatched Event = "statefulset_patched"
	EventFilePushed         Event = "file_pushed"
)

// LogAuditEvent logs one structured audit event with the given fields.
func LogAuditEvent(logger logr.Logger, event Event, fields map[string]string) {
	auditLogger := logger.WithValues("audit", "true", "event_type", string(event))
	for key, value := range fields {
		auditLogger = auditLogger.WithValues(key, value)
	}
	auditLogger.Info("Operator audit event")
}
