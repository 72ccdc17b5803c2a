package reconcile

import (
	"context"
	"fmt"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/api/meta"
	"sigs.k8s.io/controller-runtime/pkg/client"

	operatorerrors "github.com/omec-project/spgw-operator/internal/errors"
	"github.com/omec-project/spgw-operator/internal/logging"
	"github.com/omec-project/spgw-operator/internal/metrics"
	"github.com/omec-project/spgw-operator/internal/workload"
)

// Apply converges each descriptor: list existing objects filtered by exact
// name, create when absent, full-body patch when present. Descriptors are
// processed independently and are not transactional as a group; a failure
// leaves earlier descriptors applied (at-least-once, not atomic).
func (s *Session) Apply(ctx context.Context, descriptors []workload.Descriptor) error {
	for _, d := range descriptors {
		existing, err := s.findExisting(ctx, d)
		if err != nil {
			metrics.RecordError("list")
			return err
		}

		desired := d.Desired()
		key := d.Key()

		if existing == nil {
			if err := s.client.Create(ctx, desired); err != nil {
				metrics.RecordError("create")
				return operatorerrors.WrapAPI(fmt.Errorf("failed to create %s %s/%s: %w", d.Kind(), key.Namespace, key.Name, err))
			}
			metrics.RecordOperation("create", d.Kind())
			logging.LogAuditEvent(s.log, logging.EventResourceCreated, map[string]string{
				"kind": d.Kind(), "namespace": key.Namespace, "name": key.Name,
			})
			continue
		}

		s.log.Info("resource exists, patching", "kind", d.Kind(), "namespace", key.Namespace, "name", key.Name)
		// Full-body patch: the merge is computed from the live object to the
		// complete desired body. Server-populated identity metadata is
		// carried over so it does not appear as a deletion in the patch.
		desired.SetResourceVersion(existing.GetResourceVersion())
		desired.SetUID(existing.GetUID())
		desired.SetCreationTimestamp(existing.GetCreationTimestamp())
		if err := s.client.Patch(ctx, desired, client.MergeFrom(existing)); err != nil {
			metrics.RecordError("patch")
			return operatorerrors.WrapAPI(fmt.Errorf("failed to patch %s %s/%s: %w", d.Kind(), key.Namespace, key.Name, err))
		}
		metrics.RecordOperation("patch", d.Kind())
		logging.LogAuditEvent(s.log, logging.EventResourcePatched, map[string]string{
			"kind": d.Kind(), "namespace": key.Namespace, "name": key.Name,
		})
	}
	return nil
}

// Delete removes every descriptor by name and namespace. Deleting an object
// that no longer exists is success: delete is idempotent.
func (s *Session) Delete(ctx context.Context, descriptors []workload.Descriptor) error {
	for _, d := range descriptors {
		key := d.Key()
		if err := s.client.Delete(ctx, d.Desired()); err != nil {
			if apierrors.IsNotFound(err) {
				continue
			}
			metrics.RecordError("delete")
			return operatorerrors.WrapAPI(fmt.Errorf("failed to delete %s %s/%s: %w", d.Kind(), key.Namespace, key.Name, err))
		}
		metrics.RecordOperation("delete", d.Kind())
		logging.LogAuditEvent(s.log, logging.EventResourceDeleted, map[string]string{
			"kind": d.Kind(), "namespace": key.Namespace, "name": key.Name,
		})
	}
	return nil
}

// findExisting lists the descriptor's kind in its namespace and returns the
// object with the descriptor's exact name, or nil when absent.
func (s *Session) findExisting(ctx context.Context, d workload.Descriptor) (client.Object, error) {
	list := d.NewList()
	key := d.Key()
	if err := s.client.List(ctx, list, client.InNamespace(key.Namespace)); err != nil {
		return nil, operatorerrors.WrapAPI(fmt.Errorf("failed to list %s in %s: %w", d.Kind(), key.Namespace, err))
	}

	items, err := meta.ExtractList(list)
	if err != nil {
		return nil, fmt.Errorf("failed to extract %s list items: %w", d.Kind(), err)
	}
	for _, item := range items {
		obj, ok := item.(client.Object)
		if !ok {
			continue
		}
		if obj.GetName() == key.Name {
			return obj, nil
		}
	}
	return nil, nil
}
