// Package reconcile converges the cluster toward the desired workload
// footprint: it applies and deletes resource descriptors, probes cluster
// privileges, and patches the workload StatefulSet. Each lifecycle event
// runs against one Session; there is no internal retry — failed passes are
// re-driven by re-delivery of the triggering event.
package reconcile

import (
	"context"

	"github.com/go-logr/logr"
	rbacv1 "k8s.io/api/rbac/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"sigs.k8s.io/controller-runtime/pkg/client"

	operatorerrors "github.com/omec-project/spgw-operator/internal/errors"
)

// Session carries the cluster client and the privilege-probe result for one
// reconciliation pass. The probe result is memoized on the session value,
// not in process-wide state, so concurrent or subsequent passes cannot
// observe a stale grant.
type Session struct {
	client client.Client
	log    logr.Logger
	authed bool
}

// NewSession returns a Session bound to the given client.
func NewSession(c client.Client, log logr.Logger) *Session {
	return &Session{client: c, log: log}
}

// CheckClusterAccess probes for sufficient cluster privileges by listing
// ClusterRoles, mirroring the access the reconciler needs for its mutating
// calls. A 403 yields (false, nil) — callers branch explicitly rather than
// handling an exception path. Any other API failure is returned as an
// ErrAPI. A successful probe is memoized for the rest of the session.
func (s *Session) CheckClusterAccess(ctx context.Context) (bool, error) {
	if s.authed {
		return true, nil
	}

	var roles rbacv1.ClusterRoleList
	if err := s.client.List(ctx, &roles, client.Limit(1)); err != nil {
		if apierrors.IsForbidden(err) {
			s.log.Info("cluster access probe denied", "reason", err.Error())
			return false, nil
		}
		return false, operatorerrors.WrapAPI(err)
	}

	s.authed = true
	return true, nil
}
