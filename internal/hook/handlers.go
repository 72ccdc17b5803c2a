// Package hook maps workload lifecycle events onto the reconciler core.
// Each handler runs one synchronous pass to completion; retry is expressed
// as a defer signal that asks the external dispatcher to re-deliver the
// event later.
package hook

import (
	"context"
	"errors"

	"github.com/go-logr/logr"
	"k8s.io/apimachinery/pkg/types"

	"github.com/omec-project/spgw-operator/internal/config"
	"github.com/omec-project/spgw-operator/internal/constants"
	"github.com/omec-project/spgw-operator/internal/push"
	"github.com/omec-project/spgw-operator/internal/reconcile"
	"github.com/omec-project/spgw-operator/internal/status"
	"github.com/omec-project/spgw-operator/internal/workload"
)

// ErrDefer tells the dispatcher to re-deliver the triggering event later.
// It is a signal, not a failure.
var ErrDefer = errors.New("event deferred")

// IsDefer reports whether err is a defer signal.
func IsDefer(err error) bool { return errors.Is(err, ErrDefer) }

// blockedMessage is shown to the operator when the privilege probe fails.
const blockedMessage = "insufficient cluster permissions; grant the application cluster access to continue"

// Handlers wires lifecycle events to the reconciler core for one workload
// instance.
type Handlers struct {
	Session *reconcile.Session
	Config  *config.Config
	Bundles workload.Bundles
	Status  status.Recorder
	Log     logr.Logger

	// Pusher is only needed for the pebble-ready event; nil elsewhere.
	Pusher push.Executor
}

// OnInstall creates the workload's Kubernetes resources.
func (h *Handlers) OnInstall(ctx context.Context) error {
	if err := h.authGate(ctx); err != nil {
		return err
	}

	h.Status.Record(status.Maintenance("creating kubernetes resources"))
	descriptors, err := workload.Build(h.Config, h.Bundles)
	if err != nil {
		return err
	}
	if err := h.Session.Apply(ctx, descriptors); err != nil {
		return err
	}
	h.Status.Record(status.Active())
	return nil
}

// OnConfigChanged ensures the workload StatefulSet carries the required
// mutation. The patch is re-attempted on every delivery until the sentinel
// env var is observed.
func (h *Handlers) OnConfigChanged(ctx context.Context) error {
	if err := h.authGate(ctx); err != nil {
		return err
	}

	patch, err := workload.StatefulSetPatchFor(h.Config)
	if err != nil {
		return err
	}

	key := types.NamespacedName{Namespace: h.Config.Namespace, Name: h.Config.AppName}
	outcome, err := h.Session.PatchIfNeeded(ctx, key, patch)
	if err != nil {
		return err
	}
	if outcome == reconcile.OutcomeApplied {
		h.Status.Record(status.Maintenance("waiting for changes to apply"))
	}
	h.Status.Record(status.Active())
	return nil
}

// OnRemove deletes the workload's Kubernetes resources.
func (h *Handlers) OnRemove(ctx context.Context) error {
	if err := h.authGate(ctx); err != nil {
		return err
	}

	descriptors, err := workload.Build(h.Config, h.Bundles)
	if err != nil {
		return err
	}
	return h.Session.Delete(ctx, descriptors)
}

// OnPebbleReady pushes the script and config bundles into the running
// workload container. Starting the workload service is owned by the
// container supervisor.
func (h *Handlers) OnPebbleReady(ctx context.Context) error {
	scripts, configs := h.pushPaths()

	if err := push.Files(ctx, h.Log, h.Pusher, h.Bundles.Scripts, scripts, constants.PushedFileMode); err != nil {
		return err
	}
	if err := push.Files(ctx, h.Log, h.Pusher, h.Bundles.Config, configs, constants.PushedFileMode); err != nil {
		return err
	}
	h.Status.Record(status.Active())
	return nil
}

// authGate probes cluster access once per session. Denied access surfaces a
// blocked status and a defer signal without issuing any mutating call.
func (h *Handlers) authGate(ctx context.Context) error {
	ok, err := h.Session.CheckClusterAccess(ctx)
	if err != nil {
		return err
	}
	if !ok {
		h.Status.Record(status.Blocked(blockedMessage))
		return ErrDefer
	}
	return nil
}

func (h *Handlers) pushPaths() (scripts, configs string) {
	if h.Config.Workload == constants.WorkloadSPGWU {
		return constants.PathDPScripts, constants.PathDPConfig
	}
	return constants.PathCPScripts, constants.PathCPConfig
}
