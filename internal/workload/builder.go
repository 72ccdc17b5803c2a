package workload

import (
	"fmt"

	"github.com/omec-project/spgw-operator/internal/bundle"
	"github.com/omec-project/spgw-operator/internal/config"
	"github.com/omec-project/spgw-operator/internal/constants"
	operatorerrors "github.com/omec-project/spgw-operator/internal/errors"
)

// Bundles groups the static file bundles by category.
type Bundles struct {
	Scripts    bundle.Bundle
	Config     bundle.Bundle
	RunScripts bundle.Bundle
}

// Build produces the full set of resource descriptors for the configured
// workload. Pure function of its inputs; no network access.
func Build(cfg *config.Config, bundles Bundles) ([]Descriptor, error) {
	switch cfg.Workload {
	case constants.WorkloadSPGWC:
		return buildSPGWC(cfg)
	case constants.WorkloadSPGWU:
		return buildSPGWU(cfg, bundles)
	}
	return nil, operatorerrors.WrapConfig(fmt.Errorf("unknown workload %q", cfg.Workload))
}

// StatefulSetPatchFor produces the StatefulSet mutation for the configured
// workload.
func StatefulSetPatchFor(cfg *config.Config) (*StatefulSetPatch, error) {
	switch cfg.Workload {
	case constants.WorkloadSPGWC:
		return spgwcStatefulSetPatch(), nil
	case constants.WorkloadSPGWU:
		return spgwuStatefulSetPatch(), nil
	}
	return nil, operatorerrors.WrapConfig(fmt.Errorf("unknown workload %q", cfg.Workload))
}

func selectorLabels(appName string) map[string]string {
	return map[string]string{constants.LabelAppName: appName}
}

func configMapLabels(appName string) map[string]string {
	return map[string]string{
		constants.LabelAppName: appName,
		constants.LabelApp:     appName,
	}
}
