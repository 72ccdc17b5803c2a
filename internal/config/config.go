// Package config loads and validates the operator configuration. Sources
// are merged with the usual priority: environment variables override the
// optional YAML config file, which overrides struct defaults.
package config

import (
	"fmt"
	"os"
	"strings"

	koanfyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/omec-project/spgw-operator/internal/constants"
	operatorerrors "github.com/omec-project/spgw-operator/internal/errors"
)

// envPrefix namespaces the operator's environment variables, e.g.
// SPGW_OPERATOR__APP_NAME -> app_name.
const envPrefix = "SPGW_OPERATOR__"

// Config is the operator configuration for a single workload instance.
type Config struct {
	// AppName is the application name the workload was deployed under. It
	// names the StatefulSet and keys the selector labels.
	AppName string `koanf:"app_name"`
	// Workload selects the reconciliation profile: spgwc or spgwu.
	Workload string `koanf:"workload"`
	// Namespace is the target namespace. Empty means autodetect from the
	// mounted ServiceAccount.
	Namespace string `koanf:"namespace"`
	// BundleRoot is the directory holding the static script/config file
	// bundles shipped with the deployment artifact.
	BundleRoot string `koanf:"bundle_root"`
}

func defaults() Config {
	return Config{
		Workload:   constants.WorkloadSPGWC,
		BundleRoot: "files",
	}
}

// Load merges defaults, the optional YAML file at configPath, and
// environment variables. Callers apply any flag overrides and then call
// Validate.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaults(), "koanf"), nil); err != nil {
		return nil, operatorerrors.WrapConfig(fmt.Errorf("failed to load defaults: %w", err))
	}

	if configPath != "" {
		if _, err := os.Stat(configPath); err != nil {
			return nil, operatorerrors.WrapConfig(fmt.Errorf("config file not found: %s", configPath))
		}
		if err := k.Load(file.Provider(configPath), koanfyaml.Parser()); err != nil {
			return nil, operatorerrors.WrapConfig(fmt.Errorf("failed to load config file %s: %w", configPath, err))
		}
	}

	envProvider := env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, operatorerrors.WrapConfig(fmt.Errorf("failed to load environment variables: %w", err))
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, operatorerrors.WrapConfig(fmt.Errorf("failed to unmarshal configuration: %w", err))
	}
	return &cfg, nil
}

// Validate checks required keys and resolves the namespace if unset.
func (c *Config) Validate() error {
	if c.AppName == "" {
		return operatorerrors.WrapConfig(fmt.Errorf("app_name is required"))
	}
	switch c.Workload {
	case constants.WorkloadSPGWC, constants.WorkloadSPGWU:
	default:
		return operatorerrors.WrapConfig(fmt.Errorf("workload must be %q or %q, got %q",
			constants.WorkloadSPGWC, constants.WorkloadSPGWU, c.Workload))
	}
	if c.Namespace == "" {
		ns, err := detectNamespace()
		if err != nil {
			return operatorerrors.WrapConfig(fmt.Errorf("namespace not set and autodetection failed: %w", err))
		}
		c.Namespace = ns
	}
	return nil
}

// detectNamespace reads the namespace of the mounted ServiceAccount.
func detectNamespace() (string, error) {
	data, err := os.ReadFile(constants.ServiceAccountNamespaceFile)
	if err != nil {
		return "", err
	}
	ns := strings.TrimSpace(string(data))
	if ns == "" {
		return "", fmt.Errorf("empty namespace in %s", constants.ServiceAccountNamespaceFile)
	}
	return ns, nil
}
