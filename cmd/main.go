/*
Copyright 2025.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import all Kubernetes client auth plugins (e.g. Azure, GCP, OIDC, etc.)
	// to ensure that exec-entrypoint and run can make use of them.
	_ "k8s.io/client-go/plugin/pkg/client/auth"

	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/client-go/kubernetes"
	clientgoscheme "k8s.io/client-go/kubernetes/scheme"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"

	"github.com/omec-project/spgw-operator/internal/bundle"
	"github.com/omec-project/spgw-operator/internal/config"
	"github.com/omec-project/spgw-operator/internal/hook"
	"github.com/omec-project/spgw-operator/internal/push"
	"github.com/omec-project/spgw-operator/internal/reconcile"
	"github.com/omec-project/spgw-operator/internal/status"
	"github.com/omec-project/spgw-operator/internal/workload"
)

// exitDefer asks the external dispatcher to re-deliver the event later.
const exitDefer = 2

var setupLog = ctrl.Log.WithName("setup")

type flags struct {
	configPath string
	workload   string
	namespace  string
	appName    string
	pod        string
}

func main() {
	if err := run(); err != nil {
		if hook.IsDefer(err) {
			setupLog.Info("event deferred; expecting re-delivery")
			os.Exit(exitDefer)
		}
		setupLog.Error(err, "command failed")
		os.Exit(1)
	}
}

func run() error {
	var f flags

	root := &cobra.Command{
		Use:           "spgw-operator",
		Short:         "Reconciles the Kubernetes footprint of the SPGW workloads",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&f.configPath, "config", "", "path to the operator config file")
	root.PersistentFlags().StringVar(&f.workload, "workload", "", "workload role override (spgwc or spgwu)")
	root.PersistentFlags().StringVar(&f.namespace, "namespace", "", "target namespace override")
	root.PersistentFlags().StringVar(&f.appName, "app-name", "", "application name override")
	root.PersistentFlags().StringVar(&f.pod, "pod", "", "workload pod name for file pushes (defaults to <app-name>-0)")

	for _, event := range []struct {
		use   string
		short string
		fn    func(context.Context, *hook.Handlers) error
	}{
		{"install", "Create the workload's Kubernetes resources",
			func(ctx context.Context, h *hook.Handlers) error { return h.OnInstall(ctx) }},
		{"config-changed", "Patch the workload StatefulSet if not already patched",
			func(ctx context.Context, h *hook.Handlers) error { return h.OnConfigChanged(ctx) }},
		{"pebble-ready", "Push script and config files into the running container",
			func(ctx context.Context, h *hook.Handlers) error { return h.OnPebbleReady(ctx) }},
		{"remove", "Delete the workload's Kubernetes resources",
			func(ctx context.Context, h *hook.Handlers) error { return h.OnRemove(ctx) }},
	} {
		fn := event.fn
		root.AddCommand(&cobra.Command{
			Use:   event.use,
			Short: event.short,
			RunE: func(cmd *cobra.Command, _ []string) error {
				handlers, err := buildHandlers(&f, cmd.Use == "pebble-ready")
				if err != nil {
					return err
				}
				return fn(cmd.Context(), handlers)
			},
		})
	}

	ctrl.SetLogger(zap.New(zap.UseDevMode(false)))
	return root.Execute()
}

func buildHandlers(f *flags, needsPusher bool) (*hook.Handlers, error) {
	cfg, err := loadConfig(f)
	if err != nil {
		return nil, err
	}

	bundles, err := loadBundles(cfg)
	if err != nil {
		return nil, err
	}

	restCfg, err := ctrl.GetConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load cluster config: %w", err)
	}

	scheme := runtime.NewScheme()
	if err := clientgoscheme.AddToScheme(scheme); err != nil {
		return nil, fmt.Errorf("failed to build scheme: %w", err)
	}

	c, err := client.New(restCfg, client.Options{Scheme: scheme})
	if err != nil {
		return nil, fmt.Errorf("failed to build cluster client: %w", err)
	}

	log := ctrl.Log.WithName("hook").WithValues("workload", cfg.Workload, "app", cfg.AppName)
	handlers := &hook.Handlers{
		Session: reconcile.NewSession(c, log),
		Config:  cfg,
		Bundles: bundles,
		Status:  status.LogRecorder{Log: log},
		Log:     log,
	}

	if needsPusher {
		clientset, err := kubernetes.NewForConfig(restCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to build clientset: %w", err)
		}
		pod := f.pod
		if pod == "" {
			pod = cfg.AppName + "-0"
		}
		handlers.Pusher = &push.SPDYExecutor{
			Config:    restCfg,
			Clientset: clientset,
			Namespace: cfg.Namespace,
			Pod:       pod,
			Container: cfg.Workload,
		}
	}

	return handlers, nil
}

func loadConfig(f *flags) (*config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, err
	}
	// Flags win over file and environment.
	if f.workload != "" {
		cfg.Workload = f.workload
	}
	if f.namespace != "" {
		cfg.Namespace = f.namespace
	}
	if f.appName != "" {
		cfg.AppName = f.appName
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadBundles(cfg *config.Config) (workload.Bundles, error) {
	root := os.DirFS(cfg.BundleRoot)
	var bundles workload.Bundles
	var err error

	if bundles.Scripts, err = bundle.Load(root, "scripts/*", cfg.Namespace); err != nil {
		return workload.Bundles{}, err
	}
	if bundles.Config, err = bundle.Load(root, "config/*", cfg.Namespace); err != nil {
		return workload.Bundles{}, err
	}
	if bundles.RunScripts, err = bundle.Load(root, "run/*", cfg.Namespace); err != nil {
		return workload.Bundles{}, err
	}
	return bundles, nil
}
