/*
Copyright 2026.

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

package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/healthz"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"
	ctrlmetrics "sigs.k8s.io/controller-runtime/pkg/metrics"
	metricsserver "sigs.k8s.io/controller-runtime/pkg/metrics/server"

	"github.com/hive-operator/internal/app"
)

var (
	operatorCfg = app.DefaultOperatorConfig()

	metricsAddr string
	probeAddr   string
	leaderElect bool
	zapOpts     = zap.Options{Development: false, TimeEncoder: zapcore.ISO8601TimeEncoder}
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the HiveCluster controller",
	Long: `Run the HiveCluster controller against the cluster of the current
kubeconfig or in-cluster configuration.

Clusters labeled hive.hiveops.io/operator-instance-id are handled only by
the operator started with the matching --instance-id. The default instance
also handles unlabeled clusters.`,
	Args: cobra.NoArgs,
	RunE: runOperator,
}

func init() {
	f := runCmd.Flags()
	f.StringVar(&metricsAddr, "metrics-bind-address", ":8080", "The address the metrics endpoint binds to. Use 0 to disable it.")
	f.StringVar(&probeAddr, "health-probe-bind-address", ":8081", "The address the probe endpoint binds to.")
	f.BoolVar(&leaderElect, "leader-elect", false, "Enable leader election for the controller manager.")

	f.IntVar(&operatorCfg.MaxConcurrentReconciles, "max-concurrent-reconciles", operatorCfg.MaxConcurrentReconciles,
		"Number of clusters reconciled in parallel.")
	f.StringVar(&operatorCfg.ResyncSchedule, "resync-schedule", operatorCfg.ResyncSchedule,
		"Cron expression or descriptor of the periodic full reconcile.")
	f.DurationVar(&operatorCfg.APITimeout, "api-timeout", operatorCfg.APITimeout, "Timeout of a single platform API call.")
	f.DurationVar(&operatorCfg.AdapterTimeout, "adapter-timeout", operatorCfg.AdapterTimeout,
		"Timeout for resolving the external references of one cluster.")
	f.DurationVar(&operatorCfg.ProbeTimeout, "probe-timeout", operatorCfg.ProbeTimeout, "Timeout of one dependency probe.")
	f.DurationVar(&operatorCfg.ShutdownDrain, "shutdown-drain", operatorCfg.ShutdownDrain,
		"How long in-flight reconciles may run after a shutdown signal.")
	f.BoolVar(&operatorCfg.ProbeDependencies, "probe-dependencies", operatorCfg.ProbeDependencies,
		"Probe the metastore database and the warehouse bucket after each pass.")
	f.DurationVar(&operatorCfg.ProbeInterval, "probe-interval", operatorCfg.ProbeInterval,
		"How long probe results are reused while a cluster and its dependencies are unchanged.")
	f.StringVar(&operatorCfg.InstanceID, "instance-id", operatorCfg.InstanceID, "Operator instance id.")
	f.StringSliceVar(&operatorCfg.ExtraJVMArgs, "extra-jvm-arg", nil, "JVM argument appended for every metastore. Repeatable.")

	f.DurationVar(&operatorCfg.RateLimiter.BaseDelay, "requeue-base-delay", operatorCfg.RateLimiter.BaseDelay,
		"First backoff of a failing cluster.")
	f.DurationVar(&operatorCfg.RateLimiter.MaxDelay, "requeue-max-delay", operatorCfg.RateLimiter.MaxDelay,
		"Backoff cap of a failing cluster.")

	goflags := flag.NewFlagSet("zap", flag.ContinueOnError)
	zapOpts.BindFlags(goflags)
	f.AddGoFlagSet(goflags)
}

func runOperator(cmd *cobra.Command, _ []string) error {
	ctrl.SetLogger(zap.New(zap.UseFlagOptions(&zapOpts)))
	setupLog := ctrl.Log.WithName("setup")

	if err := operatorCfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	drain := operatorCfg.ShutdownDrain
	mgr, err := ctrl.NewManager(ctrl.GetConfigOrDie(), ctrl.Options{
		Scheme:                  scheme,
		Metrics:                 metricsserver.Options{BindAddress: metricsAddr},
		HealthProbeBindAddress:  probeAddr,
		LeaderElection:          leaderElect,
		LeaderElectionID:        fmt.Sprintf("hive-operator-%s.hive.hiveops.io", operatorCfg.InstanceID),
		GracefulShutdownTimeout: &drain,
	})
	if err != nil {
		return fmt.Errorf("unable to create manager: %w", err)
	}

	application, err := app.NewApplication(mgr, operatorCfg, ctrlmetrics.Registry)
	if err != nil {
		return fmt.Errorf("unable to create application: %w", err)
	}
	if err := application.SetupWithManager(mgr); err != nil {
		return fmt.Errorf("unable to set up controllers: %w", err)
	}

	if err := mgr.AddHealthzCheck("healthz", healthz.Ping); err != nil {
		return fmt.Errorf("unable to set up health check: %w", err)
	}
	if err := mgr.AddReadyzCheck("readyz", healthz.Ping); err != nil {
		return fmt.Errorf("unable to set up ready check: %w", err)
	}

	setupLog.Info("Starting manager",
		"instanceID", operatorCfg.InstanceID,
		"maxConcurrentReconciles", operatorCfg.MaxConcurrentReconciles,
		"resyncSchedule", operatorCfg.ResyncSchedule,
		"probeDependencies", operatorCfg.ProbeDependencies)
	if err := mgr.Start(ctrl.SetupSignalHandler()); err != nil {
		return fmt.Errorf("problem running manager: %w", err)
	}

	// Let asynchronous domain event handlers finish
	ctx, cancel := context.WithTimeout(context.Background(), drain)
	defer cancel()
	if err := application.Drain(ctx); err != nil {
		setupLog.Error(err, "Event handlers did not finish before the drain timeout")
	}
	setupLog.Info("Manager stopped")
	return nil
}
