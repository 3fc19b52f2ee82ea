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
	"flag"
	"fmt"
	"os"
	"time"

	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/log"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"

	"github.com/numtide/mpi-operator/pkg/hook"
	"github.com/numtide/mpi-operator/pkg/monitoring"
	"github.com/numtide/mpi-operator/pkg/resource-handler/controller/mpijob"
)

// version is set via build flags.
var version = "dev"

var setupLog = ctrl.Log.WithName("setup")

// config holds the command line settings.
type config struct {
	bindAddr             string
	defaultImage         string
	kubectlDeliveryImage string
	shutdownTimeout      time.Duration
	maxRequestBytes      int64
}

func main() {
	var cfg config

	flag.StringVar(&cfg.bindAddr, "hook-bind-address", hook.DefaultBindAddress, "The address the sync hook binds to.")
	flag.StringVar(&cfg.defaultImage, "default-image", mpijob.DefaultImage,
		"Launcher and worker image for MPIJobs that do not set spec.image.")
	flag.DurationVar(&cfg.shutdownTimeout, "shutdown-timeout", 30*time.Second,
		"How long in-flight sync requests may take once the server is stopping.")
	flag.Int64Var(&cfg.maxRequestBytes, "max-request-bytes", hook.DefaultMaxRequestBytes,
		"Largest sync request body the hook accepts.")
	flag.Usage = func() {
		out := flag.CommandLine.Output()
		_, _ = out.Write([]byte("Usage: mpi-operator [flags] [kubectl-delivery-image]\n"))
		flag.PrintDefaults()
	}

	opts := zap.Options{Development: true}
	opts.BindFlags(flag.CommandLine)
	flag.Parse()

	ctrl.SetLogger(zap.New(zap.UseFlagOptions(&opts)))

	// The first positional argument overrides the kubectl delivery image.
	cfg.kubectlDeliveryImage = flag.Arg(0)

	if err := run(ctrl.SetupSignalHandler(), cfg); err != nil {
		setupLog.Error(err, "problem running sync hook")
		os.Exit(1)
	}
}

// run serves the sync hook until ctx is cancelled. Traces are flushed before
// it returns, also on failure.
func run(ctx context.Context, cfg config) error {
	shutdownTracing, err := monitoring.InitTracing(ctx, "mpi-operator", version)
	if err != nil {
		return fmt.Errorf("unable to initialise tracing: %w", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			setupLog.Error(err, "failed to flush traces")
		}
	}()

	builder := mpijob.NewBuilder(cfg.kubectlDeliveryImage)
	builder.DefaultImage = cfg.defaultImage

	server := hook.NewServer(hook.NewHandler(builder), hook.Options{
		BindAddress:     cfg.bindAddr,
		ShutdownTimeout: cfg.shutdownTimeout,
		MaxRequestBytes: cfg.maxRequestBytes,
	})

	setupLog.Info("starting sync hook",
		"version", version,
		"address", cfg.bindAddr,
		"kubectlDeliveryImage", builder.KubectlDeliveryImage,
		"defaultImage", builder.DefaultImage)

	return server.Start(log.IntoContext(ctx, ctrl.Log))
}
