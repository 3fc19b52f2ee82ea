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

// Package names derives the names of the objects owned by an MPIJob.
//
// Strategy:
//  1. Every child name hangs off a single base name: "mpioperator-<job name>".
//     Workers, the config map and the launcher append fixed suffixes to it.
//  2. An MPIJob without a name gets a random base name. Randomness would rename
//     every child on each sync, so names already present in the cluster always
//     win over freshly derived ones (see Resolver.Resolve).
package names

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const (
	// BasePrefix is prepended to the MPIJob name to form the base name.
	BasePrefix = "mpioperator-"

	// WorkerSuffix is appended to the base name for the worker StatefulSet.
	WorkerSuffix = "-worker"

	// ConfigSuffix is appended to the base name for the ConfigMap.
	ConfigSuffix = "-config"

	// LauncherSuffix is appended to the base name for the launcher Job and its
	// ServiceAccount, Role and RoleBinding.
	LauncherSuffix = "-launcher"
)

// Generator returns a fresh unique token. It must be safe for concurrent use.
type Generator func() string

// Names are the resolved names for one sync call.
type Names struct {
	// Base is the root every other name is derived from.
	Base string
	// Worker names the worker StatefulSet and its governing service.
	Worker string
	// Config names the ConfigMap.
	Config string
	// Launcher names the launcher Job, ServiceAccount, Role and RoleBinding.
	Launcher string
}

// Observed are names recovered from children that already exist. Empty fields
// mean nothing of that kind was observed.
type Observed struct {
	Base     string
	Config   string
	Launcher string
}

// Resolver derives child names. The zero value uses random UUIDs.
type Resolver struct {
	// Generate produces tokens for MPIJobs without a name.
	Generate Generator
}

// NewResolver returns a Resolver that generates random UUIDs.
func NewResolver() *Resolver {
	return &Resolver{Generate: uuid.NewString}
}

// BaseName returns the base name for an MPIJob called jobName, generating a
// random one when jobName is empty.
func (r *Resolver) BaseName(jobName string) string {
	if jobName == "" {
		jobName = r.generate()
	}
	return BasePrefix + jobName
}

// Resolve returns the names for this call. Observed names take precedence; the
// generator is only consulted when neither the job name nor an observed worker
// StatefulSet determine the base name.
func (r *Resolver) Resolve(jobName string, observed Observed) Names {
	base := observed.Base
	if base == "" {
		base = r.BaseName(jobName)
	}

	n := Names{
		Base:     base,
		Worker:   WorkerName(base),
		Config:   observed.Config,
		Launcher: observed.Launcher,
	}
	if n.Config == "" {
		n.Config = ConfigName(base)
	}
	if n.Launcher == "" {
		n.Launcher = LauncherName(base)
	}
	return n
}

func (r *Resolver) generate() string {
	if r == nil || r.Generate == nil {
		return uuid.NewString()
	}
	return r.Generate()
}

// WorkerName returns the worker StatefulSet name for base.
func WorkerName(base string) string {
	return base + WorkerSuffix
}

// ConfigName returns the ConfigMap name for base.
func ConfigName(base string) string {
	return base + ConfigSuffix
}

// LauncherName returns the launcher Job name for base.
func LauncherName(base string) string {
	return base + LauncherSuffix
}

// BaseNameFromWorker recovers the base name from a worker StatefulSet name.
func BaseNameFromWorker(name string) (string, bool) {
	base, ok := strings.CutSuffix(name, WorkerSuffix)
	if !ok || base == "" {
		return "", false
	}
	return base, true
}

// WorkerHostnames returns the pod names of the worker StatefulSet, which are
// also the MPI hostnames: "<base>-worker-0" … "<base>-worker-<replicas-1>".
func WorkerHostnames(base string, replicas int32) []string {
	hosts := make([]string, 0, max(replicas, 0))
	for i := range replicas {
		hosts = append(hosts, fmt.Sprintf("%s-%d", WorkerName(base), i))
	}
	return hosts
}
