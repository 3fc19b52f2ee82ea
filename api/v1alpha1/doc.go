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

// Package v1alpha1 defines the API types for the MPI Operator sync hook.
//
// # Custom Resources
//
//   - MPIJob: a distributed MPI workload. Users set the worker count, the
//     container image and an optional pod template override.
//
// # Child Resources
//
// The sync hook answers every reconciliation with the full set of children
// that implement an MPIJob:
//
//	MPIJob
//	├── ServiceAccount   (<base>-launcher)
//	├── Role             (<base>-launcher, get pods / create pods/exec)
//	├── RoleBinding      (<base>-launcher)
//	├── ConfigMap        (<base>-config, hostfile + kubexec.sh)
//	├── StatefulSet      (<base>-worker, idle workers)
//	└── Job              (<base>-launcher, runs mpirun)
//
// # Hook Wire Types
//
// SyncRequest is the body the control loop POSTs to the hook. Observed
// children are grouped by kind tag ("<Kind>.<apiVersion>", see KindTag) and
// then by name.
//
// # Versioning
//
// This is the v1alpha1 version, indicating the API is in early development
// and may change in backward-incompatible ways.
package v1alpha1
