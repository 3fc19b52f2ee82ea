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

// Package mpijob builds the child objects of an MPIJob.
//
// Every sync produces the same six children, in this order:
//
// # RBAC
//
// A ServiceAccount, Role and RoleBinding, all named after the launcher. The
// Role grants "get" on the worker pods and "create" on their exec
// subresource, restricted by resourceNames to the worker hostnames.
//
// # ConfigMap
//
// Holds the MPI hostfile (one "<host> slots=1" line per worker) and
// kubexec.sh, the rsh agent that runs a command inside a worker pod through
// kubectl exec.
//
// # Worker StatefulSet
//
// Idle workers running "sleep 365d" with kubexec.sh mounted. The launcher
// depends on that placeholder, so command and args are stripped from the
// user's pod template override before it is merged onto worker pods.
//
// # Launcher Job
//
// A single-completion Job whose main container runs the user's MPI program
// with the rsh agent and hostfile configured through OMPI_MCA_* variables.
// Two init containers stage the kubectl binary into a shared emptyDir and
// wait until every worker pod is Running. The override is merged onto the
// launcher pod as is.
//
// Base objects are typed Kubernetes objects; they are converted to
// document.Object before the override is merged with document.Merge. All
// builders are pure and perform no I/O.
package mpijob
