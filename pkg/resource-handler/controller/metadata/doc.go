// Package metadata provides utilities for building Kubernetes resource metadata
// such as labels used across all objects generated for an MPIJob.
//
// This package contains generic, reusable functions that are kind-agnostic.
// Kind-specific choices (which label set, which role) are made by callers.
package metadata
