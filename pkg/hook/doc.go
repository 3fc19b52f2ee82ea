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

// Package hook implements the MPIJob sync hook and the HTTP server that
// exposes it.
//
// The control loop POSTs the parent MPIJob together with the children it has
// observed. The hook answers with the status to record on the parent and the
// complete desired set of children; the control loop creates, updates or
// deletes children to match. Every call is computed from the request alone.
//
// Endpoints:
//
//	POST /, POST /sync   sync hook
//	GET  /metrics        Prometheus metrics
//	GET  /healthz        liveness
//	GET  /readyz         readiness
package hook
