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

// Package document models JSON-like Kubernetes manifests as a closed set of
// value types and merges them structurally.
//
// A Value is exactly one of:
//   - *Object: fields in insertion order
//   - *Array: an ordered list of values
//   - Scalar: a string, number, bool or null
//
// # Merging
//
// Merge combines a source value into a destination value:
//
//	Object + Object  field-by-field, recursing on shared keys
//	Array  + Array   positional merge, then the source tail is appended
//	anything else    the source overwrites the destination
//
// Fields listed in Options.AppendFields (volumes and volumeMounts by
// default) never merge positionally: every source element is appended to the
// destination list, duplicates included.
//
// Merge never removes a destination field and never fails.
package document
