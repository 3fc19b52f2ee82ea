package mpijob

import (
	"errors"
	"fmt"

	mpiv1alpha1 "github.com/numtide/mpi-operator/api/v1alpha1"
	"github.com/numtide/mpi-operator/pkg/document"
)

var errNoPodTemplate = errors.New("object has no spec.template")

// PodTemplateOverride parses spec.template of job. It returns nil when the
// MPIJob has no override.
func PodTemplateOverride(job *mpiv1alpha1.MPIJob) (*document.Object, error) {
	if job.Spec == nil || job.Spec.Template == nil || len(job.Spec.Template.Raw) == 0 {
		return nil, nil
	}
	tmpl, err := document.ParseObject(job.Spec.Template.Raw)
	if err != nil {
		return nil, fmt.Errorf("invalid spec.template: %w", err)
	}
	return tmpl, nil
}

// StripContainerInvocation removes command and args from every container in
// spec.containers of a pod template.
func StripContainerInvocation(tmpl *document.Object) {
	containers, ok := lookupArray(tmpl, "spec", "containers")
	if !ok {
		return
	}
	for _, c := range containers.Items() {
		if container, ok := c.(*document.Object); ok {
			container.Delete("command")
			container.Delete("args")
		}
	}
}

// mergePodTemplate merges override onto spec.template of doc in place.
func mergePodTemplate(doc, override *document.Object) error {
	tmpl, ok := doc.LookupObject("spec", "template")
	if !ok {
		return errNoPodTemplate
	}
	document.Merge(tmpl, override, document.DefaultOptions())
	return nil
}

// toDocument converts a typed object into a document without the fields the
// API server owns: status and null creation timestamps.
func toDocument(obj any) (*document.Object, error) {
	doc, err := document.FromObject(obj)
	if err != nil {
		return nil, err
	}
	doc.Delete("status")
	dropNullTimestamps(doc)
	return doc, nil
}

func dropNullTimestamps(v document.Value) {
	switch t := v.(type) {
	case *document.Object:
		if ts, ok := t.Get("creationTimestamp"); ok {
			if s, ok := ts.(document.Scalar); ok && s.IsNull() {
				t.Delete("creationTimestamp")
			}
		}
		for _, key := range t.Keys() {
			field, _ := t.Get(key)
			dropNullTimestamps(field)
		}
	case *document.Array:
		for _, item := range t.Items() {
			dropNullTimestamps(item)
		}
	}
}

func lookupArray(obj *document.Object, path ...string) (*document.Array, bool) {
	if len(path) == 0 {
		return nil, false
	}
	parent, ok := obj.LookupObject(path[:len(path)-1]...)
	if !ok {
		return nil, false
	}
	return parent.Array(path[len(path)-1])
}
