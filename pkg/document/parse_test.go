package document

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

func TestParseRoundTrip(t *testing.T) {
	inputs := []string{
		`{"z":1,"a":{"y":[true,false,null],"b":"c"},"m":-0.5e3}`,
		`[]`,
		`[{},[],"",0]`,
		`"plain"`,
		`null`,
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			if diff := cmp.Diff(in, mustMarshal(t, mustParse(t, in))); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := map[string]string{
		"empty":         ``,
		"truncated":     `{"a":`,
		"trailing data": `{} {}`,
		"bad literal":   `{"a":tru}`,
	}

	for name, in := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := Parse([]byte(in)); err == nil {
				t.Errorf("Parse(%q) expected error, got nil", in)
			}
		})
	}
}

func TestParseObject(t *testing.T) {
	if _, err := ParseObject([]byte(`[1]`)); !errors.Is(err, ErrNotObject) {
		t.Errorf("ParseObject(array) error = %v, want %v", err, ErrNotObject)
	}

	obj, err := ParseObject([]byte(`{"b":1,"a":2}`))
	if err != nil {
		t.Fatalf("ParseObject: %v", err)
	}
	if diff := cmp.Diff([]string{"b", "a"}, obj.Keys()); diff != "" {
		t.Errorf("Keys() mismatch (-want +got):\n%s", diff)
	}
}

func TestObjectEditing(t *testing.T) {
	obj := NewObject()
	obj.Set("a", Int(1))
	obj.Set("b", String("x"))
	obj.Set("c", Bool(true))
	obj.Set("a", Null())
	obj.Delete("b")
	obj.Delete("missing")

	if diff := cmp.Diff(`{"a":null,"c":true}`, mustMarshal(t, obj)); diff != "" {
		t.Errorf("object mismatch (-want +got):\n%s", diff)
	}
	if obj.Len() != 2 {
		t.Errorf("Len() = %d, want 2", obj.Len())
	}
	if !obj.Has("c") || obj.Has("b") {
		t.Error("Has() reports stale keys")
	}
}

func TestLookupObject(t *testing.T) {
	obj := mustParse(t, `{"spec":{"template":{"spec":{}}},"x":1}`).(*Object)

	if _, ok := obj.LookupObject("spec", "template", "spec"); !ok {
		t.Error("expected spec.template.spec to resolve")
	}
	if _, ok := obj.LookupObject("x"); ok {
		t.Error("expected scalar field not to resolve as object")
	}
	if _, ok := obj.LookupObject("spec", "missing"); ok {
		t.Error("expected missing path not to resolve")
	}
}

func TestObjectUnmarshalJSON(t *testing.T) {
	var wrapper struct {
		Template *Object `json:"template"`
	}
	if err := json.Unmarshal([]byte(`{"template":{"b":1,"a":{"c":2}}}`), &wrapper); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if diff := cmp.Diff(`{"b":1,"a":{"c":2}}`, mustMarshal(t, wrapper.Template)); diff != "" {
		t.Errorf("template mismatch (-want +got):\n%s", diff)
	}

	out, err := json.Marshal(wrapper)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if diff := cmp.Diff(`{"template":{"b":1,"a":{"c":2}}}`, string(out)); diff != "" {
		t.Errorf("wrapper mismatch (-want +got):\n%s", diff)
	}
}

func TestFromObject(t *testing.T) {
	sa := &corev1.ServiceAccount{
		TypeMeta:   metav1.TypeMeta{APIVersion: "v1", Kind: "ServiceAccount"},
		ObjectMeta: metav1.ObjectMeta{Name: "launcher"},
	}

	obj, err := FromObject(sa)
	if err != nil {
		t.Fatalf("FromObject: %v", err)
	}
	if diff := cmp.Diff([]string{"kind", "apiVersion", "metadata"}, obj.Keys()); diff != "" {
		t.Errorf("Keys() mismatch (-want +got):\n%s", diff)
	}
	meta, ok := obj.Object("metadata")
	if !ok {
		t.Fatal("metadata is not an object")
	}
	name, _ := meta.Get("name")
	if diff := cmp.Diff(`"launcher"`, mustMarshal(t, name)); diff != "" {
		t.Errorf("name mismatch (-want +got):\n%s", diff)
	}
}

func TestDeepCopyIsIndependent(t *testing.T) {
	orig := mustParse(t, `{"a":[{"b":1}]}`).(*Object)
	cp := orig.Clone()

	arr, _ := cp.Array("a")
	arr.At(0).(*Object).Set("b", Int(2))
	arr.Append(Int(3))

	if diff := cmp.Diff(`{"a":[{"b":1}]}`, mustMarshal(t, orig)); diff != "" {
		t.Errorf("original modified (-want +got):\n%s", diff)
	}
}
