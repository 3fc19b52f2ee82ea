package document

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Value is a node of a structured document. The set of implementations is
// closed: *Object, *Array and Scalar.
type Value interface {
	json.Marshaler

	// DeepCopy returns a copy that shares no mutable state with the receiver.
	DeepCopy() Value

	isValue()
}

var (
	_ Value = (*Object)(nil)
	_ Value = (*Array)(nil)
	_ Value = Scalar{}
)

// Object is a mapping whose fields keep their insertion order.
type Object struct {
	keys   []string
	fields map[string]Value
}

// NewObject returns an empty Object.
func NewObject() *Object {
	return &Object{fields: map[string]Value{}}
}

func (*Object) isValue() {}

// Len returns the number of fields.
func (o *Object) Len() int {
	return len(o.keys)
}

// Keys returns the field names in order.
func (o *Object) Keys() []string {
	return append([]string(nil), o.keys...)
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (Value, bool) {
	v, ok := o.fields[key]
	return v, ok
}

// Has reports whether key is present.
func (o *Object) Has(key string) bool {
	_, ok := o.fields[key]
	return ok
}

// Set stores v under key. New keys are appended after existing ones; existing
// keys keep their position.
func (o *Object) Set(key string, v Value) {
	if o.fields == nil {
		o.fields = map[string]Value{}
	}
	if _, ok := o.fields[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.fields[key] = v
}

// Delete removes key if present.
func (o *Object) Delete(key string) {
	if _, ok := o.fields[key]; !ok {
		return
	}
	delete(o.fields, key)
	for i, k := range o.keys {
		if k == key {
			o.keys = append(o.keys[:i], o.keys[i+1:]...)
			break
		}
	}
}

// Object returns the field key when it holds an Object.
func (o *Object) Object(key string) (*Object, bool) {
	obj, ok := o.fields[key].(*Object)
	return obj, ok
}

// Array returns the field key when it holds an Array.
func (o *Object) Array(key string) (*Array, bool) {
	arr, ok := o.fields[key].(*Array)
	return arr, ok
}

// LookupObject walks nested objects along path.
func (o *Object) LookupObject(path ...string) (*Object, bool) {
	cur := o
	for _, key := range path {
		next, ok := cur.Object(key)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

// DeepCopy implements Value.
func (o *Object) DeepCopy() Value {
	return o.Clone()
}

// Clone is DeepCopy with a concrete return type.
func (o *Object) Clone() *Object {
	out := &Object{
		keys:   append([]string(nil), o.keys...),
		fields: make(map[string]Value, len(o.fields)),
	}
	for k, v := range o.fields {
		out.fields[k] = v.DeepCopy()
	}
	return out
}

// MarshalJSON writes the fields in order.
func (o *Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, err := o.fields[key].MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON parses a JSON object, keeping field order.
func (o *Object) UnmarshalJSON(data []byte) error {
	obj, err := ParseObject(data)
	if err != nil {
		return err
	}
	*o = *obj
	return nil
}

// Array is an ordered list of values.
type Array struct {
	items []Value
}

// NewArray returns an Array holding items.
func NewArray(items ...Value) *Array {
	return &Array{items: append([]Value(nil), items...)}
}

func (*Array) isValue() {}

// Len returns the number of elements.
func (a *Array) Len() int {
	return len(a.items)
}

// At returns the element at index i.
func (a *Array) At(i int) Value {
	return a.items[i]
}

// Items returns the elements. The slice is shared with the Array.
func (a *Array) Items() []Value {
	return a.items
}

// Append adds values to the end of the list.
func (a *Array) Append(vs ...Value) {
	a.items = append(a.items, vs...)
}

// DeepCopy implements Value.
func (a *Array) DeepCopy() Value {
	out := &Array{items: make([]Value, len(a.items))}
	for i, v := range a.items {
		out.items[i] = v.DeepCopy()
	}
	return out
}

// MarshalJSON implements json.Marshaler.
func (a *Array) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, item := range a.items {
		if i > 0 {
			buf.WriteByte(',')
		}
		v, err := item.MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// Scalar is a string, number, bool or null leaf. Numbers keep their original
// text so that integers survive a round trip unchanged.
type Scalar struct {
	v any
}

// String returns a string Scalar.
func String(s string) Scalar { return Scalar{v: s} }

// Int returns a number Scalar.
func Int(i int64) Scalar { return Scalar{v: json.Number(strconv.FormatInt(i, 10))} }

// Bool returns a bool Scalar.
func Bool(b bool) Scalar { return Scalar{v: b} }

// Null returns the null Scalar.
func Null() Scalar { return Scalar{} }

func (Scalar) isValue() {}

// IsNull reports whether s is null.
func (s Scalar) IsNull() bool {
	return s.v == nil
}

// Interface returns the underlying string, json.Number, bool or nil.
func (s Scalar) Interface() any {
	return s.v
}

// DeepCopy implements Value. Scalars are immutable.
func (s Scalar) DeepCopy() Value {
	return s
}

// MarshalJSON implements json.Marshaler.
func (s Scalar) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.v)
}
