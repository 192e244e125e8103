package jsonpatch

import (
	"iter"
	"slices"
)

// Kind identifies the variant held by a Value.
type Kind int

const (
	NullKind Kind = iota
	BoolKind
	NumberKind
	StringKind
	ArrayKind
	ObjectKind
)

func (k Kind) String() string {
	switch k {
	case NullKind:
		return "null"
	case BoolKind:
		return "boolean"
	case NumberKind:
		return "number"
	case StringKind:
		return "string"
	case ArrayKind:
		return "array"
	case ObjectKind:
		return "object"
	}
	return "<unknown kind>"
}

// Value is a node of an immutable document tree. It is implemented only by
// Null, Bool, Number, String, *Array and *Object.
//
// Containers are never modified after construction, so a Value may be shared
// freely between documents and goroutines.
type Value interface {
	Kind() Kind
	isValue()
}

// Null is the JSON null value.
type Null struct{}

// Bool is a JSON boolean.
type Bool bool

// String is a JSON string.
type String string

func (Null) Kind() Kind   { return NullKind }
func (Bool) Kind() Kind   { return BoolKind }
func (String) Kind() Kind { return StringKind }

func (Null) isValue()   {}
func (Bool) isValue()   {}
func (String) isValue() {}

// Array is an ordered, immutable sequence of values.
type Array struct {
	items []Value
}

// NewArray returns an array holding items. The slice is copied.
func NewArray(items ...Value) *Array {
	return &Array{items: slices.Clone(items)}
}

func (*Array) Kind() Kind { return ArrayKind }
func (*Array) isValue()   {}

// Len returns the number of elements.
func (a *Array) Len() int {
	return len(a.items)
}

// At returns the element at index i. It panics if i is out of range.
func (a *Array) At(i int) Value {
	return a.items[i]
}

// All iterates over the elements in order.
func (a *Array) All() iter.Seq2[int, Value] {
	return slices.All(a.items)
}

// Values returns a copy of the elements.
func (a *Array) Values() []Value {
	return slices.Clone(a.items)
}

// Field is a single key/value member used to build objects.
type Field struct {
	Key   string
	Value Value
}

// Object is an immutable mapping from string keys to values. Key insertion
// order is remembered for stable output but plays no part in equality.
type Object struct {
	keys   []string
	fields map[string]Value
}

// NewObject returns an object holding fields. When a key repeats, it keeps its
// first position and takes the last value.
func NewObject(fields ...Field) *Object {
	o := &Object{
		keys:   make([]string, 0, len(fields)),
		fields: make(map[string]Value, len(fields)),
	}
	for _, f := range fields {
		if _, ok := o.fields[f.Key]; !ok {
			o.keys = append(o.keys, f.Key)
		}
		o.fields[f.Key] = f.Value
	}
	return o
}

func (*Object) Kind() Kind { return ObjectKind }
func (*Object) isValue()   {}

// Len returns the number of members.
func (o *Object) Len() int {
	return len(o.keys)
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

// Keys returns the keys in insertion order.
func (o *Object) Keys() []string {
	return slices.Clone(o.keys)
}

// All iterates over the members in insertion order.
func (o *Object) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		for _, k := range o.keys {
			if !yield(k, o.fields[k]) {
				return
			}
		}
	}
}

// with returns a shallow copy of o with key set to v. Every other member is
// shared with o.
func (o *Object) with(key string, v Value) *Object {
	res := &Object{
		keys:   o.keys,
		fields: make(map[string]Value, len(o.fields)+1),
	}
	for k, fv := range o.fields {
		res.fields[k] = fv
	}
	if _, ok := o.fields[key]; !ok {
		res.keys = make([]string, len(o.keys), len(o.keys)+1)
		copy(res.keys, o.keys)
		res.keys = append(res.keys, key)
	}
	res.fields[key] = v
	return res
}

// without returns a shallow copy of o lacking key.
func (o *Object) without(key string) *Object {
	res := &Object{
		keys:   make([]string, 0, len(o.keys)),
		fields: make(map[string]Value, len(o.fields)),
	}
	for _, k := range o.keys {
		if k == key {
			continue
		}
		res.keys = append(res.keys, k)
		res.fields[k] = o.fields[k]
	}
	return res
}

// IsArray reports whether v is an array.
func IsArray(v Value) bool {
	_, ok := v.(*Array)
	return ok
}

// IsObject reports whether v is an object.
func IsObject(v Value) bool {
	_, ok := v.(*Object)
	return ok
}

// IsNumber reports whether v is a number.
func IsNumber(v Value) bool {
	_, ok := v.(Number)
	return ok
}

// IsString reports whether v is a string.
func IsString(v Value) bool {
	_, ok := v.(String)
	return ok
}
