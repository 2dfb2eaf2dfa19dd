/*
File   : slovo/objects/object.go
Package: objects
*/
package objects

import "strings"

// Object is an insertion-ordered string-keyed mapping with reference
// semantics (spec.md §3). Insertion order is preserved for iteration,
// destructuring rest-collection, and display.
type Object struct {
	keys   []string
	values map[string]Value
}

func NewObject() *Object {
	return &Object{values: make(map[string]Value)}
}

func (o *Object) GetType() ValueType { return ObjectType }

func (o *Object) ToString() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, k := range o.keys {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(k)
		sb.WriteByte(':')
		v := o.values[k]
		if s, ok := v.(*String); ok {
			sb.WriteByte('"')
			sb.WriteString(s.Value)
			sb.WriteByte('"')
		} else {
			sb.WriteString(v.ToString())
		}
	}
	sb.WriteByte('}')
	return sb.String()
}

func (o *Object) Inspect() string { return o.ToString() }

// Get returns the value bound to key and whether it was present.
func (o *Object) Get(key string) (Value, bool) {
	v, ok := o.values[key]
	return v, ok
}

// Set binds key to v, preserving the key's original insertion position if
// it already existed.
func (o *Object) Set(key string, v Value) {
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = v
}

// Delete removes key, if present.
func (o *Object) Delete(key string) {
	if _, ok := o.values[key]; !ok {
		return
	}
	delete(o.values, key)
	for i, k := range o.keys {
		if k == key {
			o.keys = append(o.keys[:i], o.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the keys in insertion order.
func (o *Object) Keys() []string {
	out := make([]string, len(o.keys))
	copy(out, o.keys)
	return out
}

func (o *Object) Len() int { return len(o.keys) }
