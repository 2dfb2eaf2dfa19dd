/*
File   : slovo/function/instance.go
Package: function
*/
package function

import (
	"fmt"

	"github.com/slovolang/slovo/objects"
)

// Instance is an object constructed by `new Class(...)`: a back-reference
// to its class plus an insertion-ordered property map (spec.md §4.3/§4.8).
type Instance struct {
	Class *Class
	Props *objects.Object
}

func NewInstance(class *Class) *Instance {
	return &Instance{Class: class, Props: objects.NewObject()}
}

func (i *Instance) GetType() objects.ValueType { return objects.InstanceType }
func (i *Instance) ToString() string           { return fmt.Sprintf("<%s instance>", i.Class.Name) }
func (i *Instance) Inspect() string            { return i.ToString() }

// Get resolves a property access: own data property first, then an
// inherited getter, then an inherited plain method bound to this instance
// (spec.md §4.8 member resolution order).
func (i *Instance) Get(name string) (objects.Value, bool) {
	if v, ok := i.Props.Get(name); ok {
		return v, true
	}
	if getter, ok := i.Class.LookupGetter(name); ok {
		return getter.Bind(i), true
	}
	if m, ok := i.Class.LookupMethod(name); ok {
		return m.Bind(i), true
	}
	return nil, false
}

// Set resolves a property assignment: an inherited setter intercepts it,
// else it is a plain own-property write.
func (i *Instance) Set(name string, value objects.Value) (setterCall *Closure) {
	if setter, ok := i.Class.LookupSetter(name); ok {
		return setter.Bind(i)
	}
	i.Props.Set(name, value)
	return nil
}
