/*
File   : slovo/function/class.go
Package: function
*/
package function

import (
	"fmt"

	"github.com/slovolang/slovo/objects"
	"github.com/slovolang/slovo/parser"
)

// Class is a class value: named method tables plus an optional single
// superclass (spec.md §4.8.2). Instance methods, getters, and setters are
// each keyed by member name; a lookup that misses walks Super.
type Class struct {
	Name    string
	Super   *Class
	Methods map[string]*Closure
	Getters map[string]*Closure
	Setters map[string]*Closure

	StaticMethods map[string]*Closure
	StaticGetters map[string]*Closure
	StaticSetters map[string]*Closure
	StaticProps   *objects.Object

	Constructor *Closure
	Fields      []parser.FieldDef // instance field initializers, evaluated per-construction
}

func NewClass(name string) *Class {
	return &Class{
		Name:          name,
		Methods:       map[string]*Closure{},
		Getters:       map[string]*Closure{},
		Setters:       map[string]*Closure{},
		StaticMethods: map[string]*Closure{},
		StaticGetters: map[string]*Closure{},
		StaticSetters: map[string]*Closure{},
		StaticProps:   objects.NewObject(),
	}
}

func (c *Class) GetType() objects.ValueType { return objects.ClassType }
func (c *Class) ToString() string           { return fmt.Sprintf("<class %s>", c.Name) }
func (c *Class) Inspect() string            { return c.ToString() }

// LookupMethod walks c and its ancestors for an instance method named
// name, implementing single-inheritance override resolution (spec.md
// §4.8.2: a subclass method of the same name shadows the parent's).
func (c *Class) LookupMethod(name string) (*Closure, bool) {
	for cls := c; cls != nil; cls = cls.Super {
		if m, ok := cls.Methods[name]; ok {
			return m, true
		}
	}
	return nil, false
}

func (c *Class) LookupGetter(name string) (*Closure, bool) {
	for cls := c; cls != nil; cls = cls.Super {
		if m, ok := cls.Getters[name]; ok {
			return m, true
		}
	}
	return nil, false
}

func (c *Class) LookupSetter(name string) (*Closure, bool) {
	for cls := c; cls != nil; cls = cls.Super {
		if m, ok := cls.Setters[name]; ok {
			return m, true
		}
	}
	return nil, false
}

// LookupStaticMethod walks the static-method chain the same way
// LookupMethod does for instance methods (spec.md §4.8.2 statics are
// inherited the same as instance members).
func (c *Class) LookupStaticMethod(name string) (*Closure, bool) {
	for cls := c; cls != nil; cls = cls.Super {
		if m, ok := cls.StaticMethods[name]; ok {
			return m, true
		}
	}
	return nil, false
}

// LookupStaticGetter/LookupStaticSetter walk the static-accessor chain the
// same way LookupGetter/LookupSetter do for instances.
func (c *Class) LookupStaticGetter(name string) (*Closure, bool) {
	for cls := c; cls != nil; cls = cls.Super {
		if m, ok := cls.StaticGetters[name]; ok {
			return m, true
		}
	}
	return nil, false
}

func (c *Class) LookupStaticSetter(name string) (*Closure, bool) {
	for cls := c; cls != nil; cls = cls.Super {
		if m, ok := cls.StaticSetters[name]; ok {
			return m, true
		}
	}
	return nil, false
}

// AllFields walks from the root ancestor down to c, so subclass field
// initializers run after (and can see) the parent's (spec.md §4.8.1).
func (c *Class) AllFields() []parser.FieldDef {
	var chain []*Class
	for cls := c; cls != nil; cls = cls.Super {
		chain = append(chain, cls)
	}
	var fields []parser.FieldDef
	for i := len(chain) - 1; i >= 0; i-- {
		fields = append(fields, chain[i].Fields...)
	}
	return fields
}

// LookupConstructor walks c and its ancestors for the nearest defined
// constructor, returning the class it was defined on (spec.md §4.8.1: "the
// most-derived constructor wins").
func (c *Class) LookupConstructor() (*Closure, *Class, bool) {
	for cls := c; cls != nil; cls = cls.Super {
		if cls.Constructor != nil {
			return cls.Constructor, cls, true
		}
	}
	return nil, nil, false
}

// IsSubclassOf reports whether c is other or descends from it, used by the
// std `is_instance_of` builtin.
func (c *Class) IsSubclassOf(other *Class) bool {
	for cls := c; cls != nil; cls = cls.Super {
		if cls == other {
			return true
		}
	}
	return false
}
