/*
File   : slovo/objects/native.go
Package: objects
*/
package objects

import "fmt"

// Native wraps a host-provided callable bound into the root environment by
// the builtin registry (spec.md §6). It receives an already-unwrapped slice
// of values and returns a value, possibly a Deferred for async builtins.
type Native struct {
	Name string
	Fn   func(args []Value) (Value, error)
}

func (n *Native) GetType() ValueType { return NativeType }
func (n *Native) ToString() string   { return fmt.Sprintf("<native %s>", n.Name) }
func (n *Native) Inspect() string    { return n.ToString() }
