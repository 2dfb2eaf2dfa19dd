/*
File   : slovo/function/closure.go
Package: function

Package function holds the runtime representations of callable and
class-shaped values that the evaluator builds from parser AST nodes:
Closure (generalizing the teacher's Function, function/function.go, to
arrow/async flags and destructuring parameters), Class, and Instance
(generalizing struct.go's GoMixStruct to single inheritance, statics, and
accessors). Kept as a separate package from objects, same as the teacher
kept function separate from objects/struct.go, to avoid an import cycle:
Closure holds parser.Param/parser.BlockStmt/parser.Expr pieces of a
function literal and a *scope.Scope, and objects must stay free of a parser
dependency.
*/
package function

import (
	"fmt"

	"github.com/slovolang/slovo/objects"
	"github.com/slovolang/slovo/parser"
	"github.com/slovolang/slovo/scope"
)

// Closure is a function value: captured defining environment, parameter
// pattern list, and either a block or expression body (spec.md §4.3/§4.4).
type Closure struct {
	Name     string
	Params   []parser.Param
	Body     *parser.BlockStmt
	ExprBody parser.Expr
	Arrow    bool
	Async    bool
	Env      *scope.Scope

	// DefClass is the class a method closure was declared on, used to
	// resolve `super` inside its body (spec.md §4.8.3). Nil for plain
	// functions and arrows.
	DefClass *Class

	// This is the bound receiver of a method value taken off an instance,
	// of a constructor call, or of a `receiver.method(...)` call. Arrow
	// functions leave it nil and see the enclosing `this` through their
	// captured Env instead. A non-arrow function called with no receiver
	// sees `this` as none.
	This objects.Value
}

func (c *Closure) GetType() objects.ValueType { return objects.ClosureType }

func (c *Closure) ToString() string {
	name := c.Name
	if name == "" {
		name = "anonymous"
	}
	return fmt.Sprintf("<function %s>", name)
}

func (c *Closure) Inspect() string { return c.ToString() }

// Bind returns a copy of c with This set to receiver, used when a method
// closure is looked up off an instance (spec.md §4.8 method dispatch).
func (c *Closure) Bind(receiver objects.Value) *Closure {
	bound := *c
	bound.This = receiver
	return &bound
}
