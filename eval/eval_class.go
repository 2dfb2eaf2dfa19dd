/*
File   : slovo/eval/eval_class.go
Package: eval

Class declaration evaluation (spec.md §4.8): resolves the named
superclass, builds the method/getter/setter/static tables, and stamps
each method closure's DefClass for `super` resolution.
*/
package eval

import (
	"github.com/slovolang/slovo/errors"
	"github.com/slovolang/slovo/function"
	"github.com/slovolang/slovo/objects"
	"github.com/slovolang/slovo/parser"
	"github.com/slovolang/slovo/scope"
)

func (e *Evaluator) evalClassDecl(s *parser.ClassDeclStmt, env *scope.Scope) (objects.Value, error) {
	cls := function.NewClass(s.Name)

	if s.Superclass != "" {
		superVal, ok := env.Lookup(s.Superclass)
		if !ok {
			return nil, e.errorf(s.Pos(), errors.ReferenceError, "undefined superclass %q", s.Superclass)
		}
		super, ok := superVal.(*function.Class)
		if !ok {
			return nil, e.errorf(s.Pos(), errors.TypeError, "%q is not a class", s.Superclass)
		}
		cls.Super = super
	}

	// Classes are defined first, empty, and bound into env before their
	// members are built, so a method body closing over env can reference
	// the class by name (spec.md §4.8: recursive/self-referential statics).
	env.Define(s.Name, cls, false)

	for _, f := range s.Fields {
		if f.Static {
			var val objects.Value = objects.NoneValue
			if f.Default != nil {
				v, err := e.Eval(f.Default, env)
				if err != nil {
					return nil, err
				}
				if isSignal(v) {
					return v, nil
				}
				val = v
			}
			cls.StaticProps.Set(f.Name, val)
			continue
		}
		cls.Fields = append(cls.Fields, f)
	}

	for _, m := range s.Methods {
		closure := e.makeClosure(m.Fn, env)
		closure.DefClass = cls
		switch {
		case m.Kind == parser.MethodConstructor:
			cls.Constructor = closure
		case m.Static && m.Kind == parser.MethodGetter:
			cls.StaticGetters[m.Name] = closure
		case m.Static && m.Kind == parser.MethodSetter:
			cls.StaticSetters[m.Name] = closure
		case m.Static:
			cls.StaticMethods[m.Name] = closure
		case m.Kind == parser.MethodGetter:
			cls.Getters[m.Name] = closure
		case m.Kind == parser.MethodSetter:
			cls.Setters[m.Name] = closure
		default:
			cls.Methods[m.Name] = closure
		}
	}

	return objects.NoneValue, nil
}
