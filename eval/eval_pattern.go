/*
File   : slovo/eval/eval_pattern.go
Package: eval

bindPattern destructures value into env per target, shared by let/const
declarations (eval_stmt.go's evalDecl) and function parameter binding
(eval_call.go's bindParams), per spec.md §4.5.3.
*/
package eval

import (
	"github.com/slovolang/slovo/errors"
	"github.com/slovolang/slovo/objects"
	"github.com/slovolang/slovo/parser"
	"github.com/slovolang/slovo/scope"
)

func (e *Evaluator) bindPattern(target parser.Pattern, value objects.Value, env *scope.Scope, isConst bool) error {
	switch t := target.(type) {
	case *parser.Identifier:
		env.Define(t.Name, value, isConst)
		return nil
	case *parser.ArrayPattern:
		return e.bindArrayPattern(t, value, env, isConst)
	case *parser.ObjectPattern:
		return e.bindObjectPattern(t, value, env, isConst)
	default:
		return e.errorf(target.Pos(), errors.InternalError, "unhandled pattern %T", target)
	}
}

// bindArrayPattern destructures value positionally (spec.md §4.5.3): value
// must be an Array, each element slot gets its default when the source ran
// out or produced none, and a trailing rest element collects the remainder.
func (e *Evaluator) bindArrayPattern(t *parser.ArrayPattern, value objects.Value, env *scope.Scope, isConst bool) error {
	arr, ok := value.(*objects.Array)
	if !ok {
		return e.errorf(t.Pos(), errors.TypeError, "cannot destructure %s as an array", objects.TypeName(value))
	}
	i := 0
	for _, elem := range t.Elements {
		if elem.Rest {
			rest := append([]objects.Value{}, arr.Elements[min(i, arr.Len()):]...)
			if err := e.bindPattern(elem.Target, objects.NewArray(rest), env, isConst); err != nil {
				return err
			}
			i = arr.Len()
			continue
		}
		var v objects.Value = objects.NoneValue
		if elt, ok := arr.Get(i); ok {
			v = elt
		}
		i++
		if _, isNone := v.(objects.None); isNone && elem.Default != nil {
			dv, err := e.Eval(elem.Default, env)
			if err != nil {
				return err
			}
			v = dv
		}
		if err := e.bindPattern(elem.Target, v, env, isConst); err != nil {
			return err
		}
	}
	return nil
}

// bindObjectPattern destructures value by key (spec.md §4.5.3): value must
// be an Object, each prop binds its key's value (or default), and Rest, if
// named, collects every key not explicitly matched.
func (e *Evaluator) bindObjectPattern(t *parser.ObjectPattern, value objects.Value, env *scope.Scope, isConst bool) error {
	obj, ok := value.(*objects.Object)
	if !ok {
		return e.errorf(t.Pos(), errors.TypeError, "cannot destructure %s as an object", objects.TypeName(value))
	}
	matched := make(map[string]bool, len(t.Props))
	for _, prop := range t.Props {
		matched[prop.Key] = true
		var v objects.Value = objects.NoneValue
		if pv, ok := obj.Get(prop.Key); ok {
			v = pv
		}
		if _, isNone := v.(objects.None); isNone && prop.Default != nil {
			dv, err := e.Eval(prop.Default, env)
			if err != nil {
				return err
			}
			v = dv
		}
		if err := e.bindPattern(prop.Target, v, env, isConst); err != nil {
			return err
		}
	}
	if t.Rest != "" {
		rest := objects.NewObject()
		for _, key := range obj.Keys() {
			if !matched[key] {
				v, _ := obj.Get(key)
				rest.Set(key, v)
			}
		}
		env.Define(t.Rest, rest, isConst)
	}
	return nil
}
