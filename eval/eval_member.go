/*
File   : slovo/eval/eval_member.go
Package: eval

Member (`.name`) and index (`[expr]`) access, for both reads and the
write-helpers used by eval_assign.go (spec.md §4.5.6 and §4.8 accessor
dispatch). Computed-key access on an Object/Instance/Class takes the same
path as dotted access once the key string is known.
*/
package eval

import (
	"strconv"

	"github.com/slovolang/slovo/errors"
	"github.com/slovolang/slovo/function"
	"github.com/slovolang/slovo/objects"
	"github.com/slovolang/slovo/parser"
	"github.com/slovolang/slovo/scope"
)

func (e *Evaluator) evalMemberGet(n *parser.MemberExpr, env *scope.Scope) (objects.Value, error) {
	if _, ok := n.Object.(*parser.SuperExpr); ok {
		return e.evalSuperMember(n, env)
	}
	obj, err := e.Eval(n.Object, env)
	if err != nil {
		return nil, err
	}
	if isSignal(obj) {
		return obj, nil
	}
	return e.getProperty(obj, n.Property, n.Pos())
}

// evalSuperMember resolves `super.method` to the parent class's method
// bound to the current `this` (spec.md §4.8.3).
func (e *Evaluator) evalSuperMember(n *parser.MemberExpr, env *scope.Scope) (objects.Value, error) {
	cls, ok := currentClass(env)
	if !ok || cls.Super == nil {
		return nil, e.errorf(n.Pos(), errors.TypeError, "'super' used outside a subclass method")
	}
	this, _ := env.Lookup("this")
	if m, ok := cls.Super.LookupMethod(n.Property); ok {
		return m.Bind(this), nil
	}
	if g, ok := cls.Super.LookupGetter(n.Property); ok {
		return e.CallClosure(g.Bind(this), nil, n.Pos())
	}
	return nil, e.errorf(n.Pos(), errors.PropertyError, "no such method %q on superclass", n.Property)
}

// getProperty implements the per-variant `.name`/computed-key read rule
// (spec.md §4.5.6): `.length` on arrays/strings, getter-then-method
// resolution on instances, static-member resolution on classes, and a
// present-or-none object map lookup otherwise.
func (e *Evaluator) getProperty(obj objects.Value, name string, pos parser.Pos) (objects.Value, error) {
	switch v := obj.(type) {
	case *objects.Array:
		if name == "length" {
			return objects.NewNumber(float64(v.Len())), nil
		}
		return objects.NoneValue, nil
	case *objects.String:
		if name == "length" {
			return objects.NewNumber(runeLen(v.Value)), nil
		}
		return objects.NoneValue, nil
	case *objects.Object:
		if val, ok := v.Get(name); ok {
			return val, nil
		}
		return objects.NoneValue, nil
	case *function.Instance:
		return e.instanceGet(v, name, pos)
	case *function.Class:
		return e.classStaticGet(v, name, pos)
	case objects.None:
		return nil, e.errorf(pos, errors.TypeError, "cannot read property %q of none", name)
	default:
		return objects.NoneValue, nil
	}
}

func (e *Evaluator) instanceGet(inst *function.Instance, name string, pos parser.Pos) (objects.Value, error) {
	if v, ok := inst.Props.Get(name); ok {
		return v, nil
	}
	if getter, ok := inst.Class.LookupGetter(name); ok {
		return e.CallClosure(getter.Bind(inst), nil, pos)
	}
	if m, ok := inst.Class.LookupMethod(name); ok {
		return m.Bind(inst), nil
	}
	return objects.NoneValue, nil
}

func (e *Evaluator) classStaticGet(cls *function.Class, name string, pos parser.Pos) (objects.Value, error) {
	if v, ok := cls.StaticProps.Get(name); ok {
		return v, nil
	}
	if getter, ok := cls.LookupStaticGetter(name); ok {
		return e.CallClosure(getter, nil, pos)
	}
	if m, ok := cls.LookupStaticMethod(name); ok {
		return m, nil
	}
	return objects.NoneValue, nil
}

// setProperty implements the write half of getProperty: used for both
// `.name =` and computed `[expr] =` assignment targets.
func (e *Evaluator) setProperty(obj objects.Value, name string, value objects.Value, pos parser.Pos) error {
	switch v := obj.(type) {
	case *objects.Object:
		v.Set(name, value)
		return nil
	case *function.Instance:
		if setterCall := v.Set(name, value); setterCall != nil {
			_, err := e.CallClosure(setterCall, []objects.Value{value}, pos)
			return err
		}
		return nil
	case *function.Class:
		if setter, ok := v.LookupStaticSetter(name); ok {
			_, err := e.CallClosure(setter, []objects.Value{value}, pos)
			return err
		}
		v.StaticProps.Set(name, value)
		return nil
	default:
		return e.errorf(pos, errors.TypeError, "cannot set property %q on %s", name, objects.TypeName(obj))
	}
}

func (e *Evaluator) evalIndexGet(n *parser.IndexExpr, env *scope.Scope) (objects.Value, error) {
	obj, err := e.Eval(n.Object, env)
	if err != nil {
		return nil, err
	}
	if isSignal(obj) {
		return obj, nil
	}
	idx, err := e.Eval(n.Index, env)
	if err != nil {
		return nil, err
	}
	if isSignal(idx) {
		return idx, nil
	}
	return e.indexGetValue(obj, idx, n.Pos())
}

func (e *Evaluator) indexGetValue(obj, idx objects.Value, pos parser.Pos) (objects.Value, error) {
	switch v := obj.(type) {
	case *objects.Array:
		i, ok := objects.CoerceNumber(idx)
		if !ok {
			return nil, e.errorf(pos, errors.TypeError, "array index must be numeric")
		}
		val, ok := v.Get(int(i))
		if !ok {
			return objects.NoneValue, nil
		}
		return val, nil
	case *objects.String:
		i, ok := objects.CoerceNumber(idx)
		if !ok {
			return nil, e.errorf(pos, errors.TypeError, "string index must be numeric")
		}
		runes := []rune(v.Value)
		pos32 := int(i)
		if pos32 < 0 || pos32 >= len(runes) {
			return objects.NoneValue, nil
		}
		return objects.NewString(string(runes[pos32])), nil
	default:
		return e.getProperty(obj, propertyKeyString(idx), pos)
	}
}

func (e *Evaluator) indexSetValue(obj, idx, value objects.Value, pos parser.Pos) error {
	switch v := obj.(type) {
	case *objects.Array:
		i, ok := objects.CoerceNumber(idx)
		if !ok {
			return e.errorf(pos, errors.TypeError, "array index must be numeric")
		}
		n := int(i)
		if n < 0 || n > v.Len() {
			return e.errorf(pos, errors.RangeError, "array index %d out of bounds (length %d)", n, v.Len())
		}
		v.Set(n, value)
		return nil
	case *objects.String:
		return e.errorf(pos, errors.TypeError, "strings are immutable")
	default:
		return e.setProperty(obj, propertyKeyString(idx), value, pos)
	}
}

// propertyKeyString renders idx the way object/instance computed-key
// access converts it (spec.md §4.5.6: "to string for objects").
func propertyKeyString(v objects.Value) string {
	if n, ok := v.(*objects.Number); ok {
		return strconv.FormatFloat(n.Value, 'g', -1, 64)
	}
	return v.ToString()
}
