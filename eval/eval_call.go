/*
File   : slovo/eval/eval_call.go
Package: eval

Call semantics (spec.md §4.5.4-§4.5.5): argument evaluation with spread,
arity-lenient parameter binding with defaults/rest, `this` binding from
the call site, `new`, and `super(...)` constructor delegation.
*/
package eval

import (
	"github.com/slovolang/slovo/errors"
	"github.com/slovolang/slovo/function"
	"github.com/slovolang/slovo/objects"
	"github.com/slovolang/slovo/parser"
	"github.com/slovolang/slovo/scope"
)

func (e *Evaluator) evalCallExpr(n *parser.CallExpr, env *scope.Scope) (objects.Value, error) {
	if _, ok := n.Callee.(*parser.SuperExpr); ok {
		return e.evalSuperCall(n, env)
	}

	var receiver objects.Value
	var callee objects.Value
	var err error
	if member, ok := n.Callee.(*parser.MemberExpr); ok {
		if _, isSuper := member.Object.(*parser.SuperExpr); isSuper {
			callee, err = e.evalSuperMember(member, env)
		} else {
			receiver, err = e.Eval(member.Object, env)
			if err == nil {
				if !isSignal(receiver) {
					callee, err = e.getProperty(receiver, member.Property, member.Pos())
				} else {
					callee = receiver
				}
			}
		}
	} else if index, ok := n.Callee.(*parser.IndexExpr); ok {
		receiver, err = e.Eval(index.Object, env)
		if err == nil && !isSignal(receiver) {
			var idx objects.Value
			idx, err = e.Eval(index.Index, env)
			if err == nil && !isSignal(idx) {
				callee, err = e.indexGetValue(receiver, idx, index.Pos())
			} else {
				callee = idx
			}
		} else {
			callee = receiver
		}
	} else {
		callee, err = e.Eval(n.Callee, env)
	}
	if err != nil {
		return nil, err
	}
	if isSignal(callee) {
		return callee, nil
	}
	// `receiver.method(...)` binds the receiver as `this` for this call;
	// arrows keep their lexical `this`, already-bound methods keep theirs,
	// and static methods looked up on a class get none.
	if fn, ok := callee.(*function.Closure); ok && !fn.Arrow && fn.This == nil && receiver != nil && !isSignal(receiver) {
		if _, isClass := receiver.(*function.Class); !isClass {
			callee = fn.Bind(receiver)
		}
	}

	args, err := e.evalArgs(n.Args, env)
	if err != nil {
		return nil, err
	}
	if len(args) == 1 && isSignal(args[0]) {
		return args[0], nil
	}

	return e.callValue(callee, args, n.Pos())
}

func (e *Evaluator) evalArgs(argExprs []parser.Expr, env *scope.Scope) ([]objects.Value, error) {
	var args []objects.Value
	for _, a := range argExprs {
		if sp, ok := a.(*parser.SpreadExpr); ok {
			v, err := e.Eval(sp.Operand, env)
			if err != nil {
				return nil, err
			}
			if isSignal(v) {
				return []objects.Value{v}, nil
			}
			arr, ok := v.(*objects.Array)
			if !ok {
				return nil, e.errorf(sp.Pos(), errors.TypeError, "cannot spread %s as arguments", objects.TypeName(v))
			}
			args = append(args, arr.Elements...)
			continue
		}
		v, err := e.Eval(a, env)
		if err != nil {
			return nil, err
		}
		if isSignal(v) {
			return []objects.Value{v}, nil
		}
		args = append(args, v)
	}
	return args, nil
}

// CallAny invokes callee, whatever callable variant it is, with an
// already-evaluated argument list and no source position. Exported for std
// builtins that accept a callback (array.map/filter/sort_by).
func (e *Evaluator) CallAny(callee objects.Value, args []objects.Value) (objects.Value, error) {
	return e.callValue(callee, args, parser.Pos{})
}

// callValue dispatches a call to whatever callable variant callee is
// (spec.md §4.5.4/§6): a Closure re-enters the evaluator, a Native
// callable is handed the unwrapped argument slice and, if it returns a
// Deferred, is implicitly awaited (spec.md §5).
func (e *Evaluator) callValue(callee objects.Value, args []objects.Value, pos parser.Pos) (objects.Value, error) {
	switch fn := callee.(type) {
	case *function.Closure:
		return e.CallClosure(fn, args, pos)
	case *objects.Native:
		result, err := fn.Fn(args)
		if err != nil {
			return nil, e.errorf(pos, errors.TypeError, "%v", err)
		}
		if d, ok := result.(*objects.Deferred); ok {
			return e.awaitDeferred(d, pos)
		}
		return result, nil
	case *function.Class:
		return e.instantiate(fn, args, pos)
	default:
		return nil, e.errorf(pos, errors.TypeError, "%s is not callable", objects.TypeName(callee))
	}
}

// CallClosure binds args to fn's parameter patterns in a fresh child of its
// captured environment and executes the body, implementing spec.md
// §4.5.4's five-step call procedure. Exported for callers that already
// hold a *function.Closure; std builtins that accept a callback go through
// CallAny, which dispatches here for closures.
//
// On a failing call it pushes a call frame (the callee's name and this
// call's source position) onto the propagating *errors.RuntimeError via
// WithFrame before returning it, the way the teacher's evaluator built a
// "[line:col] message" trail through nested calls. Because CallClosure
// calls itself recursively through Eval, each nested invocation contributes
// its own frame on the way back out, so by the time the error reaches the
// program's entry point its Stack holds the full call chain, innermost
// frame first (spec.md §3/§4.7/§9).
func (e *Evaluator) CallClosure(fn *function.Closure, args []objects.Value, pos parser.Pos) (objects.Value, error) {
	limit := e.MaxCallDepth
	if limit <= 0 {
		limit = defaultMaxCallDepth
	}
	if e.callDepth >= limit {
		return nil, e.errorf(pos, errors.StackOverflow, "maximum call depth %d exceeded", limit)
	}
	e.callDepth++
	defer func() { e.callDepth-- }()

	var result objects.Value
	var err error
	if fn.Async {
		result, err = e.callAsyncClosure(fn, args, pos)
	} else {
		result, err = e.callClosureBody(fn, args, pos)
	}
	if re, ok := err.(*errors.RuntimeError); ok {
		name := fn.Name
		if name == "" {
			name = "<anonymous>"
		}
		re.WithFrame(errors.Frame{FuncName: name, File: pos.File, Line: pos.Line, Column: pos.Column})
	}
	return result, err
}

func (e *Evaluator) callClosureBody(fn *function.Closure, args []objects.Value, pos parser.Pos) (objects.Value, error) {
	callEnv := fn.Env.Child()
	if !fn.Arrow {
		var this objects.Value = objects.NoneValue
		if fn.This != nil {
			this = fn.This
		}
		callEnv.Define("this", this, false)
		if fn.DefClass != nil {
			callEnv.Define("@class", fn.DefClass, false)
		}
	}
	if err := e.bindParams(fn.Params, args, callEnv, pos); err != nil {
		return nil, err
	}

	if fn.ExprBody != nil {
		v, err := e.Eval(fn.ExprBody, callEnv)
		if err != nil {
			return nil, err
		}
		if r, ok := asReturn(v); ok {
			return r, nil
		}
		return v, nil
	}
	if fn.Body == nil {
		return objects.NoneValue, nil
	}
	v, err := e.evalBlock(fn.Body, callEnv)
	if err != nil {
		return nil, err
	}
	if r, ok := asReturn(v); ok {
		return r, nil
	}
	if _, ok := asThrow(v); ok {
		return v, nil
	}
	if asBreak(v) || asContinue(v) {
		return nil, e.errorf(fn.Body.Pos(), errors.TypeError, "illegal break/continue: no enclosing loop or switch")
	}
	// Functions without an explicit `return` yield none at fall-off
	// (spec.md §4.5.4/§9 Open Question resolution).
	return objects.NoneValue, nil
}

// bindParams implements the lenient arity policy spec.md §7 recommends:
// missing trailing arguments become none (or their default), and excess
// positional arguments are simply ignored absent a rest parameter.
func (e *Evaluator) bindParams(params []parser.Param, args []objects.Value, env *scope.Scope, pos parser.Pos) error {
	i := 0
	for _, p := range params {
		if p.Rest {
			rest := append([]objects.Value{}, args[min(i, len(args)):]...)
			if err := e.bindPattern(p.Target, objects.NewArray(rest), env, false); err != nil {
				return err
			}
			i = len(args)
			continue
		}
		var val objects.Value = objects.NoneValue
		if i < len(args) {
			val = args[i]
		}
		i++
		if _, isNone := val.(objects.None); isNone && p.Default != nil {
			dv, err := e.Eval(p.Default, env)
			if err != nil {
				return err
			}
			val = dv
		}
		if err := e.bindPattern(p.Target, val, env, false); err != nil {
			return err
		}
	}
	return nil
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func (e *Evaluator) evalNewExpr(n *parser.NewExpr, env *scope.Scope) (objects.Value, error) {
	calleeVal, err := e.Eval(n.Callee, env)
	if err != nil {
		return nil, err
	}
	if isSignal(calleeVal) {
		return calleeVal, nil
	}
	cls, ok := calleeVal.(*function.Class)
	if !ok {
		return nil, e.errorf(n.Pos(), errors.TypeError, "%s is not a class", objects.TypeName(calleeVal))
	}
	args, err := e.evalArgs(n.Args, env)
	if err != nil {
		return nil, err
	}
	return e.instantiate(cls, args, n.Pos())
}

// instantiate implements `new Class(args)` (spec.md §4.5.5): allocate,
// evaluate every ancestor's field initializers root-first, then invoke the
// most-derived constructor if one exists.
func (e *Evaluator) instantiate(cls *function.Class, args []objects.Value, pos parser.Pos) (objects.Value, error) {
	inst := function.NewInstance(cls)

	// Evaluate field initializers with `this` bound to the new instance.
	fieldEnv := e.Globals.Child()
	fieldEnv.Define("this", inst, false)
	for _, f := range cls.AllFields() {
		var val objects.Value = objects.NoneValue
		if f.Default != nil {
			v, err := e.Eval(f.Default, fieldEnv)
			if err != nil {
				return nil, err
			}
			if isSignal(v) {
				return v, nil
			}
			val = v
		}
		inst.Props.Set(f.Name, val)
	}

	if ctor, defClass, ok := cls.LookupConstructor(); ok {
		bound := ctor.Bind(inst)
		bound.DefClass = defClass
		if _, err := e.CallClosure(bound, args, pos); err != nil {
			return nil, err
		}
	}
	return inst, nil
}

// evalSuperCall handles `super(...)` at the top of a constructor: it
// invokes the parent class's constructor with the same `this` (spec.md
// §4.8.1).
func (e *Evaluator) evalSuperCall(n *parser.CallExpr, env *scope.Scope) (objects.Value, error) {
	cls, ok := currentClass(env)
	if !ok || cls.Super == nil {
		return nil, e.errorf(n.Pos(), errors.TypeError, "'super' call used outside a subclass constructor")
	}
	this, _ := env.Lookup("this")
	args, err := e.evalArgs(n.Args, env)
	if err != nil {
		return nil, err
	}
	ctor, defClass, ok := cls.Super.LookupConstructor()
	if !ok {
		return objects.NoneValue, nil
	}
	bound := ctor.Bind(this)
	bound.DefClass = defClass
	return e.CallClosure(bound, args, n.Pos())
}
