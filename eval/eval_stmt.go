/*
File   : slovo/eval/eval_stmt.go
Package: eval
*/
package eval

import (
	"github.com/slovolang/slovo/errors"
	"github.com/slovolang/slovo/function"
	"github.com/slovolang/slovo/objects"
	"github.com/slovolang/slovo/parser"
	"github.com/slovolang/slovo/scope"
)

func (e *Evaluator) evalStmt(stmt parser.Stmt, env *scope.Scope) (objects.Value, error) {
	switch s := stmt.(type) {
	case *parser.ExpressionStmt:
		return e.Eval(s.Expr, env)
	case *parser.LetStmt:
		return e.evalDecl(s.Target, s.Value, env, false)
	case *parser.ConstStmt:
		return e.evalDecl(s.Target, s.Value, env, true)
	case *parser.BlockStmt:
		return e.evalBlock(s, env.Child())
	case *parser.IfStmt:
		return e.evalIf(s, env)
	case *parser.WhileStmt:
		return e.evalWhile(s, env)
	case *parser.ForStmt:
		return e.evalFor(s, env)
	case *parser.BreakStmt:
		return breakSignal(), nil
	case *parser.ContinueStmt:
		return continueSignal(), nil
	case *parser.ReturnStmt:
		return e.evalReturn(s, env)
	case *parser.FunctionDeclStmt:
		return e.evalFunctionDecl(s, env)
	case *parser.ClassDeclStmt:
		return e.evalClassDecl(s, env)
	case *parser.ThrowStmt:
		return e.evalThrow(s, env)
	case *parser.TryStmt:
		return e.evalTry(s, env)
	case *parser.SwitchStmt:
		return e.evalSwitch(s, env)
	case *parser.ImportStmt:
		return e.evalImportStmt(s, env)
	case *parser.ExportStmt:
		return e.evalExportStmt(s, env)
	default:
		return nil, e.errorf(stmt.Pos(), errors.InternalError, "unhandled statement %T", stmt)
	}
}

func (e *Evaluator) evalDecl(target parser.Pattern, valueExpr parser.Expr, env *scope.Scope, isConst bool) (objects.Value, error) {
	var value objects.Value = objects.NoneValue
	if valueExpr != nil {
		v, err := e.Eval(valueExpr, env)
		if err != nil {
			return nil, err
		}
		if isSignal(v) {
			return v, nil
		}
		value = v
	}
	if err := e.bindPattern(target, value, env, isConst); err != nil {
		return nil, err
	}
	return objects.NoneValue, nil
}

// evalBlock runs statements in env, which callers pass as a fresh child
// scope (spec.md §4.4 block scoping), returning the first propagating
// signal or the last value.
func (e *Evaluator) evalBlock(b *parser.BlockStmt, env *scope.Scope) (objects.Value, error) {
	if err := e.checkDeadline(b.Pos()); err != nil {
		return nil, err
	}
	var last objects.Value = objects.NoneValue
	for _, stmt := range b.Statements {
		v, err := e.Eval(stmt, env)
		if err != nil {
			return nil, err
		}
		if isSignal(v) {
			return v, nil
		}
		last = v
	}
	return last, nil
}

func (e *Evaluator) evalIf(s *parser.IfStmt, env *scope.Scope) (objects.Value, error) {
	cond, err := e.Eval(s.Cond, env)
	if err != nil {
		return nil, err
	}
	if isSignal(cond) {
		return cond, nil
	}
	if objects.Truthy(cond) {
		return e.evalBlock(s.Then, env.Child())
	}
	if s.Else != nil {
		return e.Eval(s.Else, env)
	}
	return objects.NoneValue, nil
}

func (e *Evaluator) evalWhile(s *parser.WhileStmt, env *scope.Scope) (objects.Value, error) {
	for {
		cond, err := e.Eval(s.Cond, env)
		if err != nil {
			return nil, err
		}
		if isSignal(cond) {
			return cond, nil
		}
		if !objects.Truthy(cond) {
			break
		}
		v, err := e.evalBlock(s.Body, env.Child())
		if err != nil {
			return nil, err
		}
		if asBreak(v) {
			break
		}
		if asContinue(v) {
			continue
		}
		if isSignal(v) {
			return v, nil
		}
	}
	return objects.NoneValue, nil
}

func (e *Evaluator) evalFor(s *parser.ForStmt, env *scope.Scope) (objects.Value, error) {
	loopEnv := env.Child()
	if s.Init != nil {
		v, err := e.Eval(s.Init, loopEnv)
		if err != nil {
			return nil, err
		}
		if isSignal(v) {
			return v, nil
		}
	}
	for {
		if s.Cond != nil {
			cond, err := e.Eval(s.Cond, loopEnv)
			if err != nil {
				return nil, err
			}
			if isSignal(cond) {
				return cond, nil
			}
			if !objects.Truthy(cond) {
				break
			}
		}
		v, err := e.evalBlock(s.Body, loopEnv.Child())
		if err != nil {
			return nil, err
		}
		if asBreak(v) {
			break
		}
		if isSignal(v) && !asContinueOrBreak(v) {
			return v, nil
		}
		if s.Update != nil {
			uv, err := e.Eval(s.Update, loopEnv)
			if err != nil {
				return nil, err
			}
			if isSignal(uv) {
				return uv, nil
			}
		}
	}
	return objects.NoneValue, nil
}

func asContinueOrBreak(v objects.Value) bool {
	return asBreak(v) || asContinue(v)
}

func (e *Evaluator) evalReturn(s *parser.ReturnStmt, env *scope.Scope) (objects.Value, error) {
	if s.Value == nil {
		return returnSignal(objects.NoneValue), nil
	}
	v, err := e.Eval(s.Value, env)
	if err != nil {
		return nil, err
	}
	if isSignal(v) {
		return v, nil
	}
	return returnSignal(v), nil
}

func (e *Evaluator) evalFunctionDecl(s *parser.FunctionDeclStmt, env *scope.Scope) (objects.Value, error) {
	closure := e.makeClosure(s.Fn, env)
	if s.Fn.Name != "" {
		env.Define(s.Fn.Name, closure, false)
	}
	return objects.NoneValue, nil
}

func (e *Evaluator) makeClosure(fn *parser.FunctionExpr, env *scope.Scope) *function.Closure {
	return &function.Closure{
		Name:     fn.Name,
		Params:   fn.Params,
		Body:     fn.Body,
		ExprBody: fn.ExprBody,
		Arrow:    fn.Arrow,
		Async:    fn.Async,
		Env:      env,
	}
}

func (e *Evaluator) evalThrow(s *parser.ThrowStmt, env *scope.Scope) (objects.Value, error) {
	v, err := e.Eval(s.Value, env)
	if err != nil {
		return nil, err
	}
	if isSignal(v) {
		return v, nil
	}
	return throwSignal(v), nil
}

func (e *Evaluator) evalTry(s *parser.TryStmt, env *scope.Scope) (objects.Value, error) {
	result, err := e.evalBlock(s.Block, env.Child())
	if err != nil {
		// A host-level RuntimeError (not a script `throw`) is also
		// catchable, its error text wrapped as a string value, per spec.md §4.9
		// "try/catch/finally with a thrown value".
		if re, ok := err.(*errors.RuntimeError); ok && s.Handler != nil {
			result = throwSignal(objects.NewString(re.Error()))
			err = nil
		} else {
			return e.runFinally(s, env, nil, err)
		}
	}

	thrown, isThrown := asThrow(result)
	if isThrown && s.Handler != nil {
		catchEnv := env.Child()
		if s.CatchParam != "" {
			catchEnv.Define(s.CatchParam, thrown, false)
		}
		result, err = e.evalBlock(s.Handler, catchEnv)
		if err != nil {
			return e.runFinally(s, env, nil, err)
		}
	}
	return e.runFinally(s, env, result, nil)
}

// runFinally always evaluates the finally block, if present, in a child of
// the try statement's own enclosing scope; an exit signal produced by
// finally itself supersedes whatever was propagating (spec.md §4.9
// finally-always-runs semantics).
func (e *Evaluator) runFinally(s *parser.TryStmt, env *scope.Scope, result objects.Value, propagated error) (objects.Value, error) {
	if s.Finally == nil {
		return result, propagated
	}
	fv, ferr := e.evalBlock(s.Finally, env.Child())
	if ferr != nil {
		return nil, ferr
	}
	if isSignal(fv) {
		return fv, nil
	}
	return result, propagated
}
