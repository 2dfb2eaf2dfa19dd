/*
File   : slovo/eval/eval_assign.go
Package: eval

Assignment expressions, both plain and compound (spec.md §4.5.2). A
compound assignment evaluates its left-hand side's addressable parts
(the object/index sub-expressions) exactly once, so a side-effectful
target like `list()[i] += 1` doesn't re-run `list()`.
*/
package eval

import (
	"github.com/slovolang/slovo/errors"
	"github.com/slovolang/slovo/lexer"
	"github.com/slovolang/slovo/objects"
	"github.com/slovolang/slovo/parser"
	"github.com/slovolang/slovo/scope"
)

func (e *Evaluator) evalAssignmentExpr(n *parser.AssignmentExpr, env *scope.Scope) (objects.Value, error) {
	switch target := n.Target.(type) {
	case *parser.Identifier:
		return e.assignIdentifier(target, n, env)
	case *parser.MemberExpr:
		return e.assignMember(target, n, env)
	case *parser.IndexExpr:
		return e.assignIndex(target, n, env)
	default:
		return nil, e.errorf(n.Pos(), errors.InternalError, "invalid assignment target %T", n.Target)
	}
}

func (e *Evaluator) assignIdentifier(target *parser.Identifier, n *parser.AssignmentExpr, env *scope.Scope) (objects.Value, error) {
	rhs, err := e.Eval(n.Value, env)
	if err != nil {
		return nil, err
	}
	if isSignal(rhs) {
		return rhs, nil
	}
	newVal := rhs
	if n.CompoundOp != "" {
		old, ok := env.Lookup(target.Name)
		if !ok {
			return nil, e.errorf(n.Pos(), errors.ReferenceError, "undefined variable %q", target.Name)
		}
		newVal, err = e.applyBinaryOp(n.CompoundOp, old, rhs, n.Pos())
		if err != nil {
			return nil, err
		}
	}
	if err := env.Assign(target.Name, newVal); err != nil {
		return nil, e.scopeErr(err, n.Pos(), target.Name)
	}
	return newVal, nil
}

func (e *Evaluator) scopeErr(err error, pos parser.Pos, name string) error {
	switch err {
	case scope.ErrConst:
		return e.errorf(pos, errors.TypeError, "cannot assign to constant %q", name)
	default:
		return e.errorf(pos, errors.ReferenceError, "undefined variable %q", name)
	}
}

func (e *Evaluator) assignMember(target *parser.MemberExpr, n *parser.AssignmentExpr, env *scope.Scope) (objects.Value, error) {
	if _, ok := target.Object.(*parser.SuperExpr); ok {
		return nil, e.errorf(n.Pos(), errors.TypeError, "cannot assign through 'super'")
	}
	obj, err := e.Eval(target.Object, env)
	if err != nil {
		return nil, err
	}
	if isSignal(obj) {
		return obj, nil
	}
	rhs, err := e.Eval(n.Value, env)
	if err != nil {
		return nil, err
	}
	if isSignal(rhs) {
		return rhs, nil
	}
	newVal := rhs
	if n.CompoundOp != "" {
		old, err := e.getProperty(obj, target.Property, n.Pos())
		if err != nil {
			return nil, err
		}
		newVal, err = e.applyBinaryOp(n.CompoundOp, old, rhs, n.Pos())
		if err != nil {
			return nil, err
		}
	}
	if err := e.setProperty(obj, target.Property, newVal, n.Pos()); err != nil {
		return nil, err
	}
	return newVal, nil
}

func (e *Evaluator) assignIndex(target *parser.IndexExpr, n *parser.AssignmentExpr, env *scope.Scope) (objects.Value, error) {
	obj, err := e.Eval(target.Object, env)
	if err != nil {
		return nil, err
	}
	if isSignal(obj) {
		return obj, nil
	}
	idx, err := e.Eval(target.Index, env)
	if err != nil {
		return nil, err
	}
	if isSignal(idx) {
		return idx, nil
	}
	rhs, err := e.Eval(n.Value, env)
	if err != nil {
		return nil, err
	}
	if isSignal(rhs) {
		return rhs, nil
	}
	newVal := rhs
	if n.CompoundOp != "" {
		old, err := e.indexGetValue(obj, idx, n.Pos())
		if err != nil {
			return nil, err
		}
		newVal, err = e.applyBinaryOp(n.CompoundOp, old, rhs, n.Pos())
		if err != nil {
			return nil, err
		}
	}
	if err := e.indexSetValue(obj, idx, newVal, n.Pos()); err != nil {
		return nil, err
	}
	return newVal, nil
}

// compoundOpIsArith is unused today but documents that every compound
// assignment's underlying operator is one of the five arithmetic ones
// (spec.md §4.2 precedence level 1); the parser's compoundOp already
// narrows to that set.
func compoundOpIsArith(op lexer.TokenKind) bool {
	switch op {
	case lexer.PLUS, lexer.MINUS, lexer.STAR, lexer.SLASH, lexer.PERCENT:
		return true
	default:
		return false
	}
}
